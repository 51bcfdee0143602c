package config

type Pagination struct {
	DefaultLimit int `env:"PAGINATION_DEFAULT_LIMIT" envDefault:"10"`
	MaxLimit     int `env:"PAGINATION_MAX_LIMIT" envDefault:"100"`
}
