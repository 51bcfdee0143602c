package config

import "time"

type HTTP struct {
	Port    uint32 `env:"HTTP_PORT" envDefault:"8000"`
	Swagger bool   `env:"HTTP_SWAGGER" envDefault:"true"`
	// Gateway enables the REST mirror of the RPC operations under /products.
	Gateway bool `env:"HTTP_GATEWAY" envDefault:"true"`
	// ShutdownTimeout bounds how long in-flight requests may finish on shutdown.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
