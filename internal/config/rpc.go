package config

import "time"

type RPC struct {
	// TopicPrefix prefixes every request topic, e.g. "products.find_one".
	TopicPrefix    string        `env:"RPC_TOPIC_PREFIX" envDefault:"products"`
	HandlerTimeout time.Duration `env:"RPC_HANDLER_TIMEOUT" envDefault:"10s"`
}
