package config

import "time"

type Relay struct {
	// BatchSize caps the outbox messages locked and published per tick.
	BatchSize uint32        `env:"RELAY_BATCH_SIZE" envDefault:"100"`
	Interval  time.Duration `env:"RELAY_INTERVAL" envDefault:"1s"`
	// ShutdownTimeout bounds how long stopping waits for an in-flight batch.
	ShutdownTimeout time.Duration `env:"RELAY_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
