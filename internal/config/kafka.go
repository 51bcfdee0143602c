package config

type Kafka struct {
	Addresses []string `env:"KAFKA_ADDRESSES,required" envSeparator:","`
	ClientID  string   `env:"KAFKA_CLIENT_ID" envDefault:"product-catalog"`
	// Group is the consumer group of the RPC request consumer.
	Group string `env:"KAFKA_GROUP,required"`
	// EventGroup is the consumer group of the product event audit consumer.
	EventGroup string `env:"KAFKA_EVENT_GROUP" envDefault:"product-catalog-events"`
}
