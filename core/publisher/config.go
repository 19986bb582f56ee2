package publisher

// Config holds the publish target.
type Config struct {
	Org   string `env:"PUBSUB_ORG,required"`
	Topic string `env:"PUBSUB_TOPIC,required"`
}
