package configs

import "time"

// Kafka configures the spend event consumer. No brokers means the consumer
// is not started.
type Kafka struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"ad-spend"`
	GroupID string   `env:"GROUP_ID" envDefault:"mesa-budget"`
	// MaxAttempts bounds retries of a message that fails for a
	// non-transient reason before it is skipped.
	MaxAttempts int `env:"MAX_ATTEMPTS" envDefault:"5"`
	// RetryBackoff is the first delay between retries. It doubles up to
	// one minute.
	RetryBackoff time.Duration `env:"RETRY_BACKOFF" envDefault:"500ms"`
}
