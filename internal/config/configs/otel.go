package configs

// Otel configures tracing. Tracing is opt-in: nothing is exported unless
// Endpoint is set.
type Otel struct {
	Enabled     bool   `env:"ENABLED" envDefault:"true"`
	Endpoint    string `env:"ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"mesa-budget"`
}
