package configs

import "time"

// HTTP defines configuration for the HTTP server. The Port specifies
// which port the server will bind to. The host may be configured via
// the ADDRESS environment variable, but port is sufficient for most use
// cases.
type HTTP struct {
	// Host is the interface to bind. Empty binds every interface.
	Host string `env:"ADDRESS"`
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
