package configs

// Redis configures the job lease store. An empty Addr disables Redis and
// the scheduler falls back to an in-process lease.
type Redis struct {
	Addr      string `env:"ADDRESS"`
	Password  string `env:"PASSWORD"`
	DB        int    `env:"DB" envDefault:"0"`
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"mesa-budget:lease:"`
}
