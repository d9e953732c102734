package configs

import "time"

// Scheduler configures the in-process trigger of the periodic jobs.
type Scheduler struct {
	// Enabled starts the job loops in main. Disable it when an external
	// scheduler calls the ops endpoints instead.
	Enabled bool `env:"ENABLED" envDefault:"true"`
	// DaypartingInterval is the cadence of the dayparting sweep.
	DaypartingInterval time.Duration `env:"DAYPARTING_INTERVAL" envDefault:"15m"`
	// RecheckInterval is the cadence of the budget recheck sweep.
	RecheckInterval time.Duration `env:"BUDGET_RECHECK_INTERVAL" envDefault:"5m"`
	// BoundaryInterval is how often the scheduler looks for a day or month
	// change to trigger the cycle resets.
	BoundaryInterval time.Duration `env:"BOUNDARY_CHECK_INTERVAL" envDefault:"1m"`
	// LeaseTTL bounds how long one replica owns a job run.
	LeaseTTL time.Duration `env:"LEASE_TTL" envDefault:"10m"`
}
