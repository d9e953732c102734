package configs

import (
	"fmt"
	"time"
	_ "time/tzdata" // zones resolve on minimal images
)

// Engine configures the budget engine itself.
type Engine struct {
	// StoreDriver selects the aggregate store: "postgres" or "memory".
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	// Timezone is the IANA zone that defines processing days, months and
	// dayparting hours.
	Timezone string `env:"TIMEZONE" envDefault:"UTC"`
	// Workers bounds how many entities a sweep processes concurrently.
	Workers int `env:"WORKERS" envDefault:"8"`
}

// Location resolves Timezone.
func (c Engine) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("engine timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
