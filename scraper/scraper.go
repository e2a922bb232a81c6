// Package scraper contains the site adapters that know how a school
// publishes its substitution schedule. Each adapter locates the relevant
// pages and hands their tables to the untis engine.
package scraper

import (
	"errors"
	"fmt"

	"vertretungsplan-scraper/config"
	"vertretungsplan-scraper/untis"
)

// Scraper fetches and parses the complete substitution schedule of one
// school.
type Scraper interface {
	Fetch() (*untis.Schedule, error)
}

// ErrInvalidCredentials is returned when a login-protected schedule
// rejects the configured username and password.
var ErrInvalidCredentials = errors.New("invalid credentials")

type factory func(cfg *config.SchoolConfig) (Scraper, error)

// The set of supported site types is closed; the api discriminator in the
// school config selects the adapter.
var registry = map[string]factory{
	"untis-monitor": newMonitorScraper,
	"dsblight":      newDSBLightScraper,
}

// New builds the adapter for a school config. An unknown api
// discriminator is a configuration error.
func New(cfg *config.SchoolConfig) (Scraper, error) {
	build, ok := registry[cfg.API]
	if !ok {
		return nil, fmt.Errorf("%s: unknown api %q", cfg.Name, cfg.API)
	}
	return build(cfg)
}

func newParser(cfg *config.SchoolConfig) (*untis.Parser, error) {
	opts, err := cfg.ParserOptions()
	if err != nil {
		return nil, err
	}
	return untis.NewParser(opts)
}
