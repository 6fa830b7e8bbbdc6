package schedo

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the engine configuration. It
// can be populated from YAML or JSON. The zero-value is not useful on its
// own; start from DefaultConfig. All durations are positive integers in
// milliseconds, matching the call-parameter surface of the policies.
type Config struct {
	// Quantum is the round-robin time slice.
	Quantum int `json:"quantum" yaml:"quantum"`

	// Quantum0..2 are the MLFQ tier quanta, highest priority first. They
	// are intended to grow with the tier index but are not validated
	// against each other.
	Quantum0 int `json:"quantum0" yaml:"quantum0"`
	Quantum1 int `json:"quantum1" yaml:"quantum1"`
	Quantum2 int `json:"quantum2" yaml:"quantum2"`

	// BoostInterval is the MLFQ priority-boost cadence.
	BoostInterval int `json:"boostInterval" yaml:"boostInterval"`

	// IdleInterval is how long the loop sleeps when no work is available.
	IdleInterval int `json:"idleInterval" yaml:"idleInterval"`

	// MetricsURL is the metrics table destination (any afs-supported URL).
	// Empty keeps the table in memory only.
	MetricsURL string `json:"metricsURL" yaml:"metricsURL"`
}

// DefaultConfig returns a Config populated with the default quanta.
func DefaultConfig() *Config {
	return &Config{
		Quantum:       100,
		Quantum0:      50,
		Quantum1:      100,
		Quantum2:      200,
		BoostInterval: 1000,
		IdleInterval:  10,
	}
}

// Validate returns an error for the first invalid setting, or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Quantum <= 0 {
		return fmt.Errorf("quantum must be > 0")
	}
	if c.Quantum0 <= 0 || c.Quantum1 <= 0 || c.Quantum2 <= 0 {
		return fmt.Errorf("mlfq quanta must be > 0")
	}
	if c.BoostInterval <= 0 {
		return fmt.Errorf("boostInterval must be > 0")
	}
	if c.IdleInterval <= 0 {
		return fmt.Errorf("idleInterval must be > 0")
	}
	return nil
}

// LoadConfig downloads and decodes a YAML (or JSON, a YAML subset) config
// from the supplied URL, layered over DefaultConfig.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download config %s: %w", URL, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
