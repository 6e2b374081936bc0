package stabiliser

import "time"

// DefaultTolerance is the distance below which two unit phases are considered equal.
const DefaultTolerance = 1e-6

// Config holds the settings shared by checkers and the batch pool.
type Config struct {
	Tolerance         float64       `koanf:"tolerance"`
	AllowGlobalFactor bool          `koanf:"allow_global_factor"`
	Workers           int           `koanf:"workers"`
	SchedulingTimeout time.Duration `koanf:"scheduling_timeout"`
}

func NewConfig() *Config {
	return &Config{
		Tolerance:         DefaultTolerance,
		Workers:           4,
		SchedulingTimeout: 10 * time.Second,
	}
}

// Options converts the numeric part of the config into check options.
func (c *Config) Options() []CheckOption {
	if c == nil {
		return nil
	}

	opts := []CheckOption{WithTolerance(c.Tolerance)}
	if c.AllowGlobalFactor {
		opts = append(opts, WithGlobalFactor())
	}

	return opts
}
