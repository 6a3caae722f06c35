package core

import "time"

// Config holds the firmware timing parameters
type Config struct {
	BlinkOn        time.Duration `yaml:"blink_on"`        // lit blinker phases
	BlinkOff       time.Duration `yaml:"blink_off"`       // dark blinker phases
	SampleInterval time.Duration `yaml:"sample_interval"` // monitor and trng period
	RNGTimeout     time.Duration `yaml:"rng_timeout"`     // bound on the TRNG ready wait
}

// Default timings
const (
	DefaultBlinkOn        = 1000 * time.Millisecond
	DefaultBlinkOff       = 400 * time.Millisecond
	DefaultSampleInterval = 1000 * time.Millisecond
	DefaultRNGTimeout     = 100 * time.Millisecond
)

// DefaultConfig returns the stock timings
func DefaultConfig() Config {
	return Config{
		BlinkOn:        DefaultBlinkOn,
		BlinkOff:       DefaultBlinkOff,
		SampleInterval: DefaultSampleInterval,
		RNGTimeout:     DefaultRNGTimeout,
	}
}

// ApplyDefaults fills in zero values with the stock timings
func (c *Config) ApplyDefaults() {
	if c.BlinkOn <= 0 {
		c.BlinkOn = DefaultBlinkOn
	}
	if c.BlinkOff <= 0 {
		c.BlinkOff = DefaultBlinkOff
	}
	if c.SampleInterval <= 0 {
		c.SampleInterval = DefaultSampleInterval
	}
	if c.RNGTimeout <= 0 {
		c.RNGTimeout = DefaultRNGTimeout
	}
}
