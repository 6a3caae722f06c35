package config

import (
	"fmt"
	"net/url"
)

// maxMillivolts is the largest battery voltage the 3.8 fixed point
// reading can carry
const maxMillivolts = 7999

// Validate checks configuration correctness. It does not mutate cfg.
func Validate(cfg *Config) error {
	if cfg.Serial.Baud <= 0 {
		return fmt.Errorf("serial: baud must be positive, got %d", cfg.Serial.Baud)
	}
	if cfg.Serial.ReadTimeout < 0 {
		return fmt.Errorf("serial: read_timeout_ms must not be negative")
	}

	if cfg.Relay.Enabled() {
		u, err := url.Parse(cfg.Relay.Broker)
		if err != nil {
			return fmt.Errorf("relay: broker: %w", err)
		}
		switch u.Scheme {
		case "tcp", "mqtt", "ssl", "tls", "ws", "wss":
		default:
			return fmt.Errorf("relay: broker %q: unsupported scheme %q", cfg.Relay.Broker, u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("relay: broker %q has no host", cfg.Relay.Broker)
		}
	}
	if cfg.Relay.QoS > 2 {
		return fmt.Errorf("relay: qos must be 0, 1 or 2, got %d", cfg.Relay.QoS)
	}

	t := cfg.Sim.Timing
	if t.BlinkOn < 0 || t.BlinkOff < 0 || t.SampleInterval < 0 || t.RNGTimeout < 0 {
		return fmt.Errorf("sim: timings must not be negative")
	}
	if cfg.Sim.Millivolts > maxMillivolts {
		return fmt.Errorf("sim: battery_mv %d exceeds %d", cfg.Sim.Millivolts, maxMillivolts)
	}
	return nil
}
