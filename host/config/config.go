// Package config loads the host tool settings from YAML
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"serialmodes/core"
	"serialmodes/host/serial"
)

type Config struct {
	Serial serial.Config `yaml:"serial"`
	Relay  RelayConfig   `yaml:"relay"`
	Sim    SimConfig     `yaml:"sim"`
}

// ---- RELAY ----

type RelayConfig struct {
	// Broker URL, e.g. "tcp://localhost:1883". Empty disables the relay.
	Broker      string `yaml:"broker"`
	TopicPrefix string `yaml:"topic_prefix"`
	ClientID    string `yaml:"client_id"` // defaults to one derived from the machine id
	QoS         byte   `yaml:"qos"`
	Retain      bool   `yaml:"retain"`
}

// Enabled reports whether a broker is configured
func (r RelayConfig) Enabled() bool {
	return r.Broker != ""
}

// ---- SIMULATOR ----

type SimConfig struct {
	Timing core.Config `yaml:"timing"`

	Millivolts        uint32 `yaml:"battery_mv"`
	TemperatureTenths int32  `yaml:"temperature_tenths"`

	// Drop CR and LF from stdin so typed lines frame cleanly
	StripNewlines bool `yaml:"strip_newlines"`
}

// Defaults
const (
	DefaultDevice            = "/dev/ttyUSB0"
	DefaultTopicPrefix       = "serialmodes/"
	DefaultMillivolts        = 3700
	DefaultTemperatureTenths = 250
)

// Default returns the stock configuration
func Default() *Config {
	cfg := &Config{
		Serial: *serial.DefaultConfig(DefaultDevice),
		Relay:  RelayConfig{TopicPrefix: DefaultTopicPrefix},
		Sim: SimConfig{
			Timing:            core.DefaultConfig(),
			Millivolts:        DefaultMillivolts,
			TemperatureTenths: DefaultTemperatureTenths,
			StripNewlines:     true,
		},
	}
	return cfg
}

// Load reads path over the defaults and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. Unknown keys are rejected and an
// empty document yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	cfg.Sim.Timing.ApplyDefaults()
	return cfg, nil
}
