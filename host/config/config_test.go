package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"serialmodes/protocol"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	require.Equal(t, protocol.Baud, cfg.Serial.Baud)
	require.False(t, cfg.Relay.Enabled())
	require.Equal(t, 1000*time.Millisecond, cfg.Sim.Timing.BlinkOn)
	require.Equal(t, 400*time.Millisecond, cfg.Sim.Timing.BlinkOff)
}

func TestLoad(t *testing.T) {
	dir, err := os.MkdirTemp("", "serialmodes")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
serial:
  device: /dev/ttyACM1
relay:
  broker: tcp://broker.local:1883
  topic_prefix: lab/board1/
  qos: 1
sim:
  timing:
    blink_on: 250ms
    sample_interval: 2s
  battery_mv: 3300
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyACM1", cfg.Serial.Device)
	require.Equal(t, protocol.Baud, cfg.Serial.Baud)
	require.True(t, cfg.Relay.Enabled())
	require.Equal(t, "lab/board1/", cfg.Relay.TopicPrefix)
	require.Equal(t, byte(1), cfg.Relay.QoS)
	require.Equal(t, 250*time.Millisecond, cfg.Sim.Timing.BlinkOn)
	require.Equal(t, 400*time.Millisecond, cfg.Sim.Timing.BlinkOff)
	require.Equal(t, 2*time.Second, cfg.Sim.Timing.SampleInterval)
	require.Equal(t, 100*time.Millisecond, cfg.Sim.Timing.RNGTimeout)
	require.Equal(t, uint32(3300), cfg.Sim.Millivolts)
	require.Equal(t, int32(DefaultTemperatureTenths), cfg.Sim.TemperatureTenths)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(os.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "serial:\n  speed: 9600\n",
		"zero baud":    "serial:\n  baud: 0\n",
		"bad scheme":   "relay:\n  broker: http://x:1883\n",
		"no host":      "relay:\n  broker: tcp://\n",
		"bad qos":      "relay:\n  qos: 3\n",
		"battery high": "sim:\n  battery_mv: 8000\n",
		"negative":     "sim:\n  timing:\n    blink_off: -1s\n",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		require.Error(t, err, name)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}
