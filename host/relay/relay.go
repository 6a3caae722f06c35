// Package relay republishes board reports to MQTT
package relay

import (
	"encoding/json"
	"fmt"

	"github.com/golang/glog"

	"serialmodes/protocol"
)

// Publisher sends a payload to a topic
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// Topic suffixes under the configured prefix
const (
	TopicMonitor  = "monitor"
	TopicRandom   = "trng"
	TopicNotReady = "trng/not_ready"
)

// MonitorMessage is the payload for a battery and temperature sample
type MonitorMessage struct {
	TemperatureTenths int32  `json:"temperature_tenths"`
	Millivolts        uint32 `json:"battery_mv"`
	Line              string `json:"line"`
}

// RandomMessage is the payload for one TRNG word
type RandomMessage struct {
	Value uint32 `json:"value"`
}

// Relay maps reports onto topics
type Relay struct {
	pub    Publisher
	prefix string
}

// New creates a relay publishing under prefix
func New(pub Publisher, prefix string) *Relay {
	return &Relay{pub: pub, prefix: prefix}
}

// Handle publishes r if it carries a reading. Other reports are ignored.
func (r *Relay) Handle(rep protocol.Report) error {
	var (
		topic string
		msg   interface{}
	)
	switch rep.Kind {
	case protocol.ReportMonitor:
		topic = TopicMonitor
		msg = MonitorMessage{
			TemperatureTenths: rep.TempTenths,
			Millivolts:        rep.Millivolts,
			Line:              rep.Line,
		}
	case protocol.ReportRandom:
		topic = TopicRandom
		msg = RandomMessage{Value: rep.Value}
	case protocol.ReportNotReady:
		topic = TopicNotReady
		msg = struct{}{}
	default:
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if glog.V(2) {
		glog.Infof("PUB %q %s", r.prefix+topic, payload)
	}
	if err := r.pub.Publish(r.prefix+topic, payload); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Run relays reports until the channel closes. Publish failures are logged
// and do not stop the relay.
func (r *Relay) Run(reports <-chan protocol.Report) {
	for rep := range reports {
		if err := r.Handle(rep); err != nil {
			glog.Errorf("relay: %v", err)
		}
	}
}
