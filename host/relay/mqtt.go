package relay

import (
	"fmt"
	"net/url"

	"github.com/denisbrodbeck/machineid"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"serialmodes/host/config"
)

// clientIDApp keys the protected machine id so it is not exposed as is
const clientIDApp = "serialmodes"

// MQTT publishes through a paho client
type MQTT struct {
	Client paho.Client

	qos    byte
	retain bool
}

// ClientOptions builds paho options from the relay config
func ClientOptions(cfg config.RelayConfig) (*paho.ClientOptions, error) {
	u, err := url.Parse(cfg.Broker)
	if err != nil {
		return nil, err
	}
	scheme := u.Scheme
	if scheme == "mqtt" {
		scheme = "tcp"
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(scheme + "://" + u.Host).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = DefaultClientID()
	}
	opts.SetClientID(clientID)
	opts.SetOnConnectHandler(func(paho.Client) {
		glog.Info("mqtt connected")
	})
	opts.SetConnectionLostHandler(func(c paho.Client, err error) {
		glog.Warningf("mqtt connection lost: %v", err)
	})
	return opts, nil
}

// DefaultClientID derives a stable client id from the machine id
func DefaultClientID() string {
	id, err := machineid.ProtectedID(clientIDApp)
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		return clientIDApp
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return clientIDApp + "-" + id
}

// Dial connects to the configured broker
func Dial(cfg config.RelayConfig) (*MQTT, error) {
	opts, err := ClientOptions(cfg)
	if err != nil {
		return nil, fmt.Errorf("relay: %w", err)
	}
	m := &MQTT{
		Client: paho.NewClient(opts),
		qos:    cfg.QoS,
		retain: cfg.Retain,
	}
	token := m.Client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("relay: connect %s: %w", cfg.Broker, err)
	}
	return m, nil
}

// Publish implements Publisher
func (m *MQTT) Publish(topic string, payload []byte) error {
	token := m.Client.Publish(topic, m.qos, m.retain, payload)
	token.Wait()
	return token.Error()
}

// Close implements io.Closer
func (m *MQTT) Close() error {
	m.Client.Disconnect(250)
	return nil
}
