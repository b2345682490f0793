// Package tele reports sales and errors to remote monitoring over MQTT.
package tele

import (
	"context"
	"time"

	"github.com/temoto/vender-candy/currency"
	"github.com/temoto/vender-candy/log2"
)

type Config struct { //nolint:maligned
	Enabled           bool   `hcl:"enable"`
	VmId              int    `hcl:"vm_id"`
	LogDebug          bool   `hcl:"log_debug"`
	KeepaliveSec      int    `hcl:"keepalive_sec"`
	MqttBroker        string `hcl:"mqtt_broker"`
	MqttLogDebug      bool   `hcl:"mqtt_log_debug"`
	MqttPassword      string `hcl:"mqtt_password"` // secret
	NetworkTimeoutSec int    `hcl:"network_timeout_sec"`
	QueueSize         int    `hcl:"queue_size"`
}

type Teler interface {
	Init(context.Context, *log2.Log, Config) error
	Transaction(Sale)
	Error(error)
	Close()
}

// Sale is one purchase attempt, Reject is set when machine refused it.
type Sale struct {
	Item     string          `json:"item"`
	Quantity int             `json:"quantity"`
	Paid     currency.Amount `json:"paid"`
	Total    currency.Amount `json:"total"`
	Change   currency.Change `json:"change,omitempty"`
	Reject   string          `json:"reject,omitempty"`
}

const (
	KindSale  = "sale"
	KindError = "error"
)

// Message is telemetry payload, JSON encoded.
type Message struct {
	Id    string `json:"id"`
	VmId  int    `json:"vm_id"`
	Time  int64  `json:"time"` // unix nano
	Kind  string `json:"kind"`
	Sale  *Sale  `json:"sale,omitempty"`
	Error string `json:"error,omitempty"`
}

func (self *Message) Timestamp() time.Time { return time.Unix(0, self.Time) }

type Noop struct{}

var _ Teler = Noop{} // compile-time interface test

func (Noop) Init(context.Context, *log2.Log, Config) error { return nil }
func (Noop) Transaction(Sale)                             {}
func (Noop) Error(error)                                  {}
func (Noop) Close()                                       {}
