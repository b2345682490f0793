package tele

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/temoto/vender-candy/helpers"
	"github.com/temoto/vender-candy/log2"
)

const (
	defaultNetworkTimeout = 30 * time.Second
	defaultQueueSize      = 64
	defaultRetryMin       = 1 * time.Second
)

// Tele contract:
// - Init() fails only with invalid config, network issues ignored
// - Transaction/Error never block, messages are delivered in background
// - queue is memory only, messages over QueueSize or unsent at Close() are lost
// - Close() waits until worker stops
type Tele struct { //nolint:maligned
	enabled   bool
	log       *log2.Log
	transport Transporter
	q         chan []byte
	stopCh    chan struct{}
	doneCh    chan struct{}
	vmId      int
	retryMin  time.Duration
	retryMax  time.Duration
	now       func() time.Time
}

var _ Teler = &Tele{}

func (self *Tele) Init(ctx context.Context, log *log2.Log, teleConfig Config) error {
	self.enabled = false
	self.log = log.Clone(log2.LInfo)
	if teleConfig.LogDebug {
		self.log.SetLevel(log2.LDebug)
	}
	if !teleConfig.Enabled {
		return nil
	}
	if teleConfig.VmId <= 0 {
		return errors.NotValidf("tele vm_id=%d", teleConfig.VmId)
	}

	self.vmId = teleConfig.VmId
	queueSize := teleConfig.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	self.q = make(chan []byte, queueSize)
	self.stopCh = make(chan struct{})
	self.doneCh = make(chan struct{})
	if self.now == nil {
		self.now = time.Now
	}
	if self.retryMin == 0 {
		self.retryMin = defaultRetryMin
	}
	if self.retryMax == 0 {
		self.retryMax = helpers.IntSecondDefault(teleConfig.NetworkTimeoutSec, defaultNetworkTimeout)
	}

	// test code sets .transport
	if self.transport == nil { // production path
		self.transport = &transportMqtt{}
	}
	if err := self.transport.Init(ctx, self.log, teleConfig); err != nil {
		return errors.Annotate(err, "tele transport")
	}

	self.enabled = true
	go self.worker()
	return nil
}

func (self *Tele) Close() {
	if !self.enabled {
		return
	}
	close(self.stopCh)
	<-self.doneCh
	self.transport.Close()
}

func (self *Tele) Transaction(s Sale) {
	self.enqueue(&Message{Kind: KindSale, Sale: &s})
}

func (self *Tele) Error(err error) {
	if err == nil {
		return
	}
	self.enqueue(&Message{Kind: KindError, Error: err.Error()})
}

func (self *Tele) enqueue(m *Message) {
	if !self.enabled {
		return
	}
	m.Id = uuid.New().String()
	m.VmId = self.vmId
	m.Time = self.now().UnixNano()
	b, err := json.Marshal(m)
	if err != nil {
		// must not use Errorf: it may be wired to Tele.Error
		self.log.Infof("tele encode kind=%s err=%v", m.Kind, err)
		return
	}
	select {
	case self.q <- b:
		self.log.Debugf("tele queued id=%s kind=%s", m.Id, m.Kind)
	default:
		self.log.Infof("tele queue full, dropped id=%s kind=%s", m.Id, m.Kind)
	}
}

func (self *Tele) worker() {
	defer close(self.doneCh)
	backoff := helpers.Backoff{Min: self.retryMin, Max: self.retryMax, K: 2}
	for {
		select {
		case payload := <-self.q:
			for !self.transport.SendTelemetry(payload) {
				delay := backoff.DelayAfter(false)
				self.log.Debugf("tele send failed, retry in %v", delay)
				select {
				case <-time.After(delay):
				case <-self.stopCh:
					self.log.Infof("tele stop, unsent messages lost")
					return
				}
			}
			backoff.Reset()

		case <-self.stopCh:
			self.flush()
			return
		}
	}
}

// flush makes one delivery attempt for everything still queued.
func (self *Tele) flush() {
	for {
		select {
		case payload := <-self.q:
			if !self.transport.SendTelemetry(payload) {
				self.log.Infof("tele stop, unsent messages lost")
				return
			}
		default:
			return
		}
	}
}
