package tele

import (
	"context"
	"sync"
	"testing"

	"github.com/temoto/vender-candy/log2"
)

type transportMock struct {
	t         testing.TB
	lk        sync.Mutex
	failFirst int // number of SendTelemetry calls to fail
	calls     int
	closed    bool
	out       chan []byte
}

func newTransportMock(t testing.TB, buffer int) *transportMock {
	return &transportMock{t: t, out: make(chan []byte, buffer)}
}

func (self *transportMock) Init(ctx context.Context, log *log2.Log, teleConfig Config) error {
	return nil
}

func (self *transportMock) SendTelemetry(payload []byte) bool {
	self.lk.Lock()
	self.calls++
	fail := self.calls <= self.failFirst
	self.lk.Unlock()
	if fail {
		self.t.Logf("mock network fail payload=%s", payload)
		return false
	}
	self.out <- payload
	self.t.Logf("mock delivered telemetry=%s", payload)
	return true
}

func (self *transportMock) Close() {
	self.lk.Lock()
	self.closed = true
	self.lk.Unlock()
}

func (self *transportMock) Calls() int {
	self.lk.Lock()
	defer self.lk.Unlock()
	return self.calls
}
