package tele

import (
	"context"

	"github.com/temoto/vender-candy/log2"
)

type Transporter interface {
	Init(ctx context.Context, log *log2.Log, teleConfig Config) error
	// SendTelemetry returns true when payload is delivered
	SendTelemetry(payload []byte) bool
	Close()
}
