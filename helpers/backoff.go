package helpers

import (
	"time"
)

// Limited exponential backoff for retry delays.
// First failure waits Min, each next failure multiplies delay by K up to Max.
// Not safe for concurrent use, keep one per retry loop.
type Backoff struct {
	next time.Duration

	Min time.Duration
	Max time.Duration
	K   float32
	Res time.Duration // delay resolution for nice logs, default=1ms
}

// Use scenario:
// for {
//   err := op()
//   time.Sleep(backoff.DelayAfter(err==nil))
// }
func (b *Backoff) DelayAfter(success bool) time.Duration {
	if success {
		b.Reset()
		return 0
	}
	if b.next == 0 {
		b.next = b.limit(b.Min)
	} else {
		b.next = b.limit(time.Duration(float32(b.next) * b.k()))
	}
	return b.next
}

func (b *Backoff) Reset() { b.next = 0 }

func (b *Backoff) k() float32 {
	if b.K <= 1 {
		return 2
	}
	return b.K
}

func (b *Backoff) limit(d time.Duration) time.Duration {
	if d < b.Min {
		d = b.Min
	}
	if b.Max != 0 && d > b.Max {
		d = b.Max
	}
	return b.round(d)
}

func (b *Backoff) round(d time.Duration) time.Duration {
	res := b.Res
	if res == 0 {
		res = 1 * time.Millisecond
	}
	return d / res * res
}
