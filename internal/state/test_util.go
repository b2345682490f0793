package state

import (
	"context"
	"testing"

	"github.com/temoto/vender-candy/internal/tele"
	"github.com/temoto/vender-candy/log2"
)

func NewTestContext(t testing.TB, confString string, teler tele.Teler) (context.Context, *Global) {
	fs := NewMockFullReader(map[string]string{
		"test-inline": confString,
	})

	log := log2.NewTest(t, log2.LDebug)
	// log := log2.NewStderr(log2.LDebug) // useful with panics
	ctx, g := NewContext(log, teler)
	g.MustInit(ctx, MustReadConfig(log, fs, "test-inline"))
	return ctx, g
}
