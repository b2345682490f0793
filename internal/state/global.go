package state

import (
	"context"
	"fmt"

	"github.com/juju/errors"
	"github.com/temoto/vender-candy/currency"
	"github.com/temoto/vender-candy/internal/catalog"
	"github.com/temoto/vender-candy/internal/machine"
	"github.com/temoto/vender-candy/internal/tele"
	"github.com/temoto/vender-candy/log2"
)

// Global is process wiring: config, logger, catalog, machine, telemetry.
type Global struct {
	Config  *Config
	Catalog *catalog.Catalog
	Machine *machine.Machine
	Log     *log2.Log
	Tele    tele.Teler
}

const ContextKey = "run/state-global"

func NewContext(log *log2.Log, teler tele.Teler) (context.Context, *Global) {
	if log == nil {
		panic("code error NewContext() log=nil")
	}
	if teler == nil {
		teler = tele.Noop{}
	}
	g := &Global{
		Log:  log,
		Tele: teler,
	}
	ctx := context.WithValue(context.Background(), ContextKey, g)
	return ctx, g
}

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Sprintf("context['%s'] is nil", ContextKey))
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic(fmt.Sprintf("context['%s'] expected type *Global actual=%#v", ContextKey, v))
}

// If `Init` fails, consider `Global` is in broken state.
func (g *Global) Init(ctx context.Context, cfg *Config) error {
	g.Config = cfg
	if cfg.UI.LogDebug {
		g.Log.SetLevel(log2.LDebug)
	}

	// Since tele is remote error reporting mechanism, it must be inited before anything else
	if err := g.Tele.Init(ctx, g.Log, g.Config.Tele); err != nil {
		return errors.Annotate(err, "tele init")
	}
	if g.Config.Tele.Enabled {
		g.Log.SetErrorFunc(g.Tele.Error)
	}

	cat, err := g.Config.BuildCatalog()
	if err != nil {
		return err
	}
	denoms, err := g.Config.BuildDenominations()
	if err != nil {
		return err
	}
	g.Catalog = cat
	g.Machine, err = machine.New(cat, denoms, g.Log)
	if err != nil {
		return errors.Annotate(err, "machine init")
	}
	g.Log.Debugf("config: catalog=%v denominations=%v", cat.Names(), denoms.Strings())
	return nil
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	err := g.Init(ctx, cfg)
	if err != nil {
		g.Log.Fatal(errors.ErrorStack(err))
	}
}

// Purchase builds transaction, executes it and reports outcome to telemetry.
// Returned error is one of transaction or machine error kinds.
func (g *Global) Purchase(item string, quantity int, paid currency.Amount) (*machine.Result, error) {
	tx, err := machine.NewTransaction(item, quantity, paid)
	if err != nil {
		g.Log.Debugf("purchase invalid item=%q quantity=%d paid=%s err=%v", item, quantity, paid.Format100I(), err)
		return nil, err
	}
	r, err := g.Machine.Execute(tx)
	if err != nil {
		g.Tele.Transaction(tele.Sale{
			Item:     tx.Item(),
			Quantity: tx.Quantity(),
			Paid:     tx.Paid(),
			Reject:   err.Error(),
		})
		return nil, err
	}
	g.Log.Infof("sold item=%q quantity=%d total=%s change=%s", r.Item(), r.Quantity(), r.Total().Format100I(), r.Change().String())
	g.Tele.Transaction(tele.Sale{
		Item:     r.Item(),
		Quantity: r.Quantity(),
		Paid:     tx.Paid(),
		Total:    r.Total(),
		Change:   r.Change(),
	})
	return r, nil
}

// Error logs and, when telemetry is enabled, reports err.
// Optional args annotate err: format string with values, or anything printable.
func (g *Global) Error(err error, args ...interface{}) {
	if err == nil {
		return
	}
	if len(args) != 0 {
		if format, ok := args[0].(string); ok {
			err = errors.Annotatef(err, format, args[1:]...)
		} else {
			err = errors.Annotate(err, fmt.Sprint(args...))
		}
	}
	g.Log.Debugf("%s", errors.ErrorStack(err))
	g.Log.Error(err)
}

func (g *Global) Close() { g.Tele.Close() }
