package catalog

import (
	"context"

	"github.com/temoto/vender-candy/cmd/vender-candy/subcmd"
	"github.com/temoto/vender-candy/internal/state"
	"github.com/temoto/vender-candy/internal/ui"
)

var Mod = subcmd.Mod{Name: "catalog", Usage: "list candy and prices", Main: Main}

func Main(ctx context.Context, config *state.Config, args []string) error {
	g, err := subcmd.Init(ctx, config)
	if err != nil {
		return err
	}
	p := ui.Printer{Sign: g.Config.UI.CurrencySign}
	return p.Catalog(subcmd.Stdout, g.Catalog)
}
