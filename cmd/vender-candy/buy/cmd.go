// Non-interactive purchase for scripts.
package buy

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/juju/errors"
	"github.com/temoto/vender-candy/cmd/vender-candy/subcmd"
	"github.com/temoto/vender-candy/currency"
	"github.com/temoto/vender-candy/internal/state"
	"github.com/temoto/vender-candy/internal/ui"
)

var Mod = subcmd.Mod{Name: "buy", Usage: "-item NAME [-qty N] -paid AMOUNT", Main: Main}

func Main(ctx context.Context, config *state.Config, args []string) error {
	if _, err := subcmd.Init(ctx, config); err != nil {
		return err
	}
	return Buy(ctx, subcmd.Stdout, args)
}

func Buy(ctx context.Context, w io.Writer, args []string) error {
	g := state.GetGlobal(ctx)
	p := ui.Printer{Sign: g.Config.UI.CurrencySign}

	flagset := flag.NewFlagSet("buy", flag.ContinueOnError)
	flagset.SetOutput(w)
	flagItem := flagset.String("item", "", "candy name, exact")
	flagQuantity := flagset.Int("qty", 1, "number of packs")
	flagPaid := flagset.String("paid", "", "payment amount, e.g. 10.00")
	if err := flagset.Parse(args); err != nil {
		return errors.Annotate(err, "buy")
	}

	paid, err := currency.ParseAmount(*flagPaid)
	if err != nil {
		return errors.Annotate(err, "buy -paid")
	}
	r, err := g.Purchase(*flagItem, *flagQuantity, paid)
	if err != nil {
		fmt.Fprintf(w, "[ERROR] %s\n", p.ErrorText(err))
		return err
	}
	return p.Result(w, r)
}
