// Line oriented console for operators and scripts.
package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/temoto/vender-candy/cmd/vender-candy/subcmd"
	"github.com/temoto/vender-candy/currency"
	"github.com/temoto/vender-candy/helpers/cli"
	"github.com/temoto/vender-candy/internal/state"
	"github.com/temoto/vender-candy/internal/ui"
)

var Mod = subcmd.Mod{Name: "shell", Usage: "console, type help", Main: Main}

const usage = `syntax:
- list                       show catalog
- buy QUANTITY PAID NAME...  purchase, name may contain spaces
- coins                      show denominations used for change
- help                       this text
`

func Main(ctx context.Context, config *state.Config, args []string) error {
	g, err := subcmd.Init(ctx, config)
	if err != nil {
		return err
	}
	cli.ExitOnSignal(1)
	return cli.MainLoop("candy", func(line string) {
		if err := Exec(ctx, subcmd.Stdout, line); err != nil {
			g.Log.Debugf("shell line=%q err=%v", line, err)
		}
	}, newCompleter(ctx))
}

func newCompleter(ctx context.Context) func(d prompt.Document) []prompt.Suggest {
	g := state.GetGlobal(ctx)
	suggests := []prompt.Suggest{
		{Text: "list", Description: "show catalog"},
		{Text: "buy", Description: "buy QUANTITY PAID NAME"},
		{Text: "coins", Description: "denominations"},
		{Text: "help"},
	}
	names := make([]prompt.Suggest, 0, g.Catalog.Len())
	for _, name := range g.Catalog.Names() {
		names = append(names, prompt.Suggest{Text: name})
	}

	return func(d prompt.Document) []prompt.Suggest {
		words := strings.Fields(d.TextBeforeCursor())
		if len(words) >= 3 && words[0] == "buy" {
			return prompt.FilterFuzzy(names, d.GetWordBeforeCursor(), true)
		}
		return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), true)
	}
}

// Exec runs one console line. Errors are already printed to w.
func Exec(ctx context.Context, w io.Writer, line string) error {
	g := state.GetGlobal(ctx)
	p := ui.Printer{Sign: g.Config.UI.CurrencySign}

	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}
	var err error
	switch words[0] {
	case "list":
		err = p.Catalog(w, g.Catalog)
	case "coins":
		_, err = fmt.Fprintln(w, strings.Join(g.Machine.Denominations().Strings(), " "))
	case "help":
		_, err = io.WriteString(w, usage)
	case "buy":
		err = buy(g, p, w, words[1:])
		if err != nil {
			fmt.Fprintf(w, "[ERROR] %s\n", p.ErrorText(err))
		}
	default:
		err = errors.NotSupportedf("command=%s", words[0])
		fmt.Fprintf(w, "unknown command '%s', try help\n", words[0])
	}
	return err
}

func buy(g *state.Global, p ui.Printer, w io.Writer, args []string) error {
	if len(args) < 3 {
		return errors.NotValidf("buy needs QUANTITY PAID NAME")
	}
	quantity, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.NotValidf("quantity=%q", args[0])
	}
	paid, err := currency.ParseAmount(args[1])
	if err != nil {
		return err
	}
	r, err := g.Purchase(strings.Join(args[2:], " "), quantity, paid)
	if err != nil {
		return err
	}
	return p.Result(w, r)
}
