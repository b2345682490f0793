// Interactive purchase: choose candy, quantity, pay, get change.
package purchase

import (
	"context"
	"fmt"
	"io"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/temoto/vender-candy/cmd/vender-candy/subcmd"
	"github.com/temoto/vender-candy/currency"
	"github.com/temoto/vender-candy/helpers/cli"
	"github.com/temoto/vender-candy/internal/state"
	"github.com/temoto/vender-candy/internal/ui"
)

var Mod = subcmd.Mod{Name: "purchase", Usage: "purchase candy, asks questions", Main: Main}

const (
	QuestionCandy    = "Please select your favorite candy: "
	QuestionQuantity = "Please input packs of candy you want to buy (Default: 1): "
	QuestionPayment  = "Please input your payment amount: "
)

func Main(ctx context.Context, config *state.Config, args []string) error {
	if _, err := subcmd.Init(ctx, config); err != nil {
		return err
	}
	cli.ExitOnSignal(1)
	err := Wizard(ctx, cli.NewStdin(), subcmd.Stdout)
	if err == io.EOF {
		return errors.New("input closed before purchase")
	}
	return err
}

func Wizard(ctx context.Context, in *cli.Input, w io.Writer) error {
	g := state.GetGlobal(ctx)
	p := ui.Printer{Sign: g.Config.UI.CurrencySign}

	fmt.Fprintf(w, "Welcome to the Candy Machine!\n\n")

	items := g.Catalog.Items()
	suggests := make([]prompt.Suggest, 0, len(items))
	for i, it := range items {
		fmt.Fprintf(w, "  [%d] %s\n", i+1, p.ChoiceLabel(it))
		suggests = append(suggests, prompt.Suggest{Text: it.Name, Description: p.Money(it.Price)})
	}

	var item string
	err := ask(in, w, p, QuestionCandy, suggests, func(answer string) (err error) {
		item, err = ui.ParseChoice(g.Catalog, answer)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "You selected: %s\n", item)

	var quantity int
	err = ask(in, w, p, QuestionQuantity, nil, func(answer string) (err error) {
		quantity, err = ui.ParseQuantity(answer)
		return err
	})
	if err != nil {
		return err
	}

	var paid currency.Amount
	err = ask(in, w, p, QuestionPayment, nil, func(answer string) (err error) {
		paid, err = ui.ParsePayment(answer)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	r, err := g.Purchase(item, quantity, paid)
	if err != nil {
		fmt.Fprintf(w, "[ERROR] %s\n", p.ErrorText(err))
		return err
	}
	return p.Result(w, r)
}

// ask repeats question until parse accepts answer or input ends.
func ask(in *cli.Input, w io.Writer, p ui.Printer, question string, suggests []prompt.Suggest, parse func(string) error) error {
	for {
		if !in.Interactive() {
			fmt.Fprint(w, question)
		}
		answer, err := in.Ask(question, suggests)
		if err != nil {
			return err
		}
		if err = parse(answer); err == nil {
			return nil
		}
		fmt.Fprintf(w, "%s\n", p.ErrorText(err))
	}
}
