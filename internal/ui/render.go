// Package ui is text presentation of catalog, purchase result and errors.
package ui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/juju/errors"
	"github.com/temoto/vender-candy/currency"
	"github.com/temoto/vender-candy/internal/catalog"
	"github.com/temoto/vender-candy/internal/machine"
)

const MsgExact = "No change needed - exact payment!"

type Printer struct {
	Sign string // currency sign, appended to amounts
}

func (self Printer) Money(a currency.Amount) string { return a.Format100I() + self.Sign }

func (self Printer) Catalog(w io.Writer, cat *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCandy\tPrice")
	for i, it := range cat.Items() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, it.Name, self.Money(it.Price))
	}
	return errors.Trace(tw.Flush())
}

func (self Printer) Result(w io.Writer, r *machine.Result) error {
	if r.Quantity() > 1 {
		fmt.Fprintf(w, "You bought %d packs of %s for %s, each for %s\n",
			r.Quantity(), r.Item(), self.Money(r.Total()), self.Money(r.UnitPrice()))
	} else {
		fmt.Fprintf(w, "You bought %d pack of %s for %s\n", r.Quantity(), r.Item(), self.Money(r.Total()))
	}
	if r.ExactPayment() {
		_, err := fmt.Fprintln(w, MsgExact)
		return errors.Trace(err)
	}

	fmt.Fprintln(w, "Your change is:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Coin\tCount")
	for _, c := range r.Change() {
		fmt.Fprintf(tw, "%s\t%d\n", self.Money(currency.Amount(c.Nominal)), c.Count)
	}
	return errors.Trace(tw.Flush())
}

// ErrorText is user facing message for purchase errors.
func (self Printer) ErrorText(err error) string {
	cause := errors.Cause(err)
	switch e := cause.(type) {
	case machine.InvalidQuantityError:
		return "Item quantity must be greater than 0"
	case machine.NegativePaymentError:
		return "Paid amount cannot be negative"
	case catalog.UnknownItemError:
		return fmt.Sprintf("Invalid candy type: %s", e.Item)
	case machine.InsufficientPaymentError:
		return fmt.Sprintf("Insufficient payment. Required: %s, Provided: %s", self.Money(e.Required), self.Money(e.Provided))
	}
	if machine.IsEmptyItem(err) {
		return "Candy type cannot be empty"
	}
	return err.Error()
}
