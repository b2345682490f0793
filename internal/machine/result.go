package machine

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/temoto/vender-candy/currency"
)

// Result is receipt of successful purchase, only Machine.Execute creates it.
type Result struct {
	item     string
	quantity int
	total    currency.Amount
	change   currency.Change
}

func (self *Result) Item() string           { return self.item }
func (self *Result) Quantity() int          { return self.quantity }
func (self *Result) Total() currency.Amount { return self.total }

// UnitPrice is total/quantity rounded half away from zero to cents.
func (self *Result) UnitPrice() currency.Amount {
	return currency.FromDecimal(self.total.Decimal().Div(decimal.NewFromInt(int64(self.quantity))))
}

// Change returns copy, safe to modify.
// Empty when payment was exact.
func (self *Result) Change() currency.Change { return self.change.Copy() }

func (self *Result) ExactPayment() bool { return len(self.change) == 0 }

func (self *Result) String() string {
	return fmt.Sprintf("result(item=%q quantity=%d total=%s change=%s)", self.item, self.quantity, self.total.Format100I(), self.change.String())
}
