package machine

import (
	"fmt"
	"strings"

	"github.com/temoto/vender-candy/currency"
)

// Transaction is purchase request. It is valid by construction and never changes.
type Transaction struct {
	item     string
	quantity int
	paid     currency.Amount
}

// NewTransaction checks item, then quantity, then paid amount and returns first failure.
// Item is stored as given; surrounding space only matters for the empty check,
// so " caramels " is accepted here and later rejected by catalog lookup.
func NewTransaction(item string, quantity int, paid currency.Amount) (*Transaction, error) {
	if strings.TrimSpace(item) == "" {
		return nil, ErrEmptyItem
	}
	if quantity <= 0 {
		return nil, InvalidQuantityError{Quantity: quantity}
	}
	if paid < 0 {
		return nil, NegativePaymentError{Paid: paid}
	}
	return &Transaction{item: item, quantity: quantity, paid: paid}, nil
}

func (self *Transaction) Item() string          { return self.item }
func (self *Transaction) Quantity() int         { return self.quantity }
func (self *Transaction) Paid() currency.Amount { return self.paid }

func (self *Transaction) String() string {
	return fmt.Sprintf("transaction(item=%q quantity=%d paid=%s)", self.item, self.quantity, self.paid.Format100I())
}
