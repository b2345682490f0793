package machine

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/temoto/vender-candy/currency"
)

var ErrEmptyItem = errors.New("item name is empty")

type InvalidQuantityError struct {
	Quantity int
}

func (self InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity=%d must be greater than 0", self.Quantity)
}

type NegativePaymentError struct {
	Paid currency.Amount
}

func (self NegativePaymentError) Error() string {
	return fmt.Sprintf("paid=%s cannot be negative", self.Paid.Format100I())
}

type InsufficientPaymentError struct {
	Required currency.Amount
	Provided currency.Amount
}

func (self InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment required=%s provided=%s", self.Required.Format100I(), self.Provided.Format100I())
}

// Missing is how much more money is needed.
func (self InsufficientPaymentError) Missing() currency.Amount { return self.Required - self.Provided }

func IsEmptyItem(err error) bool { return errors.Cause(err) == ErrEmptyItem }

func IsInvalidQuantity(err error) bool {
	_, ok := errors.Cause(err).(InvalidQuantityError)
	return ok
}

func IsNegativePayment(err error) bool {
	_, ok := errors.Cause(err).(NegativePaymentError)
	return ok
}

func IsInsufficientPayment(err error) bool {
	_, ok := errors.Cause(err).(InsufficientPaymentError)
	return ok
}

// AsInsufficientPayment extracts required/provided amounts for display.
func AsInsufficientPayment(err error) (InsufficientPaymentError, bool) {
	e, ok := errors.Cause(err).(InsufficientPaymentError)
	return e, ok
}
