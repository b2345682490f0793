package ui

import (
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/vender-candy/currency"
	"github.com/temoto/vender-candy/internal/catalog"
	"github.com/temoto/vender-candy/internal/machine"
)

// Separator between name and price in choice labels.
const NameSeparator = " - "

func (self Printer) ChoiceLabel(it catalog.Item) string {
	return it.Name + NameSeparator + self.Money(it.Price)
}

// ParseChoice accepts menu number (1-based), exact name or full choice label.
func ParseChoice(cat *catalog.Catalog, answer string) (string, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", machine.ErrEmptyItem
	}
	if i, err := strconv.Atoi(answer); err == nil {
		names := cat.Names()
		if i < 1 || i > len(names) {
			return "", errors.NotValidf("choice=%d of %d", i, len(names))
		}
		return names[i-1], nil
	}
	if idx := strings.Index(answer, NameSeparator); idx > 0 {
		answer = strings.TrimSpace(answer[:idx])
	}
	if !cat.IsValid(answer) {
		return "", catalog.UnknownItemError{Item: answer}
	}
	return answer, nil
}

// ParseQuantity empty answer means 1.
func ParseQuantity(answer string) (int, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return 1, nil
	}
	q, err := strconv.Atoi(answer)
	if err != nil {
		return 0, errors.NotValidf("quantity=%q", answer)
	}
	if q <= 0 {
		return 0, machine.InvalidQuantityError{Quantity: q}
	}
	return q, nil
}

func ParsePayment(answer string) (currency.Amount, error) {
	a, err := currency.ParseAmount(answer)
	if err != nil {
		return 0, err
	}
	if a < 0 {
		return 0, machine.NegativePaymentError{Paid: a}
	}
	return a, nil
}
