package currency

import (
	"strings"

	"github.com/juju/errors"
	"github.com/shopspring/decimal"
)

// Amount is integer counting lowest currency unit, e.g. $1.20 = 120
type Amount int64

// number of fractional digits in decimal form of Amount
const Scale = 2

// Larger values are rejected by ParseAmount to keep arithmetic far from int64 overflow.
const MaxAmount Amount = 1e15

func (self Amount) Decimal() decimal.Decimal { return decimal.New(int64(self), -Scale) }
func (self Amount) Format100I() string       { return self.Decimal().StringFixed(Scale) }
func (self Amount) String() string           { return self.Format100I() }

// Mul is used for price*quantity, result is exact.
func (self Amount) Mul(n int) Amount { return self * Amount(n) }

// ParseAmount reads decimal text like "10", "4.99" or "-0.5".
// More than two fractional digits are rounded half away from zero.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.NotValidf("amount=%q", s)
	}
	if d.Abs().GreaterThan(MaxAmount.Decimal()) {
		return 0, errors.NotValidf("amount=%q out of range", s)
	}
	return FromDecimal(d), nil
}

func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic("code error " + err.Error())
	}
	return a
}

func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Round(Scale).Shift(Scale).IntPart())
}

// Nominal is value of one coin or bill
type Nominal Amount

func (self Nominal) String() string { return Amount(self).Format100I() }

// JSON form is decimal string "4.99", never float.
func (self Amount) MarshalJSON() ([]byte, error) { return []byte(`"` + self.Format100I() + `"`), nil }
func (self *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	a, err := ParseAmount(s)
	if err != nil {
		return errors.Annotate(err, "json")
	}
	*self = a
	return nil
}

func (self Nominal) MarshalJSON() ([]byte, error) { return Amount(self).MarshalJSON() }
func (self *Nominal) UnmarshalJSON(b []byte) error {
	return (*Amount)(self).UnmarshalJSON(b)
}
