package currency

import (
	"github.com/juju/errors"
)

var (
	ErrNominalInvalid = errors.New("nominal is not valid for this group")
	ErrNotCanonical   = errors.New("greedy change is not minimal for this nominal set")
)

// Default coin set, euro.
var defaultNominals = []Nominal{200, 100, 50, 20, 10, 5, 2, 1}

// Denominations is fixed set of nominals available for change, strictly descending.
// Zero value is empty and gives no change, use NewDenominations.
type Denominations struct {
	nominals []Nominal
}

func DefaultDenominations() Denominations {
	d, err := NewDenominations(defaultNominals...)
	if err != nil {
		panic("code error default nominals: " + err.Error())
	}
	return d
}

// NewDenominations accepts only sets where greedy selection gives exact and
// minimal change for any amount: strictly descending, smallest nominal is
// the lowest currency unit, and canonical.
func NewDenominations(nominals ...Nominal) (Denominations, error) {
	if len(nominals) == 0 {
		return Denominations{}, errors.Annotate(ErrNominalInvalid, "empty set")
	}
	for i, n := range nominals {
		if n <= 0 {
			return Denominations{}, errors.Annotatef(ErrNominalInvalid, "nominal=%s must be positive", n.String())
		}
		if i > 0 && n >= nominals[i-1] {
			return Denominations{}, errors.Annotatef(ErrNominalInvalid, "nominal=%s after %s, must be descending", n.String(), nominals[i-1].String())
		}
	}
	if last := nominals[len(nominals)-1]; last != 1 {
		return Denominations{}, errors.Annotatef(ErrNominalInvalid, "smallest nominal=%s must be %s", last.String(), Nominal(1).String())
	}
	d := Denominations{nominals: append([]Nominal(nil), nominals...)}
	if !d.Canonical() {
		return Denominations{}, errors.Annotatef(ErrNotCanonical, "nominals=%v", d.Strings())
	}
	return d, nil
}

func ParseDenominations(ss []string) (Denominations, error) {
	nominals := make([]Nominal, 0, len(ss))
	for _, s := range ss {
		a, err := ParseAmount(s)
		if err != nil {
			return Denominations{}, errors.Annotate(err, "denomination")
		}
		nominals = append(nominals, Nominal(a))
	}
	return NewDenominations(nominals...)
}

func (self Denominations) Len() int { return len(self.nominals) }

func (self Denominations) Nominals() []Nominal {
	return append([]Nominal(nil), self.nominals...)
}

func (self Denominations) Has(n Nominal) bool {
	for _, x := range self.nominals {
		if x == n {
			return true
		}
	}
	return false
}

func (self Denominations) Strings() []string {
	ss := make([]string, len(self.nominals))
	for i, n := range self.nominals {
		ss[i] = n.String()
	}
	return ss
}

// MakeChange is greedy: take as many of largest nominal as fits, continue with remainder.
// Zero or negative amount gives empty Change.
func (self Denominations) MakeChange(amount Amount) Change {
	if amount <= 0 {
		return nil
	}
	var change Change
	remain := amount
	for _, n := range self.nominals {
		count := remain / Amount(n)
		if count > 0 {
			change = append(change, Coins{Nominal: n, Count: uint(count)})
			remain -= count * Amount(n)
		}
		if remain <= 0 {
			break
		}
	}
	return change
}

// Canonical reports whether greedy change uses minimal number of coins for every amount.
// Candidate counterexamples are built from greedy change of each nominal minus one unit
// (Pearson 2005), so cost depends on number of nominals, not their values.
// Requires smallest nominal 1, as NewDenominations ensures.
func (self Denominations) Canonical() bool {
	n := len(self.nominals)
	switch {
	case n == 0:
		return false
	case self.nominals[n-1] != 1:
		return false
	case n <= 2:
		return true
	}
	for i := 1; i < n; i++ {
		g := self.greedyCounts(Amount(self.nominals[i-1]) - 1)
		for j := i; j < n; j++ {
			// greedy prefix up to j, one more nominal j, nothing smaller
			var w Amount
			var size uint
			for k := 0; k <= j; k++ {
				c := g[k]
				if k == j {
					c++
				}
				w += Amount(self.nominals[k]) * Amount(c)
				size += c
			}
			if self.MakeChange(w).Pieces() > size {
				return false
			}
		}
	}
	return true
}

func (self Denominations) greedyCounts(amount Amount) []uint {
	counts := make([]uint, len(self.nominals))
	for i, n := range self.nominals {
		c := amount / Amount(n)
		counts[i] = uint(c)
		amount -= c * Amount(n)
	}
	return counts
}
