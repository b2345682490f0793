package currency

import (
	"fmt"
	"strings"
)

// Coins is number of coins (or bills) of single nominal.
type Coins struct {
	Nominal Nominal `json:"nominal"`
	Count   uint    `json:"count"`
}

// Change is nominal breakdown ordered as denominations, largest first.
// Only nominals with positive count are present.
// 2.00:4
// 1.00:1
// 0.20:1
// total: 9.20
type Change []Coins

func (self Change) Total() Amount {
	sum := Amount(0)
	for _, c := range self {
		sum += Amount(c.Nominal) * Amount(c.Count)
	}
	return sum
}

// Pieces is total number of coins.
func (self Change) Pieces() uint {
	n := uint(0)
	for _, c := range self {
		n += c.Count
	}
	return n
}

func (self Change) Get(n Nominal) uint {
	for _, c := range self {
		if c.Nominal == n {
			return c.Count
		}
	}
	return 0
}

func (self Change) Copy() Change {
	if self == nil {
		return nil
	}
	c2 := make(Change, len(self))
	copy(c2, self)
	return c2
}

func (self Change) String() string {
	parts := make([]string, 0, len(self)+1)
	for _, c := range self {
		parts = append(parts, fmt.Sprintf("%s:%d", c.Nominal.String(), c.Count))
	}
	parts = append(parts, fmt.Sprintf("total:%s", self.Total().Format100I()))
	return strings.Join(parts, ",")
}
