// Package catalog is read-only price list of items sold by machine.
package catalog

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/vender-candy/currency"
)

type Item struct {
	Name  string
	Price currency.Amount
}

func (self Item) String() string { return fmt.Sprintf("%s=%s", self.Name, self.Price.Format100I()) }

// UnknownItemError means catalog has no exact match for requested name.
type UnknownItemError struct {
	Item string
}

func (self UnknownItemError) Error() string { return fmt.Sprintf("unknown item=%q", self.Item) }

func IsUnknownItem(err error) bool {
	_, ok := errors.Cause(err).(UnknownItemError)
	return ok
}

// Catalog is immutable after New and safe for concurrent use.
// Names are matched exactly, case and whitespace sensitive.
type Catalog struct {
	items []Item
	index map[string]int
}

func New(items ...Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return nil, errors.NotValidf("item name=%q", it.Name)
		}
		if it.Price <= 0 {
			return nil, errors.NotValidf("item=%s price=%s", it.Name, it.Price.Format100I())
		}
		if _, ok := c.index[it.Name]; ok {
			return nil, errors.AlreadyExistsf("item=%s", it.Name)
		}
		c.index[it.Name] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

func MustNew(items ...Item) *Catalog {
	c, err := New(items...)
	if err != nil {
		panic("code error catalog: " + err.Error())
	}
	return c
}

// Default is stock candy price list.
func Default() *Catalog {
	return MustNew(
		Item{"caramels", 499},
		Item{"lollipop", 299},
		Item{"mince drops", 69},
		Item{"chewing gum", 199},
		Item{"licorice", 359},
	)
}

func (self *Catalog) Lookup(name string) (currency.Amount, error) {
	i, ok := self.index[name]
	if !ok {
		return 0, UnknownItemError{Item: name}
	}
	return self.items[i].Price, nil
}

func (self *Catalog) IsValid(name string) bool {
	_, ok := self.index[name]
	return ok
}

// Names in construction order.
func (self *Catalog) Names() []string {
	names := make([]string, len(self.items))
	for i, it := range self.items {
		names[i] = it.Name
	}
	return names
}

func (self *Catalog) Items() []Item { return append([]Item(nil), self.items...) }

func (self *Catalog) Len() int { return len(self.items) }
