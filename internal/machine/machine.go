// Package machine processes candy purchase: price lookup, payment check, change.
package machine

import (
	"math"

	"github.com/juju/errors"
	"github.com/temoto/vender-candy/currency"
	"github.com/temoto/vender-candy/internal/catalog"
	"github.com/temoto/vender-candy/log2"
)

// Machine has no mutable state, Execute may be called concurrently.
type Machine struct {
	catalog *catalog.Catalog
	denoms  currency.Denominations
	log     *log2.Log
}

// New log may be nil.
func New(cat *catalog.Catalog, denoms currency.Denominations, log *log2.Log) (*Machine, error) {
	if cat == nil {
		return nil, errors.NotValidf("catalog=nil")
	}
	if denoms.Len() == 0 {
		return nil, errors.NotValidf("denominations empty")
	}
	return &Machine{catalog: cat, denoms: denoms, log: log}, nil
}

func (self *Machine) Catalog() *catalog.Catalog              { return self.catalog }
func (self *Machine) Denominations() currency.Denominations { return self.denoms }

// Execute either returns complete Result or error, never both.
// Errors: catalog.UnknownItemError, InsufficientPaymentError.
func (self *Machine) Execute(tx *Transaction) (*Result, error) {
	if tx == nil {
		return nil, errors.NotValidf("transaction=nil")
	}
	unitPrice, err := self.catalog.Lookup(tx.Item())
	if err != nil {
		self.log.Debugf("machine reject %s err=%v", tx.String(), err)
		return nil, err
	}

	if int64(tx.Quantity()) > math.MaxInt64/int64(unitPrice) {
		return nil, errors.Annotatef(InvalidQuantityError{Quantity: tx.Quantity()}, "total overflow price=%s", unitPrice.Format100I())
	}
	total := unitPrice.Mul(tx.Quantity())
	if tx.Paid() < total {
		err = InsufficientPaymentError{Required: total, Provided: tx.Paid()}
		self.log.Debugf("machine reject %s err=%v", tx.String(), err)
		return nil, err
	}

	r := &Result{
		item:     tx.Item(),
		quantity: tx.Quantity(),
		total:    total,
		change:   self.denoms.MakeChange(tx.Paid() - total),
	}
	self.log.Debugf("machine sold %s", r.String())
	return r, nil
}
