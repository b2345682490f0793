package machine

import (
	"math"
	"sync"
	"testing"
	"testing/quick"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/vender-candy/currency"
	"github.com/temoto/vender-candy/internal/catalog"
	"github.com/temoto/vender-candy/log2"
)

func newTestMachine(t testing.TB) *Machine {
	m, err := New(catalog.Default(), currency.DefaultDenominations(), log2.NewTest(t, log2.LDebug))
	require.NoError(t, err)
	return m
}

func TestExecute(t *testing.T) {
	t.Parallel()

	type Case struct {
		name        string
		item        string
		quantity    int
		paid        string
		expectTotal currency.Amount
		expectUnit  currency.Amount
		expectErr   func(error) bool
	}
	cases := []Case{
		{"caramels-x2", "caramels", 2, "10.00", 998, 499, nil},
		{"lollipop-exact", "lollipop", 1, "2.99", 299, 299, nil},
		{"mince-drops", "mince drops", 1, "10.00", 69, 69, nil},
		{"gum-x3", "chewing gum", 3, "20", 597, 199, nil},
		{"licorice-short", "licorice", 1, "3.00", 0, 0, IsInsufficientPayment},
		{"gumball", "gumball", 1, "10.00", 0, 0, catalog.IsUnknownItem},
		{"padded-name", " caramels ", 1, "10.00", 0, 0, catalog.IsUnknownItem},
		{"case", "Lollipop", 1, "10.00", 0, 0, catalog.IsUnknownItem},
		{"zero-paid", "lollipop", 1, "0", 0, 0, IsInsufficientPayment},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			m := newTestMachine(t)
			tx, err := NewTransaction(c.item, c.quantity, currency.MustParseAmount(c.paid))
			require.NoError(t, err)
			r, err := m.Execute(tx)
			if c.expectErr != nil {
				require.Error(t, err)
				assert.Nil(t, r)
				assert.True(t, c.expectErr(err), "err=%v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.item, r.Item())
			assert.Equal(t, c.quantity, r.Quantity())
			assert.Equal(t, c.expectTotal, r.Total())
			assert.Equal(t, c.expectUnit, r.UnitPrice())
			assert.Equal(t, tx.Paid()-r.Total(), r.Change().Total())
		})
	}
}

func TestExecuteScenarios(t *testing.T) {
	t.Parallel()
	m := newTestMachine(t)

	t.Run("caramels", func(t *testing.T) {
		tx, err := NewTransaction("caramels", 2, 1000)
		require.NoError(t, err)
		r, err := m.Execute(tx)
		require.NoError(t, err)
		assert.Equal(t, currency.Amount(998), r.Total())
		assert.Equal(t, currency.Change{{Nominal: 2, Count: 1}}, r.Change())
		assert.False(t, r.ExactPayment())
	})
	t.Run("exact", func(t *testing.T) {
		tx, err := NewTransaction("lollipop", 1, 299)
		require.NoError(t, err)
		r, err := m.Execute(tx)
		require.NoError(t, err)
		assert.Equal(t, currency.Amount(299), r.Total())
		assert.Empty(t, r.Change())
		assert.True(t, r.ExactPayment())
	})
	t.Run("mince-drops", func(t *testing.T) {
		tx, err := NewTransaction("mince drops", 1, 1000)
		require.NoError(t, err)
		r, err := m.Execute(tx)
		require.NoError(t, err)
		assert.Equal(t, currency.Amount(69), r.Total())
		assert.Equal(t, currency.Change{{Nominal: 200, Count: 4}, {Nominal: 100, Count: 1}, {Nominal: 20, Count: 1}, {Nominal: 10, Count: 1}, {Nominal: 1, Count: 1}}, r.Change())
		assert.Equal(t, currency.Amount(931), r.Change().Total())
	})
	t.Run("insufficient", func(t *testing.T) {
		tx, err := NewTransaction("licorice", 1, 300)
		require.NoError(t, err)
		r, err := m.Execute(tx)
		assert.Nil(t, r)
		e, ok := AsInsufficientPayment(err)
		require.True(t, ok, "err=%v", err)
		assert.Equal(t, currency.Amount(359), e.Required)
		assert.Equal(t, currency.Amount(300), e.Provided)
		assert.Equal(t, currency.Amount(59), e.Missing())
		assert.Equal(t, "insufficient payment required=3.59 provided=3.00", err.Error())
	})
	t.Run("unknown", func(t *testing.T) {
		tx, err := NewTransaction("gumball", 1, 1000)
		require.NoError(t, err)
		_, err = m.Execute(tx)
		assert.Equal(t, catalog.UnknownItemError{Item: "gumball"}, err)
	})
	t.Run("zero-quantity", func(t *testing.T) {
		tx, err := NewTransaction("caramels", 0, 1000)
		assert.Nil(t, tx)
		assert.True(t, IsInvalidQuantity(err))
	})
}

func TestResultChangeIsolated(t *testing.T) {
	t.Parallel()
	m := newTestMachine(t)

	tx, err := NewTransaction("mince drops", 1, 1000)
	require.NoError(t, err)
	r, err := m.Execute(tx)
	require.NoError(t, err)
	c := r.Change()
	c[0].Count = 100
	assert.Equal(t, uint(4), r.Change()[0].Count)
	assert.Len(t, r.Change(), 5)
}

func TestUnitPriceRounding(t *testing.T) {
	t.Parallel()

	r := &Result{item: "x", quantity: 3, total: 100}
	assert.Equal(t, currency.Amount(33), r.UnitPrice())
	r = &Result{item: "x", quantity: 3, total: 200}
	assert.Equal(t, currency.Amount(67), r.UnitPrice())
	r = &Result{item: "x", quantity: 8, total: 4}
	assert.Equal(t, currency.Amount(1), r.UnitPrice())
}

func TestExecuteOverflow(t *testing.T) {
	t.Parallel()
	m := newTestMachine(t)

	tx, err := NewTransaction("caramels", math.MaxInt/100, 1000)
	require.NoError(t, err)
	_, err = m.Execute(tx)
	require.Error(t, err)
	assert.True(t, IsInvalidQuantity(err))
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(nil, currency.DefaultDenominations(), nil)
	assert.True(t, errors.IsNotValid(err))
	_, err = New(catalog.Default(), currency.Denominations{}, nil)
	assert.True(t, errors.IsNotValid(err))

	m, err := New(catalog.Default(), currency.DefaultDenominations(), nil)
	require.NoError(t, err)
	_, err = m.Execute(nil)
	assert.True(t, errors.IsNotValid(err))
	assert.Equal(t, 5, m.Catalog().Len())
	assert.Equal(t, 8, m.Denominations().Len())
}

func TestCustomConfiguration(t *testing.T) {
	t.Parallel()

	cat := catalog.MustNew(catalog.Item{Name: "pretzel", Price: 135})
	denoms, err := currency.NewDenominations(25, 10, 5, 1)
	require.NoError(t, err)
	m, err := New(cat, denoms, nil)
	require.NoError(t, err)

	tx, err := NewTransaction("pretzel", 1, 200)
	require.NoError(t, err)
	r, err := m.Execute(tx)
	require.NoError(t, err)
	assert.Equal(t, currency.Change{{Nominal: 25, Count: 2}, {Nominal: 10, Count: 1}, {Nominal: 5, Count: 1}}, r.Change())

	tx, err = NewTransaction("caramels", 1, 1000)
	require.NoError(t, err)
	_, err = m.Execute(tx)
	assert.True(t, catalog.IsUnknownItem(err))
}

// Invariants hold for any valid input.
func TestExecuteProperties(t *testing.T) {
	t.Parallel()
	m, err := New(catalog.Default(), currency.DefaultDenominations(), nil)
	require.NoError(t, err)
	names := m.Catalog().Names()

	f := func(itemIdx uint8, q uint8, paid uint32) bool {
		name := names[int(itemIdx)%len(names)]
		quantity := int(q%20) + 1
		tx, err := NewTransaction(name, quantity, currency.Amount(paid%100000))
		if err != nil {
			return false
		}
		price, _ := m.Catalog().Lookup(name)
		r, err := m.Execute(tx)
		if tx.Paid() < price.Mul(quantity) {
			return r == nil && IsInsufficientPayment(err)
		}
		if err != nil {
			return false
		}
		for _, c := range r.Change() {
			if c.Count == 0 || !m.Denominations().Has(c.Nominal) {
				return false
			}
		}
		r2, err2 := m.Execute(tx)
		return err2 == nil &&
			r.Total() == price.Mul(quantity) &&
			r.Change().Total() == tx.Paid()-r.Total() &&
			assert.ObjectsAreEqual(r, r2)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestExecuteConcurrent(t *testing.T) {
	t.Parallel()
	m := newTestMachine(t)

	var wg sync.WaitGroup
	for i := 1; i <= 16; i++ {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			tx, err := NewTransaction("mince drops", q, 2000)
			if err != nil {
				t.Error(err)
				return
			}
			r, err := m.Execute(tx)
			if err != nil {
				t.Error(err)
				return
			}
			if r.Total() != currency.Amount(69*q) || r.Change().Total() != 2000-r.Total() {
				t.Errorf("q=%d result=%s", q, r.String())
			}
		}(i)
	}
	wg.Wait()
}
