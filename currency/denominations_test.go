package currency

import (
	"sort"
	"testing"
	"testing/quick"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDenominations(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		input     []Nominal
		expectErr error
	}
	cases := []Case{
		{"default", defaultNominals, nil},
		{"us", []Nominal{25, 10, 5, 1}, nil},
		{"single", []Nominal{1}, nil},
		{"empty", nil, ErrNominalInvalid},
		{"zero", []Nominal{5, 0, 1}, ErrNominalInvalid},
		{"ascending", []Nominal{1, 2, 5}, ErrNominalInvalid},
		{"duplicate", []Nominal{5, 5, 1}, ErrNominalInvalid},
		{"no-unit", []Nominal{200, 100, 50}, ErrNominalInvalid},
		{"not-canonical", []Nominal{4, 3, 1}, ErrNotCanonical},
		{"not-canonical-2", []Nominal{25, 10, 1}, ErrNotCanonical},
		{"huge", []Nominal{100000000000000, 1}, nil},
		{"huge-not-canonical", []Nominal{400000000000, 300000000000, 1}, ErrNotCanonical},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			d, err := NewDenominations(c.input...)
			if c.expectErr != nil {
				require.Error(t, err)
				assert.Equal(t, c.expectErr, errors.Cause(err))
				assert.Equal(t, 0, d.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.input, d.Nominals())
		})
	}
}

func TestDenominationsIsolated(t *testing.T) {
	t.Parallel()

	input := []Nominal{5, 2, 1}
	d, err := NewDenominations(input...)
	require.NoError(t, err)
	input[0] = 7
	ns := d.Nominals()
	ns[1] = 3
	assert.Equal(t, []Nominal{5, 2, 1}, d.Nominals())
	assert.True(t, d.Has(2))
	assert.False(t, d.Has(3))
}

func TestParseDenominations(t *testing.T) {
	t.Parallel()

	d, err := ParseDenominations([]string{"2.00", "1.00", "0.50", "0.20", "0.10", "0.05", "0.02", "0.01"})
	require.NoError(t, err)
	assert.Equal(t, DefaultDenominations().Nominals(), d.Nominals())
	assert.Equal(t, []string{"2.00", "1.00", "0.50", "0.20", "0.10", "0.05", "0.02", "0.01"}, d.Strings())

	d, err = ParseDenominations([]string{"1000000000000", "0.01"})
	require.NoError(t, err)
	assert.Equal(t, []Nominal{100000000000000, 1}, d.Nominals())

	_, err = ParseDenominations([]string{"2.00", "coin"})
	require.Error(t, err)
	assert.True(t, errors.IsNotValid(err))
}

func TestMakeChange(t *testing.T) {
	t.Parallel()

	d := DefaultDenominations()
	type Case struct {
		amount Amount
		expect Change
	}
	cases := []Case{
		{0, nil},
		{-5, nil},
		{2, Change{{2, 1}}},
		{931, Change{{200, 4}, {100, 1}, {20, 1}, {10, 1}, {1, 1}}},
		{388, Change{{200, 1}, {100, 1}, {50, 1}, {20, 1}, {10, 1}, {5, 1}, {2, 1}, {1, 1}}},
		{1000, Change{{200, 5}}},
	}
	for _, c := range cases {
		assert.Equal(t, c.expect, d.MakeChange(c.amount), "amount=%s", c.amount.String())
	}
	assert.Nil(t, Denominations{}.MakeChange(100))
}

func TestMakeChangeSum(t *testing.T) {
	t.Parallel()

	d := DefaultDenominations()
	f := func(u uint16) bool {
		a := Amount(u)
		change := d.MakeChange(a)
		for _, c := range change {
			if c.Count == 0 || !d.Has(c.Nominal) {
				return false
			}
		}
		return change.Total() == a
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	assert.True(t, DefaultDenominations().Canonical())
	assert.False(t, Denominations{}.Canonical())
	assert.False(t, Denominations{nominals: []Nominal{4, 3, 1}}.Canonical())
	assert.True(t, Denominations{nominals: []Nominal{100, 50, 25, 10, 5, 1}}.Canonical())
}

// minimal coin count by exhaustive search agrees with Canonical on small sets
func TestCanonicalExhaustive(t *testing.T) {
	t.Parallel()

	f := func(raw [4]uint8) bool {
		seen := map[Nominal]bool{1: true}
		nominals := []Nominal{}
		for _, r := range raw {
			n := Nominal(r%60) + 2
			if !seen[n] {
				seen[n] = true
				nominals = append(nominals, n)
			}
		}
		sort.Slice(nominals, func(a, b int) bool { return nominals[a] > nominals[b] })
		d := Denominations{nominals: append(nominals, 1)}

		expect := true
		limit := Amount(d.nominals[0]) * 2
		best := make([]uint, limit)
		for a := Amount(1); a < limit; a++ {
			best[a] = uint(a)
			for _, n := range d.nominals {
				if Amount(n) <= a && best[a-Amount(n)]+1 < best[a] {
					best[a] = best[a-Amount(n)] + 1
				}
			}
			if d.MakeChange(a).Pieces() != best[a] {
				expect = false
				break
			}
		}
		return d.Canonical() == expect
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
