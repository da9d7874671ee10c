package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPrecedenceResolver(t *testing.T) {
	t.Run("mfn retained as fallback", func(t *testing.T) {
		r := newPrecedenceResolver()
		base, err := r.DetermineBaseDuty(dec("50"), nil, false)
		assert.NoError(t, err)
		assert.True(t, base.Equal(dec("50")))
	})

	t.Run("minimum of mfn and fta", func(t *testing.T) {
		r := newPrecedenceResolver()
		fta := dec("30")
		base, err := r.DetermineBaseDuty(dec("50"), &fta, false)
		assert.NoError(t, err)
		assert.True(t, base.Equal(dec("30")))
	})

	t.Run("concession zeroes base duty only", func(t *testing.T) {
		r := newPrecedenceResolver()
		fta := dec("30")
		base, err := r.DetermineBaseDuty(dec("50"), &fta, true)
		assert.NoError(t, err)
		assert.True(t, base.IsZero())

		total, err := r.AddTradeRemedy(dec("150"))
		assert.NoError(t, err)
		assert.True(t, total.Equal(dec("150")))
	})

	t.Run("full resolution", func(t *testing.T) {
		r := newPrecedenceResolver()
		_, err := r.DetermineBaseDuty(dec("50"), nil, false)
		assert.NoError(t, err)
		total, err := r.AddTradeRemedy(decimal.Zero)
		assert.NoError(t, err)
		assert.True(t, total.Equal(dec("50")))
		assert.NoError(t, r.ApplyTax(dec("105")))
		payable, err := r.TotalPayable()
		assert.NoError(t, err)
		assert.True(t, payable.Equal(dec("155")))
	})

	t.Run("steps out of order rejected", func(t *testing.T) {
		r := newPrecedenceResolver()
		_, err := r.AddTradeRemedy(decimal.Zero)
		assert.Error(t, err)
		assert.Error(t, r.ApplyTax(decimal.Zero))
		_, err = r.TotalPayable()
		assert.Error(t, err)
	})

	t.Run("base duty cannot be determined twice", func(t *testing.T) {
		r := newPrecedenceResolver()
		_, err := r.DetermineBaseDuty(dec("50"), nil, false)
		assert.NoError(t, err)
		_, err = r.DetermineBaseDuty(dec("50"), nil, false)
		assert.Error(t, err)
	})
}
