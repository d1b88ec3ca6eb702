// server/internal/statemachine/pricing_test.go
package statemachine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestPriceOrder(t *testing.T) {
	items := []PricedItem{
		{UnitPrice: d("1.250"), Quantity: 2},
		{UnitPrice: d("3.500"), Quantity: 1},
	}

	totals, err := PriceOrder(items, d("1.500"), d("0.15"))
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(d("6.000")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.DeliveryFee.Equal(d("1.500")))
	assert.True(t, totals.Commission.Equal(d("0.900")), "commission = %s", totals.Commission)
	assert.True(t, totals.Total.Equal(d("7.500")), "total = %s", totals.Total)
	assert.True(t, totals.ChefEarnings.Equal(d("5.100")), "chefEarnings = %s", totals.ChefEarnings)

	require.Len(t, totals.LineTotals, 2)
	assert.True(t, totals.LineTotals[0].Equal(d("2.500")))
	assert.True(t, totals.LineTotals[1].Equal(d("3.500")))
}

func TestPriceOrderCommissionRounding(t *testing.T) {
	// 1.111 × 0.15 = 0.16665, làm tròn 3 chữ số KWD thành 0.167
	totals, err := PriceOrder([]PricedItem{{UnitPrice: d("1.111"), Quantity: 1}}, decimal.Zero, d("0.15"))
	require.NoError(t, err)

	assert.True(t, totals.Commission.Equal(d("0.167")), "commission = %s", totals.Commission)
	assert.True(t, totals.ChefEarnings.Equal(d("0.944")), "chefEarnings = %s", totals.ChefEarnings)
	// Total không phụ thuộc commission: customer trả subtotal + fee
	assert.True(t, totals.Total.Equal(d("1.111")))
}

func TestPriceOrderZeroCommission(t *testing.T) {
	totals, err := PriceOrder([]PricedItem{{UnitPrice: d("2.000"), Quantity: 3}}, d("0.500"), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.Commission.IsZero())
	assert.True(t, totals.ChefEarnings.Equal(d("6.000")))
	assert.True(t, totals.Total.Equal(d("6.500")))
}

func TestPriceOrderEmpty(t *testing.T) {
	_, err := PriceOrder(nil, d("1.000"), d("0.15"))
	assert.ErrorIs(t, err, ErrEmptyOrder)
}
