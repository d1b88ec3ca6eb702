// server/internal/models/common_test.go
package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyRoundTrip(t *testing.T) {
	for _, s := range []string{"0.000", "1.250", "12.500", "999.999"} {
		d, err := decimal.NewFromString(s)
		require.NoError(t, err)

		stored := MoneyFromDecimal(d)
		assert.Equal(t, s, stored.String())

		back := DecimalFromMoney(stored)
		assert.True(t, back.Equal(d), "round trip of %s gave %s", s, back)
	}
}

func TestMoneyFromDecimalRounds(t *testing.T) {
	// KWD có 3 chữ số thập phân; chữ số thừa bị làm tròn lúc ghi
	d, err := decimal.NewFromString("1.23456")
	require.NoError(t, err)

	assert.Equal(t, "1.235", MoneyFromDecimal(d).String())
}
