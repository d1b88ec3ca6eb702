// server/internal/statemachine/pricing.go
package statemachine

import (
	"errors"

	"github.com/shopspring/decimal"

	"chefhub-kw-api-server/internal/models"
)

var ErrEmptyOrder = errors.New("order must contain at least one item")

// PricedItem là đầu vào tính tiền cho một dòng hàng.
type PricedItem struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Totals là kết quả tính tiền của một đơn, tính đúng một lần lúc checkout.
type Totals struct {
	Subtotal     decimal.Decimal
	DeliveryFee  decimal.Decimal
	Commission   decimal.Decimal
	Total        decimal.Decimal
	ChefEarnings decimal.Decimal
	LineTotals   []decimal.Decimal
}

// PriceOrder tính toàn bộ các trường tài chính của một đơn hàng:
//
//	subtotal     = Σ quantity × unitPrice
//	commission   = subtotal × commissionRate (làm tròn 3 chữ số, KWD)
//	total        = subtotal + deliveryFee
//	chefEarnings = subtotal − commission
//
// Các giá trị này không bao giờ được tính lại khi đơn đổi trạng thái.
func PriceOrder(items []PricedItem, deliveryFee, commissionRate decimal.Decimal) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, ErrEmptyOrder
	}

	subtotal := decimal.Zero
	lineTotals := make([]decimal.Decimal, 0, len(items))
	for _, item := range items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lineTotals = append(lineTotals, line)
		subtotal = subtotal.Add(line)
	}

	commission := subtotal.Mul(commissionRate).Round(models.MoneyPlaces)

	return Totals{
		Subtotal:     subtotal,
		DeliveryFee:  deliveryFee,
		Commission:   commission,
		Total:        subtotal.Add(deliveryFee),
		ChefEarnings: subtotal.Sub(commission),
		LineTotals:   lineTotals,
	}, nil
}
