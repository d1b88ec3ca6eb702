// server/internal/models/common.go
package models

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocalizedText lưu văn bản song ngữ Ả Rập / Anh.
type LocalizedText struct {
	AR string `bson:"ar" json:"ar"`
	EN string `bson:"en" json:"en"`
}

// Address là một object có cấu trúc để lưu địa chỉ giao hàng.
type Address struct {
	Governorate string `bson:"governorate" json:"governorate"` // e.g., "hawalli", "farwaniya"
	Area        string `bson:"area" json:"area"`
	Block       string `bson:"block,omitempty" json:"block,omitempty"`
	Street      string `bson:"street,omitempty" json:"street,omitempty"`
	Building    string `bson:"building,omitempty" json:"building,omitempty"`
	Notes       string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Tiền tệ KWD có 3 chữ số thập phân (fils).
const MoneyPlaces = 3

// MoneyFromDecimal chuyển một số decimal sang Decimal128 để lưu vào MongoDB,
// làm tròn về 3 chữ số thập phân một lần duy nhất tại thời điểm ghi.
func MoneyFromDecimal(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.StringFixed(MoneyPlaces))
	if err != nil {
		// StringFixed luôn sinh ra một decimal hợp lệ; nhánh này không thể xảy ra
		return primitive.Decimal128{}
	}
	return v
}

// DecimalFromMoney đọc một giá trị tiền đã lưu về lại decimal để tính toán.
func DecimalFromMoney(m primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(m.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
