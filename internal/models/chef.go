// server/internal/models/chef.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LegalAgreement lưu thông tin đồng ý điều khoản của chef khi đăng ký.
type LegalAgreement struct {
	AgreedToTerms bool      `bson:"agreedToTerms" json:"agreedToTerms"`
	Signature     string    `bson:"signature,omitempty" json:"signature,omitempty"`
	SignatureDate time.Time `bson:"signatureDate,omitempty" json:"signatureDate,omitempty"`
}

// Chef là hồ sơ người bán, 1:1 với User qua ChefID == User.UserID.
// Invariant: IsActive == (Status == "active"), và Status phải khớp với User.Status
// (được statemachine duy trì, không có ràng buộc ở tầng DB).
type Chef struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChefID       string             `bson:"chefID" json:"chefID"`
	Name         string             `bson:"name" json:"name"`
	BusinessName string             `bson:"businessName" json:"businessName"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Specialties  []string           `bson:"specialties" json:"specialties"` // e.g., "kuwaiti", "grills", "desserts"
	Governorate  string             `bson:"governorate" json:"governorate"`
	Area         string             `bson:"area" json:"area"`

	// Các tỉnh chef nhận giao hàng và phí giao theo từng tỉnh (KWD).
	DeliveryGovernorates []string                        `bson:"deliveryGovernorates" json:"deliveryGovernorates"`
	DeliveryFees         map[string]primitive.Decimal128 `bson:"deliveryFees" json:"deliveryFees"`

	Status   string `bson:"status" json:"status"` // pending | active | suspended
	IsActive bool   `bson:"isActive" json:"isActive"`

	Rating       float64 `bson:"rating" json:"rating"` // Trung bình 0–5
	TotalRatings int     `bson:"totalRatings" json:"totalRatings"`
	TotalOrders  int     `bson:"totalOrders" json:"totalOrders"`

	Legal     LegalAgreement `bson:"legal" json:"legal"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}
