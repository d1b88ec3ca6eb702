// server/internal/models/special_order.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpecialOrderStatus là trạng thái của một yêu cầu đặt món riêng.
type SpecialOrderStatus string

const (
	SpecialPending  SpecialOrderStatus = "pending"  // Customer vừa gửi yêu cầu
	SpecialQuoted   SpecialOrderStatus = "quoted"   // Chef đã báo giá
	SpecialAccepted SpecialOrderStatus = "accepted" // Customer chấp nhận giá
	SpecialDeclined SpecialOrderStatus = "declined" // Customer từ chối giá
	SpecialRejected SpecialOrderStatus = "rejected" // Chef từ chối yêu cầu
)

// SpecialOrder là yêu cầu đặt món theo số lượng lớn / dịp đặc biệt,
// customer mô tả nhu cầu và chef báo giá riêng.
type SpecialOrder struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SpecialOrderID string             `bson:"specialOrderID" json:"specialOrderID"` // e.g., "SO-1B7E4D20"

	CustomerID   string `bson:"customerID" json:"customerID"`
	CustomerName string `bson:"customerName" json:"customerName"`
	ChefID       string `bson:"chefID" json:"chefID"`
	ChefName     string `bson:"chefName" json:"chefName"`

	Description   string    `bson:"description" json:"description"`
	Servings      int       `bson:"servings" json:"servings"`
	RequestedDate time.Time `bson:"requestedDate" json:"requestedDate"`

	Budget      primitive.Decimal128 `bson:"budget,omitempty" json:"budget"`
	QuotedPrice primitive.Decimal128 `bson:"quotedPrice,omitempty" json:"quotedPrice"`
	ChefNote    string               `bson:"chefNote,omitempty" json:"chefNote,omitempty"`

	Status    SpecialOrderStatus `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
