// server/internal/models/order.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus là trạng thái vòng đời của một đơn hàng.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderPreparing  OrderStatus = "preparing"
	OrderReady      OrderStatus = "ready"
	OrderDelivering OrderStatus = "delivering"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderItem là một dòng hàng trong đơn, snapshot tên/giá tại thời điểm đặt.
type OrderItem struct {
	DishID    string               `bson:"dishID" json:"dishID"`
	ChefID    string               `bson:"chefID" json:"chefID"`
	Name      LocalizedText        `bson:"name" json:"name"`
	Quantity  int                  `bson:"quantity" json:"quantity"`
	UnitPrice primitive.Decimal128 `bson:"unitPrice" json:"unitPrice"`
	LineTotal primitive.Decimal128 `bson:"lineTotal" json:"lineTotal"`
}

// Order là đơn hàng của một customer với một chef duy nhất.
// Các trường tài chính được tính đúng một lần lúc checkout và không bao giờ
// được tính lại khi đổi trạng thái.
type Order struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID string             `bson:"orderID" json:"orderID"` // e.g., "ORD-3F2A9C1B"

	CustomerID   string `bson:"customerID" json:"customerID"`
	CustomerName string `bson:"customerName" json:"customerName"` // Denormalized
	ChefID       string `bson:"chefID" json:"chefID"`
	ChefName     string `bson:"chefName" json:"chefName"` // Denormalized

	Items           []OrderItem `bson:"items" json:"items"`
	DeliveryAddress Address     `bson:"deliveryAddress" json:"deliveryAddress"`

	PaymentMethod string `bson:"paymentMethod" json:"paymentMethod"` // "cash" | "knet" | "link"
	PaymentStatus string `bson:"paymentStatus" json:"paymentStatus"` // "unpaid" | "paid" | "refunded"

	Status OrderStatus `bson:"status" json:"status"`

	Subtotal     primitive.Decimal128 `bson:"subtotal" json:"subtotal"`
	DeliveryFee  primitive.Decimal128 `bson:"deliveryFee" json:"deliveryFee"`
	Commission   primitive.Decimal128 `bson:"commission" json:"commission"`
	Total        primitive.Decimal128 `bson:"total" json:"total"`
	ChefEarnings primitive.Decimal128 `bson:"chefEarnings" json:"chefEarnings"`

	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeliveredAt *time.Time `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CancelledAt *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
}
