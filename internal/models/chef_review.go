// server/internal/models/chef_review.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChefReview là đánh giá của customer cho một chef sau khi đơn đã giao.
type ChefReview struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChefID       string             `bson:"chefID" json:"chefID"`
	CustomerID   string             `bson:"customerID" json:"customerID"`
	CustomerName string             `bson:"customerName" json:"customerName"`
	OrderID      string             `bson:"orderID" json:"orderID"`
	Rating       int                `bson:"rating" json:"rating"` // 1–5
	Comment      string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
