// server/internal/models/dish.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dish thuộc về đúng một Chef (ChefID, không có FK ở tầng DB).
// IsActive đi theo trạng thái của chef sở hữu: chef bị suspend thì mọi dish
// bị tắt; ActiveBeforeSuspend ghi lại trạng thái trước đó để khi chef được
// kích hoạt lại, dish nào chef đã tự tắt từ trước sẽ không bị bật nhầm.
type Dish struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	DishID      string               `bson:"dishID" json:"dishID"`
	ChefID      string               `bson:"chefID" json:"chefID"`
	Name        LocalizedText        `bson:"name" json:"name"`
	Description LocalizedText        `bson:"description" json:"description"`
	Category    string               `bson:"category" json:"category"` // e.g., "main", "appetizer", "dessert"
	Price       primitive.Decimal128 `bson:"price" json:"price"`
	Images      []string             `bson:"images" json:"images"`

	Status      string `bson:"status" json:"status"` // Mirror trạng thái chef: pending | active | suspended
	IsActive    bool   `bson:"isActive" json:"isActive"`
	IsAvailable bool   `bson:"isAvailable" json:"isAvailable"` // Chef bật/tắt theo ngày (hết nguyên liệu...)

	ActiveBeforeSuspend *bool `bson:"activeBeforeSuspend,omitempty" json:"-"`

	Rating       float64   `bson:"rating" json:"rating"`
	TotalRatings int       `bson:"totalRatings" json:"totalRatings"`
	TotalOrders  int       `bson:"totalOrders" json:"totalOrders"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
