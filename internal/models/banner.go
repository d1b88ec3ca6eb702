// server/internal/models/banner.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner là ảnh quảng bá trên trang chủ, sắp xếp theo trường Order tăng dần
// (trùng Order thì theo thứ tự insert).
type Banner struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BannerID string             `bson:"bannerID" json:"bannerID"`
	Title    LocalizedText      `bson:"title" json:"title"`
	ImageURL string             `bson:"imageURL" json:"imageURL"`
	Link     string             `bson:"link,omitempty" json:"link,omitempty"` // Deep link khi bấm vào banner
	Order    int                `bson:"order" json:"order"`
	IsActive bool               `bson:"isActive" json:"isActive"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
