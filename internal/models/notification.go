// server/internal/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminRecipient là userID sentinel cho các thông báo broadcast tới admin.
const AdminRecipient = "admin"

// Các loại thông báo in-app.
const (
	NotifChefApproved       = "chef_approved"
	NotifChefSuspended      = "chef_suspended"
	NotifNewOrder           = "new_order"
	NotifOrderStatus        = "order_status"
	NotifNewSpecialOrder    = "new_special_order"
	NotifSpecialOrderQuoted = "special_order_quoted"
	NotifNewChefPending     = "new_chef_pending"
	NotifNewReview          = "new_review"
)

// Notification là thông báo in-app, chỉ được tạo như side effect của các
// transition nghiệp vụ; customer không bao giờ tự tạo notification.
type Notification struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  string             `bson:"userID" json:"userID"` // "admin" sentinel hoặc id của chef/customer
	Type    string             `bson:"type" json:"type"`
	Title   LocalizedText      `bson:"title" json:"title"`
	Message LocalizedText      `bson:"message" json:"message"`
	Link    string             `bson:"link,omitempty" json:"link,omitempty"`
	IsRead  bool               `bson:"isRead" json:"isRead"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
