// server/internal/models/outbox.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các kênh gửi thông báo ra ngoài.
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

// Trạng thái của một bản ghi outbox.
const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

// OutboxMessage là một intent gửi email/WhatsApp được enqueue bởi transition
// nghiệp vụ và được OutboxWorker xử lý bất đồng bộ. Gửi thất bại chỉ đánh dấu
// failed và ghi log, không bao giờ ảnh hưởng tới transition đã commit.
type OutboxMessage struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Channel string             `bson:"channel" json:"channel"` // email | whatsapp
	UserID  string             `bson:"userID" json:"userID"`

	// Địa chỉ nhận, tra từ User tại thời điểm enqueue.
	To    string `bson:"to,omitempty" json:"to,omitempty"`       // Email
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"` // WhatsApp

	Subject string `bson:"subject,omitempty" json:"subject,omitempty"`
	Body    string `bson:"body" json:"body"`

	Status    string     `bson:"status" json:"status"`
	Error     string     `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	SentAt    *time.Time `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
}
