// server/internal/notifier/notifier.go
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chefhub-kw-api-server/internal/models"
	"chefhub-kw-api-server/internal/socket"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Notifier tạo thông báo in-app (đồng bộ, authoritative) và enqueue các intent
// gửi email/WhatsApp vào outbox để worker xử lý bất đồng bộ.
type Notifier struct {
	DB  *mongo.Database
	Hub *socket.Hub
}

func New(db *mongo.Database, hub *socket.Hub) *Notifier {
	return &Notifier{DB: db, Hub: hub}
}

// Notify gửi thông báo tới một user qua các kênh được chỉ định.
// Kênh in-app luôn được ghi; lỗi enqueue outbox chỉ được log, không propagate:
// transition nghiệp vụ không bao giờ fail vì side effect thông báo.
func (n *Notifier) Notify(ctx context.Context, userID string, tpl Template, channels ...string) error {
	notification := models.Notification{
		UserID:    userID,
		Type:      tpl.Type,
		Title:     tpl.Title,
		Message:   tpl.Message,
		Link:      tpl.Link,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	if _, err := n.DB.Collection("notifications").InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	// Đẩy realtime cho client đang online. Client offline sẽ thấy thông báo
	// khi query collection notifications lần sau.
	if n.Hub != nil {
		if payload, err := json.Marshal(notification); err == nil {
			if err := n.Hub.Send(userID, payload); err != nil {
				logrus.WithError(err).WithField("userID", userID).Warn("Failed to push notification over websocket")
			}
		}
	}

	for _, channel := range channels {
		if err := n.enqueue(ctx, userID, channel, tpl); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"userID":  userID,
				"channel": channel,
			}).Error("Failed to enqueue outbox message")
		}
	}

	return nil
}

// enqueue tra địa chỉ nhận từ collection users rồi ghi một bản ghi outbox.
func (n *Notifier) enqueue(ctx context.Context, userID, channel string, tpl Template) error {
	var user models.User
	err := n.DB.Collection("users").FindOne(ctx, bson.M{"userID": userID}).Decode(&user)
	if err != nil {
		return fmt.Errorf("recipient lookup failed: %w", err)
	}

	msg, err := buildOutboxMessage(userID, channel, tpl, user)
	if err != nil {
		return err
	}

	_, err = n.DB.Collection("notification_outbox").InsertOne(ctx, msg)
	return err
}

// buildOutboxMessage dựng bản ghi outbox pending cho một kênh từ template và
// thông tin liên lạc của người nhận.
func buildOutboxMessage(userID, channel string, tpl Template, user models.User) (models.OutboxMessage, error) {
	msg := models.OutboxMessage{
		Channel:   channel,
		UserID:    userID,
		Status:    models.OutboxPending,
		CreatedAt: time.Now(),
	}

	switch channel {
	case models.ChannelEmail:
		if user.Email == "" {
			return msg, fmt.Errorf("user %s has no email address", userID)
		}
		msg.To = user.Email
		msg.Subject = tpl.Title.EN
		msg.Body = tpl.HTML()
	case models.ChannelWhatsApp:
		if user.Phone == "" {
			return msg, fmt.Errorf("user %s has no phone number", userID)
		}
		msg.Phone = user.Phone
		msg.Body = tpl.PlainText()
	default:
		return msg, fmt.Errorf("unknown channel %q", channel)
	}

	return msg, nil
}
