// server/internal/notifier/outbox_worker.go
package notifier

import (
	"context"
	"time"

	"chefhub-kw-api-server/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OutboxWorker đọc các bản ghi outbox đang pending theo chu kỳ và relay qua
// provider tương ứng. Gửi thất bại đánh dấu failed kèm lỗi và ghi log, không
// retry tự động; reconcile thủ công qua collection notification_outbox.
type OutboxWorker struct {
	DB       *mongo.Database
	Email    *EmailClient
	WhatsApp *WhatsAppClient
	Interval time.Duration // Khoảng thời gian giữa các lần quét
	Batch    int           // Số bản ghi tối đa mỗi lần quét
}

func NewOutboxWorker(db *mongo.Database, email *EmailClient, whatsapp *WhatsAppClient, interval time.Duration, batch int) *OutboxWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if batch <= 0 {
		batch = 50
	}
	return &OutboxWorker{DB: db, Email: email, WhatsApp: whatsapp, Interval: interval, Batch: batch}
}

// Start chạy worker trong vòng lặp cho tới khi context bị hủy.
func (w *OutboxWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	logrus.WithFields(logrus.Fields{
		"interval": w.Interval.String(),
		"batch":    w.Batch,
	}).Info("Starting notification outbox worker")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Notification outbox worker stopped")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

func (w *OutboxWorker) processBatch(ctx context.Context) {
	collection := w.DB.Collection("notification_outbox")

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(int64(w.Batch))
	cursor, err := collection.Find(ctx, bson.M{"status": models.OutboxPending}, findOpts)
	if err != nil {
		logrus.WithError(err).Error("Failed to query pending outbox messages")
		return
	}

	var pending []models.OutboxMessage
	if err := cursor.All(ctx, &pending); err != nil {
		logrus.WithError(err).Error("Failed to decode outbox messages")
		return
	}

	for _, msg := range pending {
		if err := w.dispatch(ctx, msg); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"channel": msg.Channel,
				"userID":  msg.UserID,
			}).Warn("Outbox dispatch failed")
			w.markFailed(ctx, msg, err)
			continue
		}
		w.markSent(ctx, msg)
	}
}

func (w *OutboxWorker) dispatch(ctx context.Context, msg models.OutboxMessage) error {
	switch msg.Channel {
	case models.ChannelEmail:
		return w.Email.Send(ctx, msg.To, msg.Subject, msg.Body, nil)
	case models.ChannelWhatsApp:
		return w.WhatsApp.Send(ctx, msg.Phone, msg.Body, nil)
	default:
		// Bản ghi kênh lạ được đánh dấu failed để không bị quét lại mãi.
		return &unknownChannelError{channel: msg.Channel}
	}
}

func (w *OutboxWorker) markSent(ctx context.Context, msg models.OutboxMessage) {
	now := time.Now()
	_, err := w.DB.Collection("notification_outbox").UpdateOne(ctx,
		bson.M{"_id": msg.ID},
		bson.M{"$set": bson.M{"status": models.OutboxSent, "sentAt": now}},
	)
	if err != nil {
		logrus.WithError(err).Error("Failed to mark outbox message as sent")
	}
}

func (w *OutboxWorker) markFailed(ctx context.Context, msg models.OutboxMessage, cause error) {
	_, err := w.DB.Collection("notification_outbox").UpdateOne(ctx,
		bson.M{"_id": msg.ID},
		bson.M{"$set": bson.M{"status": models.OutboxFailed, "error": cause.Error()}},
	)
	if err != nil {
		logrus.WithError(err).Error("Failed to mark outbox message as failed")
	}
}

type unknownChannelError struct{ channel string }

func (e *unknownChannelError) Error() string { return "unknown outbox channel " + e.channel }
