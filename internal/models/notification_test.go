// server/internal/models/notification_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNotificationBSONRoundTrip(t *testing.T) {
	// BSON lưu thời gian UTC với độ chính xác millisecond
	created := time.Now().UTC().Truncate(time.Millisecond)

	original := Notification{
		UserID: "customer-DEF67890",
		Type:   NotifOrderStatus,
		Title: LocalizedText{
			AR: "تحديث الطلب ORD-ABC12345",
			EN: "Order ORD-ABC12345 update",
		},
		Message: LocalizedText{
			AR: "تم تأكيد طلبك",
			EN: "Your order ORD-ABC12345 is now confirmed",
		},
		Link:      "/orders/ORD-ABC12345",
		IsRead:    false,
		CreatedAt: created,
	}

	raw, err := bson.Marshal(original)
	require.NoError(t, err)

	var decoded Notification
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	assert.Equal(t, original.UserID, decoded.UserID)
	assert.Equal(t, original.Type, decoded.Type)
	assert.Equal(t, original.Title, decoded.Title)
	assert.Equal(t, original.Message, decoded.Message)
	assert.Equal(t, original.Link, decoded.Link)
	assert.False(t, decoded.IsRead)
	assert.True(t, created.Equal(decoded.CreatedAt))
}

func TestNotificationBSONOmitsEmptyLink(t *testing.T) {
	raw, err := bson.Marshal(Notification{UserID: AdminRecipient, Type: NotifNewChefPending, IsRead: true})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	_, hasLink := doc["link"]
	assert.False(t, hasLink)
	assert.Equal(t, true, doc["isRead"])
	assert.Equal(t, AdminRecipient, doc["userID"])
}
