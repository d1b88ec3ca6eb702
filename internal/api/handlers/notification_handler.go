// server/internal/api/handlers/notification_handler.go
package handlers

import (
	"context"
	"net/http"

	"chefhub-kw-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationHandler struct {
	DB *mongo.Database
}

// GetMyNotifications lấy thông báo của user đang đăng nhập, mới nhất trước.
// Admin đọc hộp thư chung qua userID sentinel "admin".
func (h *NotificationHandler) GetMyNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	if c.GetString("user_role") == models.RoleAdmin {
		userID = models.AdminRecipient
	}

	filter := bson.M{"userID": userID}
	if c.Query("unread") == "true" {
		filter["isRead"] = false
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(100)
	cursor, err := h.DB.Collection("notifications").Find(context.Background(), filter, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query notifications"})
		return
	}
	defer cursor.Close(context.Background())

	var notifications []models.Notification
	if err = cursor.All(context.Background(), &notifications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode notifications"})
		return
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead đánh dấu một thông báo của chính user là đã đọc.
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	userID := c.GetString("user_id")
	if c.GetString("user_role") == models.RoleAdmin {
		userID = models.AdminRecipient
	}

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	result, err := h.DB.Collection("notifications").UpdateOne(context.Background(),
		bson.M{"_id": objectID, "userID": userID},
		bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// MarkAllNotificationsRead đánh dấu mọi thông báo chưa đọc của user là đã đọc.
func (h *NotificationHandler) MarkAllNotificationsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	if c.GetString("user_role") == models.RoleAdmin {
		userID = models.AdminRecipient
	}

	result, err := h.DB.Collection("notifications").UpdateMany(context.Background(),
		bson.M{"userID": userID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "modified": result.ModifiedCount})
}
