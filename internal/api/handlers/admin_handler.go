// server/internal/api/handlers/admin_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"chefhub-kw-api-server/internal/models"
	"chefhub-kw-api-server/internal/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdminHandler struct {
	DB      *mongo.Database
	Machine *statemachine.ChefStatusMachine
}

type DeleteUserRequest struct {
	UserID  string `json:"userId" binding:"required"`
	AdminID string `json:"adminId" binding:"required"`
}

// DeleteUser xóa một tài khoản cùng dữ liệu hồ sơ liên quan.
// Với chef, đi qua trình tự xóa chef (dish trước, identity sau); với customer,
// xóa user và thông báo của họ. adminId được ghi log để audit.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"userID": req.UserID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		}
		return
	}

	log := logrus.WithFields(logrus.Fields{
		"adminID": req.AdminID,
		"userID":  req.UserID,
		"role":    user.Role,
	})

	if user.Role == models.RoleChef {
		if _, err := h.Machine.DeleteChef(context.Background(), req.UserID); err != nil {
			if errors.Is(err, statemachine.ErrChefNotFound) {
				// Chef chưa có profile document, xóa mỗi identity là đủ
				if _, err := h.DB.Collection("users").DeleteOne(context.Background(), bson.M{"userID": req.UserID}); err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
					return
				}
			} else {
				log.WithError(err).Error("Admin chef deletion failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		log.Info("Admin deleted chef account")
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if _, err := h.DB.Collection("users").DeleteOne(context.Background(), bson.M{"userID": req.UserID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if _, err := h.DB.Collection("notifications").DeleteMany(context.Background(), bson.M{"userID": req.UserID}); err != nil {
		log.WithError(err).Warn("Failed to delete notifications of removed user")
	}

	log.Info("Admin deleted user account")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
