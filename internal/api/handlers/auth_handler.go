// server/internal/api/handlers/auth_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chefhub-kw-api-server/config"
	"chefhub-kw-api-server/internal/auth"
	"chefhub-kw-api-server/internal/models"
	"chefhub-kw-api-server/internal/notifier"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthHandler struct {
	DB       *mongo.Database
	Cfg      config.Config
	Notifier *notifier.Notifier
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=customer chef"`

	// Các trường chỉ dành cho đăng ký chef
	BusinessName         string   `json:"businessName"`
	Governorate          string   `json:"governorate"`
	Area                 string   `json:"area"`
	Specialties          []string `json:"specialties"`
	DeliveryGovernorates []string `json:"deliveryGovernorates"`
	AgreedToTerms        bool     `json:"agreedToTerms"`
	Signature            string   `json:"signature"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register tạo tài khoản customer hoặc chef.
// Chef mới vào trạng thái pending và phải được admin duyệt mới bán được.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userCollection := h.DB.Collection("users")

	// Kiểm tra xem email đã được dùng chưa
	count, err := userCollection.CountDocuments(context.Background(), bson.M{"email": req.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for user"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	if req.Role == models.RoleChef && !req.AgreedToTerms {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chef registration requires agreeing to the terms"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	// Chef mới là pending; customer active ngay.
	status := models.StatusActive
	if req.Role == models.RoleChef {
		status = models.StatusPending
	}

	userID := fmt.Sprintf("%s-%s", req.Role, strings.ToUpper(uuid.New().String()[:8]))
	now := time.Now()
	newUser := models.User{
		UserID:    userID,
		Email:     req.Email,
		Name:      req.Name,
		Password:  hashedPassword,
		Role:      req.Role,
		Phone:     req.Phone,
		Status:    status,
		IsActive:  status == models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := userCollection.InsertOne(context.Background(), newUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// Với chef, tạo kèm hồ sơ Chef 1:1 và báo cho admin duyệt.
	if req.Role == models.RoleChef {
		newChef := models.Chef{
			ChefID:               userID,
			Name:                 req.Name,
			BusinessName:         req.BusinessName,
			Specialties:          req.Specialties,
			Governorate:          req.Governorate,
			Area:                 req.Area,
			DeliveryGovernorates: req.DeliveryGovernorates,
			Status:               models.StatusPending,
			IsActive:             false,
			Legal: models.LegalAgreement{
				AgreedToTerms: req.AgreedToTerms,
				Signature:     req.Signature,
				SignatureDate: now,
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := h.DB.Collection("chefs").InsertOne(context.Background(), newChef); err != nil {
			// User đã ghi xong; hồ sơ chef thiếu sẽ được phát hiện lúc admin duyệt.
			logrus.WithError(err).WithField("userID", userID).Error("Failed to create chef profile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create chef profile"})
			return
		}

		if err := h.Notifier.Notify(context.Background(), models.AdminRecipient, notifier.NewChefPending(req.Name)); err != nil {
			logrus.WithError(err).Warn("Failed to notify admin of pending chef")
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"userID": userID,
		"email":  req.Email,
		"role":   req.Role,
	})
}

// Login xác thực mật khẩu và trả về JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		}
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	expiration, err := time.ParseDuration(h.Cfg.JWT.Expiration)
	if err != nil {
		expiration = 24 * time.Hour
	}
	token, err := auth.GenerateJWT([]byte(h.Cfg.JWT.Secret), user.UserID, user.Email, user.Role, expiration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userID": user.UserID,
		"name":   user.Name,
		"role":   user.Role,
		"status": user.Status,
	})
}
