// server/internal/api/handlers/dish_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chefhub-kw-api-server/config"
	"chefhub-kw-api-server/internal/models"
	"chefhub-kw-api-server/internal/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type DishHandler struct {
	DB         *mongo.Database
	Cfg        config.Config
	S3Uploader *s3.Uploader
}

type LocalizedTextRequest struct {
	AR string `json:"ar" binding:"required"`
	EN string `json:"en" binding:"required"`
}

type CreateDishRequest struct {
	Name        LocalizedTextRequest `json:"name" binding:"required"`
	Description LocalizedTextRequest `json:"description" binding:"required"`
	Category    string               `json:"category" binding:"required"`
	Price       float64              `json:"price" binding:"required,gt=0"`
}

type UpdateDishRequest struct {
	Name        LocalizedTextRequest `json:"name" binding:"required"`
	Description LocalizedTextRequest `json:"description" binding:"required"`
	Category    string               `json:"category" binding:"required"`
	Price       float64              `json:"price" binding:"required,gt=0"`
	IsAvailable *bool                `json:"isAvailable" binding:"required"`
}

// GetActiveDishes lấy danh sách món đang bán, lọc được theo chef/category.
func (h *DishHandler) GetActiveDishes(c *gin.Context) {
	filter := bson.M{"isActive": true}
	if chefID := c.Query("chefID"); chefID != "" {
		filter["chefID"] = chefID
	}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}

	cursor, err := h.DB.Collection("dishes").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query dishes"})
		return
	}
	defer cursor.Close(context.Background())

	var dishes []models.Dish
	if err = cursor.All(context.Background(), &dishes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode dishes"})
		return
	}

	if dishes == nil {
		dishes = []models.Dish{}
	}

	c.JSON(http.StatusOK, dishes)
}

// GetDishByID lấy chi tiết một món.
func (h *DishHandler) GetDishByID(c *gin.Context) {
	dishID := c.Param("id")

	var dish models.Dish
	err := h.DB.Collection("dishes").FindOne(context.Background(), bson.M{"dishID": dishID}).Decode(&dish)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dish"})
		}
		return
	}

	c.JSON(http.StatusOK, dish)
}

// GetDishQR sinh ảnh QR PNG trỏ tới trang món ăn, để chef in kèm hộp giao.
func (h *DishHandler) GetDishQR(c *gin.Context) {
	dishID := c.Param("id")

	count, err := h.DB.Collection("dishes").CountDocuments(context.Background(), bson.M{"dishID": dishID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up dish"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}

	shareURL := fmt.Sprintf("%s/dishes/%s", strings.TrimRight(h.Cfg.Server.BaseURL, "/"), dishID)
	png, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// --- Chef ---

// GetMyDishes lấy mọi món của chef đang đăng nhập, kể cả món đã tắt.
func (h *DishHandler) GetMyDishes(c *gin.Context) {
	chefID := c.GetString("user_id")

	cursor, err := h.DB.Collection("dishes").Find(context.Background(), bson.M{"chefID": chefID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query dishes"})
		return
	}
	defer cursor.Close(context.Background())

	var dishes []models.Dish
	if err = cursor.All(context.Background(), &dishes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode dishes"})
		return
	}

	if dishes == nil {
		dishes = []models.Dish{}
	}

	c.JSON(http.StatusOK, dishes)
}

// CreateDish thêm món mới cho chef đang đăng nhập.
// Món mới thừa kế trạng thái của chef: chef pending/suspended thì món chưa hiện.
func (h *DishHandler) CreateDish(c *gin.Context) {
	chefID := c.GetString("user_id")

	var chef models.Chef
	err := h.DB.Collection("chefs").FindOne(context.Background(), bson.M{"chefID": chefID}).Decode(&chef)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef profile not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up chef"})
		}
		return
	}

	var req CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	newDish := models.Dish{
		DishID:      fmt.Sprintf("DSH-%s", strings.ToUpper(uuid.New().String()[:8])),
		ChefID:      chefID,
		Name:        models.LocalizedText{AR: req.Name.AR, EN: req.Name.EN},
		Description: models.LocalizedText{AR: req.Description.AR, EN: req.Description.EN},
		Category:    req.Category,
		Price:       models.MoneyFromDecimal(decimal.NewFromFloat(req.Price)),
		Images:      []string{},
		Status:      chef.Status,
		IsActive:    chef.Status == models.StatusActive,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := h.DB.Collection("dishes").InsertOne(context.Background(), newDish); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dish"})
		return
	}

	c.JSON(http.StatusCreated, newDish)
}

// UpdateMyDish cập nhật một món của chính chef.
// Chef bật/tắt món của mình qua isAvailable; isActive do cascade quản lý.
func (h *DishHandler) UpdateMyDish(c *gin.Context) {
	chefID := c.GetString("user_id")
	dishID := c.Param("id")

	var req UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"$set": bson.M{
		"name":        models.LocalizedText{AR: req.Name.AR, EN: req.Name.EN},
		"description": models.LocalizedText{AR: req.Description.AR, EN: req.Description.EN},
		"category":    req.Category,
		"price":       models.MoneyFromDecimal(decimal.NewFromFloat(req.Price)),
		"isAvailable": *req.IsAvailable,
		"updatedAt":   time.Now(),
	}}

	result, err := h.DB.Collection("dishes").UpdateOne(context.Background(),
		bson.M{"dishID": dishID, "chefID": chefID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dish"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dish updated successfully"})
}

// dishToggle tính trạng thái hiển thị mới khi chef bật/tắt một món.
// Chef không ở trạng thái active thì không được toggle: cascade suspend đã tắt
// món và chỉ SetChefStatus mới bật lại được, nếu cho toggle lúc này chef sẽ
// lách qua cả cascade lẫn activeBeforeSuspend.
func dishToggle(chefStatus string, currentActive bool) (newActive, allowed bool) {
	if chefStatus != models.StatusActive {
		return false, false
	}
	return !currentActive, true
}

// ToggleMyDish cho chef tự bật/tắt hiển thị một món.
// Tắt chủ động được ghi nhận để cascade reactivate không bật nhầm lại.
func (h *DishHandler) ToggleMyDish(c *gin.Context) {
	chefID := c.GetString("user_id")
	dishID := c.Param("id")

	var chef models.Chef
	err := h.DB.Collection("chefs").FindOne(context.Background(), bson.M{"chefID": chefID}).Decode(&chef)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef profile not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up chef"})
		}
		return
	}

	var dish models.Dish
	err = h.DB.Collection("dishes").FindOne(context.Background(),
		bson.M{"dishID": dishID, "chefID": chefID}).Decode(&dish)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up dish"})
		}
		return
	}

	newActive, allowed := dishToggle(chef.Status, dish.IsActive)
	if !allowed {
		c.JSON(http.StatusConflict, gin.H{"error": "Dishes cannot be toggled while your account is not active"})
		return
	}

	_, err = h.DB.Collection("dishes").UpdateOne(context.Background(),
		bson.M{"dishID": dishID, "chefID": chefID},
		bson.M{"$set": bson.M{"isActive": newActive, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle dish"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dishID": dishID, "isActive": newActive})
}

// DeleteMyDish xóa một món của chính chef.
func (h *DishHandler) DeleteMyDish(c *gin.Context) {
	chefID := c.GetString("user_id")
	dishID := c.Param("id")

	result, err := h.DB.Collection("dishes").DeleteOne(context.Background(),
		bson.M{"dishID": dishID, "chefID": chefID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete dish"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dish deleted successfully"})
}

// UploadDishImage upload ảnh món lên S3 và gắn URL vào document.
func (h *DishHandler) UploadDishImage(c *gin.Context) {
	chefID := c.GetString("user_id")
	dishID := c.Param("id")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	defer file.Close()

	objectKey := fmt.Sprintf("dishes/%s/%s-%s", dishID, uuid.New().String()[:8], header.Filename)
	url, err := h.S3Uploader.UploadFile(context.Background(), file, objectKey, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image", "details": err.Error()})
		return
	}

	result, err := h.DB.Collection("dishes").UpdateOne(context.Background(),
		bson.M{"dishID": dishID, "chefID": chefID},
		bson.M{"$push": bson.M{"images": url}, "$set": bson.M{"updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach image to dish"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageURL": url})
}
