// server/internal/api/handlers/chef_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"chefhub-kw-api-server/internal/cache"
	"chefhub-kw-api-server/internal/models"
	"chefhub-kw-api-server/internal/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChefHandler struct {
	DB      *mongo.Database
	Machine *statemachine.ChefStatusMachine
	Ratings *cache.RatingsCache
}

type UpdateChefProfileRequest struct {
	Name                 string             `json:"name"`
	BusinessName         string             `json:"businessName"`
	Bio                  string             `json:"bio"`
	Specialties          []string           `json:"specialties"`
	Governorate          string             `json:"governorate"`
	Area                 string             `json:"area"`
	DeliveryGovernorates []string           `json:"deliveryGovernorates"`
	DeliveryFees         map[string]float64 `json:"deliveryFees"`
}

type SetChefStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active suspended"`
}

// GetActiveChefs lấy danh sách chef đang hoạt động cho trang chủ.
func (h *ChefHandler) GetActiveChefs(c *gin.Context) {
	filter := bson.M{"status": models.StatusActive}
	if governorate := c.Query("governorate"); governorate != "" {
		filter["deliveryGovernorates"] = governorate
	}
	if specialty := c.Query("specialty"); specialty != "" {
		filter["specialties"] = specialty
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}})
	cursor, err := h.DB.Collection("chefs").Find(context.Background(), filter, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query chefs"})
		return
	}
	defer cursor.Close(context.Background())

	var chefs []models.Chef
	if err = cursor.All(context.Background(), &chefs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode chefs"})
		return
	}

	if chefs == nil {
		chefs = []models.Chef{}
	}

	c.JSON(http.StatusOK, chefs)
}

// GetChefByID lấy hồ sơ công khai của một chef.
func (h *ChefHandler) GetChefByID(c *gin.Context) {
	chefID := c.Param("id")

	var chef models.Chef
	err := h.DB.Collection("chefs").FindOne(context.Background(), bson.M{"chefID": chefID}).Decode(&chef)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve chef"})
		}
		return
	}

	c.JSON(http.StatusOK, chef)
}

// GetChefRating trả về rating aggregate, ưu tiên bản cache.
func (h *ChefHandler) GetChefRating(c *gin.Context) {
	chefID := c.Param("id")

	if agg, err := h.Ratings.Get(context.Background(), chefID); err == nil && agg != nil {
		c.JSON(http.StatusOK, gin.H{"chefID": chefID, "rating": agg.Rating, "totalRatings": agg.TotalRatings, "cached": true})
		return
	}

	var chef models.Chef
	err := h.DB.Collection("chefs").FindOne(context.Background(), bson.M{"chefID": chefID}).Decode(&chef)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve chef"})
		}
		return
	}

	h.Ratings.Set(context.Background(), chefID, cache.RatingAggregate{Rating: chef.Rating, TotalRatings: chef.TotalRatings})
	c.JSON(http.StatusOK, gin.H{"chefID": chefID, "rating": chef.Rating, "totalRatings": chef.TotalRatings, "cached": false})
}

// GetMyProfile lấy hồ sơ của chef đang đăng nhập.
func (h *ChefHandler) GetMyProfile(c *gin.Context) {
	chefID := c.GetString("user_id")

	var chef models.Chef
	err := h.DB.Collection("chefs").FindOne(context.Background(), bson.M{"chefID": chefID}).Decode(&chef)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef profile not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve chef profile"})
		}
		return
	}

	c.JSON(http.StatusOK, chef)
}

// UpdateMyProfile cập nhật hồ sơ của chef đang đăng nhập.
// Không cho chef tự đổi status/isActive, việc đó chỉ đi qua state machine.
func (h *ChefHandler) UpdateMyProfile(c *gin.Context) {
	chefID := c.GetString("user_id")

	var req UpdateChefProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fees := make(map[string]primitive.Decimal128, len(req.DeliveryFees))
	for gov, fee := range req.DeliveryFees {
		fees[gov] = models.MoneyFromDecimal(decimal.NewFromFloat(fee))
	}

	update := bson.M{"$set": bson.M{
		"name":                 req.Name,
		"businessName":         req.BusinessName,
		"bio":                  req.Bio,
		"specialties":          req.Specialties,
		"governorate":          req.Governorate,
		"area":                 req.Area,
		"deliveryGovernorates": req.DeliveryGovernorates,
		"deliveryFees":         fees,
		"updatedAt":            time.Now(),
	}}

	result, err := h.DB.Collection("chefs").UpdateOne(context.Background(), bson.M{"chefID": chefID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update chef profile"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chef profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// --- Admin ---

// GetAllChefs cho admin, lọc được theo status (?status=pending).
func (h *ChefHandler) GetAllChefs(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := h.DB.Collection("chefs").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query chefs"})
		return
	}
	defer cursor.Close(context.Background())

	var chefs []models.Chef
	if err = cursor.All(context.Background(), &chefs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode chefs"})
		return
	}

	if chefs == nil {
		chefs = []models.Chef{}
	}

	c.JSON(http.StatusOK, chefs)
}

// SetChefStatus duyệt hoặc tạm ngưng một chef, cascade sang User và Dishes.
// Response luôn kèm result chi tiết để admin biết chính xác cái gì đã đổi,
// kể cả khi một bước thất bại giữa chừng.
func (h *ChefHandler) SetChefStatus(c *gin.Context) {
	chefID := c.Param("id")

	var req SetChefStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Machine.SetChefStatus(context.Background(), chefID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, statemachine.ErrChefNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
		case errors.Is(err, statemachine.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update chef status", "details": err.Error(), "partial": result})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "result": result})
}

// DeleteChef xóa chef cùng toàn bộ dish (dish trước, identity sau).
func (h *ChefHandler) DeleteChef(c *gin.Context) {
	chefID := c.Param("id")

	result, err := h.Machine.DeleteChef(context.Background(), chefID)
	if err != nil {
		var cleanup *statemachine.ErrDishCleanupIncomplete
		switch {
		case errors.Is(err, statemachine.ErrChefNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
		case errors.As(err, &cleanup):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":         "Dish cleanup failed, chef identity was NOT deleted",
				"dishesDeleted": cleanup.Deleted,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete chef", "details": err.Error(), "partial": result})
		}
		return
	}

	h.Ratings.Invalidate(context.Background(), chefID)

	c.JSON(http.StatusOK, gin.H{"status": "success", "result": result})
}
