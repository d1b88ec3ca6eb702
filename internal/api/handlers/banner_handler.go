// server/internal/api/handlers/banner_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chefhub-kw-api-server/internal/models"
	"chefhub-kw-api-server/internal/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BannerHandler struct {
	DB         *mongo.Database
	S3Uploader *s3.Uploader
}

type CreateBannerRequest struct {
	Title LocalizedTextRequest `json:"title" binding:"required"`
	Link  string               `json:"link"`
}

type ReorderBannerRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// GetActiveBanners trả về banner đang bật theo thứ tự hiển thị (public).
func (h *BannerHandler) GetActiveBanners(c *gin.Context) {
	findOpts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := h.DB.Collection("banners").Find(context.Background(), bson.M{"isActive": true}, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query banners"})
		return
	}
	defer cursor.Close(context.Background())

	var banners []models.Banner
	if err = cursor.All(context.Background(), &banners); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode banners"})
		return
	}

	if banners == nil {
		banners = []models.Banner{}
	}

	c.JSON(http.StatusOK, banners)
}

// GetAllBanners cho admin, gồm cả banner đã tắt.
func (h *BannerHandler) GetAllBanners(c *gin.Context) {
	banners, err := h.loadBannersSorted(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query banners"})
		return
	}
	c.JSON(http.StatusOK, banners)
}

// CreateBanner thêm banner mới vào cuối danh sách.
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	var req CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Banner mới nhận order lớn nhất + 1
	maxOrder := 0
	var last models.Banner
	err := h.DB.Collection("banners").FindOne(context.Background(), bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})).Decode(&last)
	if err == nil {
		maxOrder = last.Order
	} else if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine banner order"})
		return
	}

	now := time.Now()
	newBanner := models.Banner{
		BannerID:  fmt.Sprintf("BNR-%s", strings.ToUpper(uuid.New().String()[:8])),
		Title:     models.LocalizedText{AR: req.Title.AR, EN: req.Title.EN},
		Link:      req.Link,
		Order:     maxOrder + 1,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := h.DB.Collection("banners").InsertOne(context.Background(), newBanner); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
		return
	}

	c.JSON(http.StatusCreated, newBanner)
}

// ToggleBanner bật/tắt một banner.
func (h *BannerHandler) ToggleBanner(c *gin.Context) {
	bannerID := c.Param("id")

	var banner models.Banner
	err := h.DB.Collection("banners").FindOne(context.Background(), bson.M{"bannerID": bannerID}).Decode(&banner)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up banner"})
		}
		return
	}

	newActive := !banner.IsActive
	_, err = h.DB.Collection("banners").UpdateOne(context.Background(),
		bson.M{"bannerID": bannerID},
		bson.M{"$set": bson.M{"isActive": newActive, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle banner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bannerID": bannerID, "isActive": newActive})
}

// ReorderBanner đổi chỗ một banner với banner kề trên/kề dưới.
// Đây là swap thật sự: ghi cả hai trường order, nên lặp lại thao tác không
// sinh ra giá trị order trùng nhau. Banner ở biên là no-op.
func (h *BannerHandler) ReorderBanner(c *gin.Context) {
	bannerID := c.Param("id")

	var req ReorderBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	banners, err := h.loadBannersSorted(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query banners"})
		return
	}

	writes, found := swapOrders(banners, bannerID, req.Direction)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}
	if len(writes) == 0 {
		// Biên danh sách: không có hàng xóm theo hướng yêu cầu
		c.JSON(http.StatusOK, gin.H{"status": "noop"})
		return
	}

	for _, w := range writes {
		if _, err := h.DB.Collection("banners").UpdateOne(context.Background(),
			bson.M{"bannerID": w.BannerID},
			bson.M{"$set": bson.M{"order": w.Order, "updatedAt": time.Now()}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder banner"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteBanner xóa một banner.
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	bannerID := c.Param("id")

	result, err := h.DB.Collection("banners").DeleteOne(context.Background(), bson.M{"bannerID": bannerID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted successfully"})
}

// UploadBannerImage upload ảnh banner lên S3 và gắn URL vào document.
func (h *BannerHandler) UploadBannerImage(c *gin.Context) {
	bannerID := c.Param("id")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	defer file.Close()

	objectKey := fmt.Sprintf("banners/%s/%s-%s", bannerID, uuid.New().String()[:8], header.Filename)
	url, err := h.S3Uploader.UploadFile(context.Background(), file, objectKey, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image", "details": err.Error()})
		return
	}

	result, err := h.DB.Collection("banners").UpdateOne(context.Background(),
		bson.M{"bannerID": bannerID},
		bson.M{"$set": bson.M{"imageURL": url, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach image to banner"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageURL": url})
}

func (h *BannerHandler) loadBannersSorted(ctx context.Context) ([]models.Banner, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := h.DB.Collection("banners").Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var banners []models.Banner
	if err = cursor.All(ctx, &banners); err != nil {
		return nil, err
	}
	if banners == nil {
		banners = []models.Banner{}
	}
	return banners, nil
}

// orderWrite là một lần ghi trường order cho một banner.
type orderWrite struct {
	BannerID string
	Order    int
}

// swapOrders tính các lần ghi cần thiết để đổi chỗ banner với hàng xóm của nó
// trong danh sách đã sort. Trả về (nil, true) khi banner ở biên (no-op),
// (nil, false) khi không tìm thấy banner. Nếu hai banner trùng giá trị order
// (dữ liệu cũ), gán lại theo vị trí trong danh sách để phá thế trùng.
func swapOrders(banners []models.Banner, bannerID, direction string) ([]orderWrite, bool) {
	idx := -1
	for i, b := range banners {
		if b.BannerID == bannerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	var neighborIdx int
	switch direction {
	case "up":
		if idx == 0 {
			return nil, true
		}
		neighborIdx = idx - 1
	case "down":
		if idx == len(banners)-1 {
			return nil, true
		}
		neighborIdx = idx + 1
	default:
		return nil, true
	}

	target, neighbor := banners[idx], banners[neighborIdx]
	targetOrder, neighborOrder := neighbor.Order, target.Order
	if targetOrder == neighborOrder {
		// Giá trị trùng nhau thì swap không đổi gì; gán theo vị trí danh sách
		targetOrder, neighborOrder = neighborIdx, idx
	}

	return []orderWrite{
		{BannerID: target.BannerID, Order: targetOrder},
		{BannerID: neighbor.BannerID, Order: neighborOrder},
	}, true
}
