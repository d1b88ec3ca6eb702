// server/internal/api/handlers/review_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"chefhub-kw-api-server/internal/cache"
	"chefhub-kw-api-server/internal/models"
	"chefhub-kw-api-server/internal/notifier"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewHandler struct {
	DB       *mongo.Database
	Notifier *notifier.Notifier
	Ratings  *cache.RatingsCache
}

type CreateReviewRequest struct {
	OrderID string `json:"orderID" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview: customer đánh giá chef sau khi đơn đã giao thành công.
// Mỗi đơn chỉ đánh giá được một lần; aggregate rating của chef được cập nhật
// ngay trong cùng request.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	customerID := c.GetString("user_id")

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Đơn phải thuộc customer này và đã ở trạng thái delivered
	var order models.Order
	err := h.DB.Collection("orders").FindOne(context.Background(),
		bson.M{"orderID": req.OrderID, "customerID": customerID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up order"})
		}
		return
	}
	if order.Status != models.OrderDelivered {
		c.JSON(http.StatusConflict, gin.H{"error": "Only delivered orders can be reviewed"})
		return
	}

	count, err := h.DB.Collection("chef_reviews").CountDocuments(context.Background(),
		bson.M{"orderID": req.OrderID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing reviews"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "This order has already been reviewed"})
		return
	}

	var chef models.Chef
	if err := h.DB.Collection("chefs").FindOne(context.Background(),
		bson.M{"chefID": order.ChefID}).Decode(&chef); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up chef"})
		return
	}

	newReview := models.ChefReview{
		ChefID:       order.ChefID,
		CustomerID:   customerID,
		CustomerName: order.CustomerName,
		OrderID:      order.OrderID,
		Rating:       req.Rating,
		Comment:      req.Comment,
		CreatedAt:    time.Now(),
	}

	if _, err := h.DB.Collection("chef_reviews").InsertOne(context.Background(), newReview); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	// Cập nhật aggregate theo công thức trung bình cộng dồn
	newTotal := chef.TotalRatings + 1
	newRating := (chef.Rating*float64(chef.TotalRatings) + float64(req.Rating)) / float64(newTotal)
	_, err = h.DB.Collection("chefs").UpdateOne(context.Background(),
		bson.M{"chefID": order.ChefID},
		bson.M{"$set": bson.M{"rating": newRating, "totalRatings": newTotal, "updatedAt": time.Now()}})
	if err != nil {
		logrus.WithError(err).WithField("chefID", order.ChefID).Error("Failed to update chef rating aggregate")
	} else {
		h.Ratings.Set(context.Background(), order.ChefID, cache.RatingAggregate{Rating: newRating, TotalRatings: newTotal})
	}

	tpl := notifier.NewReview(chef.Name, req.Rating)
	if err := h.Notifier.Notify(context.Background(), chef.ChefID, tpl); err != nil {
		logrus.WithError(err).WithField("chefID", chef.ChefID).Error("Failed to notify chef of new review")
	}

	c.JSON(http.StatusCreated, newReview)
}

// GetChefReviews lấy đánh giá của một chef (public), mới nhất trước.
func (h *ReviewHandler) GetChefReviews(c *gin.Context) {
	chefID := c.Param("id")

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("chef_reviews").Find(context.Background(), bson.M{"chefID": chefID}, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query reviews"})
		return
	}
	defer cursor.Close(context.Background())

	var reviews []models.ChefReview
	if err = cursor.All(context.Background(), &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reviews"})
		return
	}

	if reviews == nil {
		reviews = []models.ChefReview{}
	}

	c.JSON(http.StatusOK, reviews)
}

// GetMyReviews lấy các đánh giá customer đang đăng nhập đã viết.
func (h *ReviewHandler) GetMyReviews(c *gin.Context) {
	customerID := c.GetString("user_id")

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("chef_reviews").Find(context.Background(), bson.M{"customerID": customerID}, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query reviews"})
		return
	}
	defer cursor.Close(context.Background())

	var reviews []models.ChefReview
	if err = cursor.All(context.Background(), &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reviews"})
		return
	}

	if reviews == nil {
		reviews = []models.ChefReview{}
	}

	c.JSON(http.StatusOK, reviews)
}
