// server/internal/api/handlers/special_order_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chefhub-kw-api-server/internal/models"
	"chefhub-kw-api-server/internal/notifier"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SpecialOrderHandler struct {
	DB       *mongo.Database
	Notifier *notifier.Notifier
}

type CreateSpecialOrderRequest struct {
	ChefID        string    `json:"chefID" binding:"required"`
	Description   string    `json:"description" binding:"required"`
	Servings      int       `json:"servings" binding:"required,gt=0"`
	RequestedDate time.Time `json:"requestedDate" binding:"required"`
	Budget        float64   `json:"budget"`
}

type QuoteSpecialOrderRequest struct {
	Price    float64 `json:"price" binding:"required,gt=0"`
	ChefNote string  `json:"chefNote"`
}

// CreateSpecialOrder: customer gửi yêu cầu đặt món riêng cho một chef.
func (h *SpecialOrderHandler) CreateSpecialOrder(c *gin.Context) {
	customerID := c.GetString("user_id")

	var req CreateSpecialOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var chef models.Chef
	err := h.DB.Collection("chefs").FindOne(context.Background(), bson.M{"chefID": req.ChefID}).Decode(&chef)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up chef"})
		}
		return
	}
	if chef.Status != models.StatusActive {
		c.JSON(http.StatusConflict, gin.H{"error": "Chef is not accepting orders"})
		return
	}

	var customer models.User
	if err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"userID": customerID}).Decode(&customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up customer"})
		return
	}

	now := time.Now()
	newSpecialOrder := models.SpecialOrder{
		SpecialOrderID: fmt.Sprintf("SO-%s", strings.ToUpper(uuid.New().String()[:8])),
		CustomerID:     customerID,
		CustomerName:   customer.Name,
		ChefID:         chef.ChefID,
		ChefName:       chef.Name,
		Description:    req.Description,
		Servings:       req.Servings,
		RequestedDate:  req.RequestedDate,
		Budget:         models.MoneyFromDecimal(decimal.NewFromFloat(req.Budget)),
		Status:         models.SpecialPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := h.DB.Collection("special_orders").InsertOne(context.Background(), newSpecialOrder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create special order"})
		return
	}

	tpl := notifier.NewSpecialOrder(newSpecialOrder.SpecialOrderID, customer.Name)
	if err := h.Notifier.Notify(context.Background(), chef.ChefID, tpl, models.ChannelWhatsApp); err != nil {
		logrus.WithError(err).WithField("specialOrderID", newSpecialOrder.SpecialOrderID).Error("Failed to notify chef of special order")
	}

	c.JSON(http.StatusCreated, newSpecialOrder)
}

// GetMySpecialOrders lấy các yêu cầu của customer đang đăng nhập.
func (h *SpecialOrderHandler) GetMySpecialOrders(c *gin.Context) {
	customerID := c.GetString("user_id")
	h.list(c, bson.M{"customerID": customerID})
}

// GetChefSpecialOrders lấy các yêu cầu gửi tới chef đang đăng nhập.
func (h *SpecialOrderHandler) GetChefSpecialOrders(c *gin.Context) {
	chefID := c.GetString("user_id")
	filter := bson.M{"chefID": chefID}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	h.list(c, filter)
}

func (h *SpecialOrderHandler) list(c *gin.Context, filter bson.M) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("special_orders").Find(context.Background(), filter, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query special orders"})
		return
	}
	defer cursor.Close(context.Background())

	var specialOrders []models.SpecialOrder
	if err = cursor.All(context.Background(), &specialOrders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode special orders"})
		return
	}

	if specialOrders == nil {
		specialOrders = []models.SpecialOrder{}
	}

	c.JSON(http.StatusOK, specialOrders)
}

// QuoteSpecialOrder: chef báo giá một yêu cầu đang pending.
func (h *SpecialOrderHandler) QuoteSpecialOrder(c *gin.Context) {
	chefID := c.GetString("user_id")
	specialOrderID := c.Param("id")

	var req QuoteSpecialOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price := decimal.NewFromFloat(req.Price)
	result, err := h.DB.Collection("special_orders").UpdateOne(context.Background(),
		bson.M{"specialOrderID": specialOrderID, "chefID": chefID, "status": models.SpecialPending},
		bson.M{"$set": bson.M{
			"status":      models.SpecialQuoted,
			"quotedPrice": models.MoneyFromDecimal(price),
			"chefNote":    req.ChefNote,
			"updatedAt":   time.Now(),
		}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to quote special order"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending special order not found"})
		return
	}

	var specialOrder models.SpecialOrder
	if err := h.DB.Collection("special_orders").FindOne(context.Background(),
		bson.M{"specialOrderID": specialOrderID}).Decode(&specialOrder); err == nil {
		tpl := notifier.SpecialOrderQuoted(specialOrderID, specialOrder.ChefName, price.StringFixed(models.MoneyPlaces))
		if err := h.Notifier.Notify(context.Background(), specialOrder.CustomerID, tpl, models.ChannelEmail); err != nil {
			logrus.WithError(err).WithField("specialOrderID", specialOrderID).Error("Failed to notify customer of quote")
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "specialOrderID": specialOrderID})
}

// RejectSpecialOrder: chef từ chối một yêu cầu đang pending.
func (h *SpecialOrderHandler) RejectSpecialOrder(c *gin.Context) {
	chefID := c.GetString("user_id")
	h.transition(c, bson.M{
		"specialOrderID": c.Param("id"),
		"chefID":         chefID,
		"status":         models.SpecialPending,
	}, models.SpecialRejected)
}

// AcceptQuote: customer chấp nhận giá chef đưa ra.
func (h *SpecialOrderHandler) AcceptQuote(c *gin.Context) {
	customerID := c.GetString("user_id")
	h.transition(c, bson.M{
		"specialOrderID": c.Param("id"),
		"customerID":     customerID,
		"status":         models.SpecialQuoted,
	}, models.SpecialAccepted)
}

// DeclineQuote: customer từ chối giá chef đưa ra.
func (h *SpecialOrderHandler) DeclineQuote(c *gin.Context) {
	customerID := c.GetString("user_id")
	h.transition(c, bson.M{
		"specialOrderID": c.Param("id"),
		"customerID":     customerID,
		"status":         models.SpecialQuoted,
	}, models.SpecialDeclined)
}

// transition đổi trạng thái một special order với guard filter; filter không
// match nghĩa là yêu cầu không tồn tại hoặc không ở trạng thái cho phép.
func (h *SpecialOrderHandler) transition(c *gin.Context, filter bson.M, to models.SpecialOrderStatus) {
	result, err := h.DB.Collection("special_orders").UpdateOne(context.Background(),
		filter, bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update special order"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Special order not found or not in the required status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "newStatus": to})
}
