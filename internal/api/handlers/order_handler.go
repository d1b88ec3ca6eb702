// server/internal/api/handlers/order_handler.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chefhub-kw-api-server/config"
	"chefhub-kw-api-server/internal/models"
	"chefhub-kw-api-server/internal/notifier"
	"chefhub-kw-api-server/internal/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderHandler struct {
	DB       *mongo.Database
	Cfg      config.Config
	Machine  *statemachine.OrderMachine
	Notifier *notifier.Notifier
}

type OrderItemRequest struct {
	DishID   string `json:"dishID" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	ChefID          string             `json:"chefID" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1"`
	DeliveryAddress models.Address     `json:"deliveryAddress" binding:"required"`
	PaymentMethod   string             `json:"paymentMethod" binding:"required,oneof=cash knet link"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// CreateOrder là bước checkout: validate món, chốt giá một lần duy nhất,
// ghi đơn ở trạng thái pending và báo cho chef.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	customerID := c.GetString("user_id")

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Chef phải tồn tại và đang hoạt động
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

	// Chef phải giao tới tỉnh của địa chỉ nhận
	deliveryFeeRaw, ok := chef.DeliveryFees[req.DeliveryAddress.Governorate]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chef does not deliver to this governorate"})
		return
	}

	var customer models.User
	if err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"userID": customerID}).Decode(&customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up customer"})
		return
	}

	// Validate từng món với document dish hiện tại, snapshot tên + giá.
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	pricedItems := make([]statemachine.PricedItem, 0, len(req.Items))
	for _, item := range req.Items {
		var dish models.Dish
		err := h.DB.Collection("dishes").FindOne(context.Background(), bson.M{"dishID": item.DishID}).Decode(&dish)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Dish %s not found", item.DishID)})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up dish"})
			}
			return
		}
		if dish.ChefID != req.ChefID {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Dish %s does not belong to this chef", item.DishID)})
			return
		}
		if !dish.IsActive || !dish.IsAvailable {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Dish %s is not available", item.DishID)})
			return
		}

		unitPrice := models.DecimalFromMoney(dish.Price)
		orderItems = append(orderItems, models.OrderItem{
			DishID:    dish.DishID,
			ChefID:    dish.ChefID,
			Name:      dish.Name,
			Quantity:  item.Quantity,
			UnitPrice: dish.Price,
		})
		pricedItems = append(pricedItems, statemachine.PricedItem{UnitPrice: unitPrice, Quantity: item.Quantity})
	}

	deliveryFee := models.DecimalFromMoney(deliveryFeeRaw)
	commissionRate := decimal.NewFromFloat(h.Cfg.Market.CommissionRate)
	totals, err := statemachine.PriceOrder(pricedItems, deliveryFee, commissionRate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for i := range orderItems {
		orderItems[i].LineTotal = models.MoneyFromDecimal(totals.LineTotals[i])
	}

	now := time.Now()
	newOrder := models.Order{
		OrderID:         fmt.Sprintf("ORD-%s", strings.ToUpper(uuid.New().String()[:8])),
		CustomerID:      customerID,
		CustomerName:    customer.Name,
		ChefID:          chef.ChefID,
		ChefName:        chef.Name,
		Items:           orderItems,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   "unpaid",
		Status:          models.OrderPending,
		Subtotal:        models.MoneyFromDecimal(totals.Subtotal),
		DeliveryFee:     models.MoneyFromDecimal(totals.DeliveryFee),
		Commission:      models.MoneyFromDecimal(totals.Commission),
		Total:           models.MoneyFromDecimal(totals.Total),
		ChefEarnings:    models.MoneyFromDecimal(totals.ChefEarnings),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := h.DB.Collection("orders").InsertOne(context.Background(), newOrder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	// Báo chef có đơn mới qua in-app + WhatsApp; lỗi thông báo không chặn checkout.
	tpl := notifier.NewOrder(newOrder.OrderID, customer.Name, totals.Total.StringFixed(models.MoneyPlaces))
	if err := h.Notifier.Notify(context.Background(), chef.ChefID, tpl, models.ChannelWhatsApp); err != nil {
		logrus.WithError(err).WithField("orderID", newOrder.OrderID).Error("Failed to notify chef of new order")
	}

	c.JSON(http.StatusCreated, newOrder)
}

// GetMyOrders lấy các đơn của customer đang đăng nhập.
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	customerID := c.GetString("user_id")
	h.listOrders(c, bson.M{"customerID": customerID})
}

// GetChefOrders lấy các đơn gửi tới chef đang đăng nhập, lọc được theo status.
func (h *OrderHandler) GetChefOrders(c *gin.Context) {
	chefID := c.GetString("user_id")
	filter := bson.M{"chefID": chefID}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	h.listOrders(c, filter)
}

// GetAllOrders cho admin, lọc được theo status.
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	h.listOrders(c, filter)
}

func (h *OrderHandler) listOrders(c *gin.Context, filter bson.M) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("orders").Find(context.Background(), filter, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query orders"})
		return
	}
	defer cursor.Close(context.Background())

	var orders []models.Order
	if err = cursor.All(context.Background(), &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode orders"})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrderByID lấy chi tiết một đơn; chỉ các bên liên quan xem được.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	orderID := c.Param("id")
	userID := c.GetString("user_id")
	role := c.GetString("user_role")

	var order models.Order
	err := h.DB.Collection("orders").FindOne(context.Background(), bson.M{"orderID": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	if role != models.RoleAdmin && order.CustomerID != userID && order.ChefID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus thực hiện một transition vòng đời đơn hàng.
// Actor suy từ role trong token; bảng transition quyết định tính hợp lệ.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")
	userID := c.GetString("user_id")
	role := c.GetString("user_role")

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := statemachine.ActorFromRole(role)
	order, err := h.Machine.Transition(context.Background(), orderID, req.Status, actor, userID)
	if err != nil {
		switch {
		case errors.Is(err, statemachine.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, statemachine.ErrForbiddenTransition):
			c.JSON(http.StatusForbidden, gin.H{"error": "You cannot modify this order"})
		case errors.Is(err, statemachine.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}
