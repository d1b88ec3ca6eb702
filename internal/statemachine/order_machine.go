// server/internal/statemachine/order_machine.go
package statemachine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chefhub-kw-api-server/internal/models"
	"chefhub-kw-api-server/internal/notifier"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrOrderNotFound = errors.New("order not found")

// ErrForbiddenTransition báo caller không được thực hiện transition này
// (khác với transition không tồn tại trong bảng).
var ErrForbiddenTransition = errors.New("actor is not allowed to perform this transition")

// OrderMachine thực hiện transition vòng đời đơn hàng và các side effect:
// thông báo cho customer/chef và cập nhật counter khi đơn giao xong.
// Các trường tài chính của đơn không bao giờ bị ghi lại ở đây.
type OrderMachine struct {
	DB       *mongo.Database
	Notifier Notifier
}

func NewOrderMachine(db *mongo.Database, n Notifier) *OrderMachine {
	return &OrderMachine{DB: db, Notifier: n}
}

// Transition chuyển một đơn sang trạng thái mới nếu bảng transition cho phép.
// actorID dùng để kiểm tra quyền sở hữu: customer chỉ đụng được đơn của mình,
// chef chỉ đụng được đơn gửi tới mình.
func (m *OrderMachine) Transition(ctx context.Context, orderID string, to models.OrderStatus, actor Actor, actorID string) (*models.Order, error) {
	var order models.Order
	err := m.DB.Collection("orders").FindOne(ctx, bson.M{"orderID": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	switch actor {
	case ActorCustomer:
		if order.CustomerID != actorID {
			return nil, ErrForbiddenTransition
		}
	case ActorChef:
		if order.ChefID != actorID {
			return nil, ErrForbiddenTransition
		}
	}

	if !CanTransition(order.Status, to, actor) {
		return nil, fmt.Errorf("%w: %s -> %s by %s", ErrInvalidTransition, order.Status, to, actor)
	}

	now := time.Now()
	set := bson.M{"status": to, "updatedAt": now}
	switch to {
	case models.OrderDelivered:
		set["deliveredAt"] = now
	case models.OrderCancelled:
		set["cancelledAt"] = now
	}

	// Chỉ status + timestamps; tiền đã chốt lúc checkout.
	_, err = m.DB.Collection("orders").UpdateOne(ctx, bson.M{"orderID": orderID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = to
	order.UpdatedAt = now

	if to == models.OrderDelivered {
		m.recordDelivery(ctx, &order)
	}

	// Side effect thông báo: lỗi chỉ log, transition đã commit.
	tpl := notifier.OrderStatus(order.OrderID, to)
	for _, userID := range statusRecipients(actor, to, order.CustomerID, order.ChefID) {
		if err := m.Notifier.Notify(ctx, userID, tpl); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"orderID": orderID,
				"userID":  userID,
			}).Error("Failed to notify order status change")
		}
	}

	return &order, nil
}

// statusRecipients chọn ai nhận thông báo đổi trạng thái. Người thực hiện
// transition không nhận thông báo về hành động của chính mình: customer tự hủy
// đơn chỉ báo cho chef, chef hủy chỉ báo cho customer.
func statusRecipients(actor Actor, to models.OrderStatus, customerID, chefID string) []string {
	var recipients []string
	if actor != ActorCustomer {
		recipients = append(recipients, customerID)
	}
	if to == models.OrderCancelled && actor != ActorChef {
		recipients = append(recipients, chefID)
	}
	return recipients
}

// recordDelivery tăng totalOrders của chef và từng dish trong đơn.
func (m *OrderMachine) recordDelivery(ctx context.Context, order *models.Order) {
	if _, err := m.DB.Collection("chefs").UpdateOne(ctx,
		bson.M{"chefID": order.ChefID},
		bson.M{"$inc": bson.M{"totalOrders": 1}},
	); err != nil {
		logrus.WithError(err).WithField("chefID", order.ChefID).Warn("Failed to increment chef totalOrders")
	}

	for _, item := range order.Items {
		if _, err := m.DB.Collection("dishes").UpdateOne(ctx,
			bson.M{"dishID": item.DishID},
			bson.M{"$inc": bson.M{"totalOrders": item.Quantity}},
		); err != nil {
			logrus.WithError(err).WithField("dishID", item.DishID).Warn("Failed to increment dish totalOrders")
		}
	}
}
