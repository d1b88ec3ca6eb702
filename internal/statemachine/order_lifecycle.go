// server/internal/statemachine/order_lifecycle.go
package statemachine

import (
	"errors"

	"chefhub-kw-api-server/internal/models"
)

// Actor là phía thực hiện một transition trên đơn hàng.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorChef     Actor = "chef"
	ActorAdmin    Actor = "admin"
)

var ErrInvalidTransition = errors.New("invalid order status transition")

// Transition defines a valid state change and who can perform it.
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor Actor
}

// validTransitions is the authoritative state machine definition.
var validTransitions = []Transition{
	// Chef xác nhận đơn mới
	{From: models.OrderPending, To: models.OrderConfirmed, Actor: ActorChef},
	// Customer hoặc chef có thể hủy đơn đang pending
	{From: models.OrderPending, To: models.OrderCancelled, Actor: ActorCustomer},
	{From: models.OrderPending, To: models.OrderCancelled, Actor: ActorChef},
	// Chef bắt đầu chuẩn bị; customer vẫn hủy được khi mới confirmed
	{From: models.OrderConfirmed, To: models.OrderPreparing, Actor: ActorChef},
	{From: models.OrderConfirmed, To: models.OrderCancelled, Actor: ActorCustomer},
	{From: models.OrderConfirmed, To: models.OrderCancelled, Actor: ActorChef},
	// Chef báo món đã sẵn sàng
	{From: models.OrderPreparing, To: models.OrderReady, Actor: ActorChef},
	// Chef giao hàng
	{From: models.OrderReady, To: models.OrderDelivering, Actor: ActorChef},
	{From: models.OrderDelivering, To: models.OrderDelivered, Actor: ActorChef},
}

// transitionKey is used to look up valid transitions quickly.
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor Actor
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// CanTransition kiểm tra một transition có hợp lệ với actor đó không.
// Admin được phép hủy mọi đơn chưa kết thúc.
func CanTransition(from, to models.OrderStatus, actor Actor) bool {
	if actor == ActorAdmin && to == models.OrderCancelled && !IsTerminal(from) {
		return true
	}
	return transitionMap[transitionKey{from, to, actor}]
}

// IsTerminal cho biết một trạng thái không còn transition đi ra.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.OrderDelivered || status == models.OrderCancelled
}

// NextStatuses returns all valid next states from a given state,
// không phân biệt actor.
func NextStatuses(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// ActorFromRole ánh xạ role trong JWT sang actor của state machine.
func ActorFromRole(role string) Actor {
	switch role {
	case models.RoleChef:
		return ActorChef
	case models.RoleAdmin:
		return ActorAdmin
	default:
		return ActorCustomer
	}
}
