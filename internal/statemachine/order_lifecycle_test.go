// server/internal/statemachine/order_lifecycle_test.go
package statemachine

import (
	"testing"

	"chefhub-kw-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		actor   Actor
		allowed bool
	}{
		{"chef confirms pending order", models.OrderPending, models.OrderConfirmed, ActorChef, true},
		{"customer cannot confirm order", models.OrderPending, models.OrderConfirmed, ActorCustomer, false},
		{"customer cancels pending order", models.OrderPending, models.OrderCancelled, ActorCustomer, true},
		{"chef cancels pending order", models.OrderPending, models.OrderCancelled, ActorChef, true},
		{"chef starts preparing", models.OrderConfirmed, models.OrderPreparing, ActorChef, true},
		{"customer cancels confirmed order", models.OrderConfirmed, models.OrderCancelled, ActorCustomer, true},
		{"customer cannot cancel preparing order", models.OrderPreparing, models.OrderCancelled, ActorCustomer, false},
		{"chef marks ready", models.OrderPreparing, models.OrderReady, ActorChef, true},
		{"chef starts delivery", models.OrderReady, models.OrderDelivering, ActorChef, true},
		{"chef completes delivery", models.OrderDelivering, models.OrderDelivered, ActorChef, true},
		{"no skipping pending to preparing", models.OrderPending, models.OrderPreparing, ActorChef, false},
		{"no skipping confirmed to ready", models.OrderConfirmed, models.OrderReady, ActorChef, false},
		{"delivered is final for chef", models.OrderDelivered, models.OrderDelivering, ActorChef, false},
		{"cancelled is final for customer", models.OrderCancelled, models.OrderPending, ActorCustomer, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to, tc.actor))
		})
	}
}

func TestCanTransitionAdminCancel(t *testing.T) {
	// Admin hủy được mọi đơn chưa kết thúc, kể cả các trạng thái mà
	// customer/chef không còn quyền hủy.
	for _, from := range []models.OrderStatus{
		models.OrderPending,
		models.OrderConfirmed,
		models.OrderPreparing,
		models.OrderReady,
		models.OrderDelivering,
	} {
		assert.True(t, CanTransition(from, models.OrderCancelled, ActorAdmin), "admin should cancel %s", from)
	}

	assert.False(t, CanTransition(models.OrderDelivered, models.OrderCancelled, ActorAdmin))
	assert.False(t, CanTransition(models.OrderCancelled, models.OrderCancelled, ActorAdmin))

	// Admin không có quyền đẩy đơn tiến lên thay chef.
	assert.False(t, CanTransition(models.OrderPending, models.OrderConfirmed, ActorAdmin))
	assert.False(t, CanTransition(models.OrderReady, models.OrderDelivering, ActorAdmin))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.OrderDelivered))
	assert.True(t, IsTerminal(models.OrderCancelled))
	assert.False(t, IsTerminal(models.OrderPending))
	assert.False(t, IsTerminal(models.OrderDelivering))
}

func TestNextStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.OrderConfirmed, models.OrderCancelled},
		NextStatuses(models.OrderPending))

	assert.ElementsMatch(t,
		[]models.OrderStatus{models.OrderPreparing, models.OrderCancelled},
		NextStatuses(models.OrderConfirmed))

	assert.Empty(t, NextStatuses(models.OrderDelivered))
	assert.Empty(t, NextStatuses(models.OrderCancelled))
}

func TestActorFromRole(t *testing.T) {
	assert.Equal(t, ActorChef, ActorFromRole(models.RoleChef))
	assert.Equal(t, ActorAdmin, ActorFromRole(models.RoleAdmin))
	assert.Equal(t, ActorCustomer, ActorFromRole(models.RoleCustomer))
	assert.Equal(t, ActorCustomer, ActorFromRole(""))
}
