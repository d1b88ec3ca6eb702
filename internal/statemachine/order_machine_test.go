// server/internal/statemachine/order_machine_test.go
package statemachine

import (
	"testing"

	"chefhub-kw-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusRecipients(t *testing.T) {
	const customerID = "customer-DEF67890"
	const chefID = "chef-ABC12345"

	// Chef đẩy đơn qua các bước thường: chỉ customer được báo
	got := statusRecipients(ActorChef, models.OrderConfirmed, customerID, chefID)
	assert.Equal(t, []string{customerID}, got)

	got = statusRecipients(ActorChef, models.OrderDelivered, customerID, chefID)
	assert.Equal(t, []string{customerID}, got)

	// Customer tự hủy đơn: không tự báo cho mình, chỉ chef nhận
	got = statusRecipients(ActorCustomer, models.OrderCancelled, customerID, chefID)
	assert.Equal(t, []string{chefID}, got)

	// Chef hủy: customer nhận, chef không tự báo
	got = statusRecipients(ActorChef, models.OrderCancelled, customerID, chefID)
	assert.Equal(t, []string{customerID}, got)

	// Admin hủy: cả hai bên đều nhận
	got = statusRecipients(ActorAdmin, models.OrderCancelled, customerID, chefID)
	assert.Equal(t, []string{customerID, chefID}, got)
}
