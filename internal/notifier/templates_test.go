// server/internal/notifier/templates_test.go
package notifier

import (
	"testing"

	"chefhub-kw-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestChefApproved(t *testing.T) {
	tpl := ChefApproved("Umm Ali")

	assert.Equal(t, models.NotifChefApproved, tpl.Type)
	assert.Contains(t, tpl.Message.EN, "Umm Ali")
	assert.NotEmpty(t, tpl.Title.AR)
	assert.NotEmpty(t, tpl.Message.AR)
	assert.Equal(t, "/chef/dashboard", tpl.Link)
}

func TestNewOrder(t *testing.T) {
	tpl := NewOrder("ORD-AB12CD34", "Fatima", "12.500")

	assert.Equal(t, models.NotifNewOrder, tpl.Type)
	assert.Contains(t, tpl.Message.EN, "ORD-AB12CD34")
	assert.Contains(t, tpl.Message.EN, "Fatima")
	assert.Contains(t, tpl.Message.EN, "12.500")
	assert.Contains(t, tpl.Message.AR, "12.500")
	assert.Equal(t, "/chef/orders/ORD-AB12CD34", tpl.Link)
}

func TestOrderStatusCoversAllStatuses(t *testing.T) {
	for _, status := range []models.OrderStatus{
		models.OrderConfirmed,
		models.OrderPreparing,
		models.OrderReady,
		models.OrderDelivering,
		models.OrderDelivered,
		models.OrderCancelled,
	} {
		tpl := OrderStatus("ORD-XYZ", status)
		assert.Equal(t, models.NotifOrderStatus, tpl.Type)
		assert.NotEmpty(t, tpl.Message.AR, "missing AR text for %s", status)
		assert.Contains(t, tpl.Message.EN, string(status))
	}
}

func TestTemplateHTML(t *testing.T) {
	tpl := SpecialOrderQuoted("SO-11223344", "Abu Salem", "25.000")
	html := tpl.HTML()

	assert.Contains(t, html, tpl.Title.AR)
	assert.Contains(t, html, tpl.Title.EN)
	assert.Contains(t, html, tpl.Message.EN)
	assert.Contains(t, html, `dir="rtl"`)
	assert.Contains(t, html, `dir="ltr"`)
}

func TestTemplatePlainText(t *testing.T) {
	tpl := NewSpecialOrder("SO-55667788", "Noura")
	text := tpl.PlainText()

	assert.Contains(t, text, tpl.Message.AR)
	assert.Contains(t, text, tpl.Message.EN)
}
