// server/internal/api/handlers/dish_handler_test.go
package handlers

import (
	"testing"

	"chefhub-kw-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDishToggleActiveChef(t *testing.T) {
	newActive, allowed := dishToggle(models.StatusActive, true)
	assert.True(t, allowed)
	assert.False(t, newActive)

	newActive, allowed = dishToggle(models.StatusActive, false)
	assert.True(t, allowed)
	assert.True(t, newActive)
}

func TestDishToggleBlockedWhileNotActive(t *testing.T) {
	// Chef bị suspend không được tự bật lại món: cascade suspend đã tắt hết
	// món và chỉ bước duyệt lại của admin mới khôi phục hiển thị.
	for _, status := range []string{models.StatusSuspended, models.StatusPending} {
		newActive, allowed := dishToggle(status, false)
		assert.False(t, allowed, "toggle must be rejected for chef status %s", status)
		assert.False(t, newActive)

		// Kể cả món đang bật (dữ liệu chưa cascade xong) cũng không toggle được
		_, allowed = dishToggle(status, true)
		assert.False(t, allowed)
	}
}
