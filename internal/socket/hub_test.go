// server/internal/socket/hub_test.go
package socket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()

	assert.False(t, hub.IsConnected("chef-1"))

	hub.Register("chef-1", nil)
	assert.True(t, hub.IsConnected("chef-1"))

	hub.Unregister("chef-1")
	assert.False(t, hub.IsConnected("chef-1"))

	// Unregister một user chưa từng register không được panic
	hub.Unregister("chef-2")
}

func TestHubSendToOfflineUser(t *testing.T) {
	hub := NewHub()

	// Gửi cho user offline là no-op, không phải lỗi
	err := hub.Send("customer-1", []byte(`{"type":"order_status"}`))
	assert.NoError(t, err)
}
