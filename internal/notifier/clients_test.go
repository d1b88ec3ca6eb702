// server/internal/notifier/clients_test.go
package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chefhub-kw-api-server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailClientSend(t *testing.T) {
	var got emailPayload
	var gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewEmailClient(config.EmailConfig{
		ProviderURL: server.URL,
		APIKey:      "key-123",
		FromName:    "ChefHub",
		FromAddress: "no-reply@chefhub.test",
	})

	err := client.Send(context.Background(), "user@example.com", "Order update", "<p>Hi</p>", nil)
	require.NoError(t, err)

	assert.Equal(t, "key-123", gotAPIKey)
	assert.Equal(t, "ChefHub", got.Sender.Name)
	assert.Equal(t, "no-reply@chefhub.test", got.Sender.Email)
	require.Len(t, got.To, 1)
	assert.Equal(t, "user@example.com", got.To[0].Email)
	assert.Equal(t, "Order update", got.Subject)
	assert.Equal(t, "<p>Hi</p>", got.HTMLContent)
}

func TestEmailClientProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewEmailClient(config.EmailConfig{ProviderURL: server.URL})

	err := client.Send(context.Background(), "user@example.com", "Subject", "<p>Hi</p>", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestEmailClientUnconfigured(t *testing.T) {
	client := NewEmailClient(config.EmailConfig{})
	err := client.Send(context.Background(), "user@example.com", "Subject", "<p>Hi</p>", nil)
	assert.Error(t, err)
}

func TestWhatsAppClientSend(t *testing.T) {
	var got whatsAppPayload
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewWhatsAppClient(config.WhatsAppConfig{ProviderURL: server.URL, APIKey: "wa-key"})

	metadata := map[string]interface{}{"chefName": "Umm Ali", "itemsCount": float64(2)}
	err := client.Send(context.Background(), "+96550001234", "Order confirmed", metadata)
	require.NoError(t, err)

	assert.Equal(t, "Bearer wa-key", gotAuth)
	assert.Equal(t, "+96550001234", got.Phone)
	assert.Equal(t, "Order confirmed", got.Message)
	assert.Equal(t, metadata, got.Metadata)
}

func TestWhatsAppClientProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid phone", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewWhatsAppClient(config.WhatsAppConfig{ProviderURL: server.URL, APIKey: "wa-key"})

	err := client.Send(context.Background(), "bad", "msg", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
