// server/internal/notifier/whatsapp.go
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chefhub-kw-api-server/config"
)

// WhatsAppClient gửi tin nhắn WhatsApp qua HTTP API của provider.
type WhatsAppClient struct {
	cfg    config.WhatsAppConfig
	client *http.Client
}

func NewWhatsAppClient(cfg config.WhatsAppConfig) *WhatsAppClient {
	return &WhatsAppClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type whatsAppPayload struct {
	Phone    string                 `json:"phone"`
	Message  string                 `json:"message"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Send gửi một tin nhắn WhatsApp. Trả lỗi khi provider không phản hồi 2xx.
func (c *WhatsAppClient) Send(ctx context.Context, phone, message string, metadata map[string]interface{}) error {
	if c.cfg.ProviderURL == "" {
		return fmt.Errorf("whatsapp provider is not configured")
	}

	body, err := json.Marshal(whatsAppPayload{Phone: phone, Message: message, Metadata: metadata})
	if err != nil {
		return fmt.Errorf("failed to marshal whatsapp payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ProviderURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp provider returned %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
