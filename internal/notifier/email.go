// server/internal/notifier/email.go
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

// Attachment là một file đính kèm email, content đã được mã hóa base64.
type Attachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Type     string `json:"type"`
}

// EmailClient gửi email giao dịch qua HTTP API của provider.
type EmailClient struct {
	cfg    config.EmailConfig
	client *http.Client
}

func NewEmailClient(cfg config.EmailConfig) *EmailClient {
	return &EmailClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type emailPayload struct {
	Sender      emailAddress   `json:"sender"`
	To          []emailAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	Attachments []Attachment   `json:"attachment,omitempty"`
}

type emailAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Send gửi một email. Trả lỗi khi provider không phản hồi 2xx.
func (c *EmailClient) Send(ctx context.Context, to, subject, htmlContent string, attachments []Attachment) error {
	if c.cfg.ProviderURL == "" {
		return fmt.Errorf("email provider is not configured")
	}

	payload := emailPayload{
		Sender:      emailAddress{Name: c.cfg.FromName, Email: c.cfg.FromAddress},
		To:          []emailAddress{{Email: to}},
		Subject:     subject,
		HTMLContent: htmlContent,
		Attachments: attachments,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ProviderURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("email provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
