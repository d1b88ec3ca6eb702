// server/internal/api/handlers/dispatch_handler_test.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chefhub-kw-api-server/internal/api/middleware"
	"chefhub-kw-api-server/internal/notifier"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmailSender struct {
	err      error
	lastTo   string
	lastSubj string
}

func (s *stubEmailSender) Send(ctx context.Context, to, subject, htmlContent string, attachments []notifier.Attachment) error {
	s.lastTo = to
	s.lastSubj = subject
	return s.err
}

type stubWhatsAppSender struct {
	err       error
	lastPhone string
	lastMsg   string
}

func (s *stubWhatsAppSender) Send(ctx context.Context, phone, message string, metadata map[string]interface{}) error {
	s.lastPhone = phone
	s.lastMsg = message
	return s.err
}

func newDispatchRouter(token string, email EmailSender, whatsapp WhatsAppSender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := &DispatchHandler{Email: email, WhatsApp: whatsapp}
	group := router.Group("/api/notifications")
	group.Use(middleware.RequireDispatchToken(token))
	{
		group.POST("/email", handler.SendEmail)
		group.POST("/whatsapp", handler.SendWhatsApp)
	}
	return router
}

func TestSendEmailSuccess(t *testing.T) {
	email := &stubEmailSender{}
	router := newDispatchRouter("", email, &stubWhatsAppSender{})

	body := `{"to":"user@example.com","subject":"Hello","htmlContent":"<p>Hi</p>"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sent":true`)
	assert.Equal(t, "user@example.com", email.lastTo)
	assert.Equal(t, "Hello", email.lastSubj)
}

func TestSendEmailValidation(t *testing.T) {
	router := newDispatchRouter("", &stubEmailSender{}, &stubWhatsAppSender{})

	// Thiếu subject và htmlContent
	body := `{"to":"user@example.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"sent":false`)
}

func TestSendEmailProviderFailure(t *testing.T) {
	email := &stubEmailSender{err: errors.New("provider returned 503")}
	router := newDispatchRouter("", email, &stubWhatsAppSender{})

	body := `{"to":"user@example.com","subject":"Hello","htmlContent":"<p>Hi</p>"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"sent":false`)
	assert.Contains(t, w.Body.String(), "provider returned 503")
}

func TestDispatchTokenRequired(t *testing.T) {
	router := newDispatchRouter("super-secret", &stubEmailSender{}, &stubWhatsAppSender{})

	body := `{"to":"user@example.com","subject":"Hello","htmlContent":"<p>Hi</p>"}`

	// Không có token
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Token sai
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/notifications/email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer wrong-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Token đúng
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/notifications/email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer super-secret")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSendWhatsApp(t *testing.T) {
	whatsapp := &stubWhatsAppSender{}
	router := newDispatchRouter("", &stubEmailSender{}, whatsapp)

	body := `{"phone":"+96550001234","message":"Your order is on the way","metadata":{"chefName":"Umm Ali"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/whatsapp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sent":true`)
	assert.Equal(t, "+96550001234", whatsapp.lastPhone)
	assert.Equal(t, "Your order is on the way", whatsapp.lastMsg)
}

func TestSendWhatsAppValidation(t *testing.T) {
	router := newDispatchRouter("", &stubEmailSender{}, &stubWhatsAppSender{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/whatsapp", strings.NewReader(`{"phone":"+96550001234"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
