// server/internal/api/handlers/dispatch_handler.go
package handlers

import (
	"context"
	"net/http"

	"chefhub-kw-api-server/internal/notifier"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// EmailSender và WhatsAppSender tách handler khỏi HTTP client thật của provider.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlContent string, attachments []notifier.Attachment) error
}

type WhatsAppSender interface {
	Send(ctx context.Context, phone, message string, metadata map[string]interface{}) error
}

// DispatchHandler nhận yêu cầu gửi email/WhatsApp trực tiếp từ các service nội
// bộ tin cậy (đằng sau dispatch token), bỏ qua outbox.
type DispatchHandler struct {
	Email    EmailSender
	WhatsApp WhatsAppSender
}

type DispatchEmailRequest struct {
	To          string                `json:"to" binding:"required,email"`
	Subject     string                `json:"subject" binding:"required"`
	HTMLContent string                `json:"htmlContent" binding:"required"`
	Attachments []notifier.Attachment `json:"attachments"`
}

type DispatchWhatsAppRequest struct {
	Phone    string                 `json:"phone" binding:"required"`
	Message  string                 `json:"message" binding:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

// SendEmail gửi ngay một email qua provider và trả kết quả đồng bộ.
func (h *DispatchHandler) SendEmail(c *gin.Context) {
	var req DispatchEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"sent": false, "error": err.Error()})
		return
	}

	if err := h.Email.Send(c.Request.Context(), req.To, req.Subject, req.HTMLContent, req.Attachments); err != nil {
		logrus.WithError(err).WithField("to", req.To).Error("Direct email dispatch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"sent": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": true})
}

// SendWhatsApp gửi ngay một tin nhắn WhatsApp qua provider và trả kết quả đồng bộ.
func (h *DispatchHandler) SendWhatsApp(c *gin.Context) {
	var req DispatchWhatsAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"sent": false, "error": err.Error()})
		return
	}

	if err := h.WhatsApp.Send(c.Request.Context(), req.Phone, req.Message, req.Metadata); err != nil {
		logrus.WithError(err).WithField("phone", req.Phone).Error("Direct whatsapp dispatch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"sent": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": true})
}
