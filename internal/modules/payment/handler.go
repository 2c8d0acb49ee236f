package payment

import (
	"errors"
	"io"
	"net/http"

	"turfbook/internal/domain"
	"turfbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const maxWebhookBodyBytes = 65536

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/create-checkout-session", h.CreateCheckoutSession)
}

func (h *Handler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook", h.Webhook)
}

func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields")
		return
	}

	resp, err := h.service.InitiateCheckout(c.Request.Context(), req.BookingID, identityFrom(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields")
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your booking")
		case errors.Is(err, ErrAlreadyPaid):
			response.Error(c, http.StatusConflict, "ALREADY_PAID", "Booking is already paid")
		case errors.Is(err, ErrUpstream):
			response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Payment processing failed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Payment processing failed")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"url": resp.URL, "session_id": resp.SessionID})
}

// Webhook is the raw provider callback. The body is read unparsed because
// the signature covers the exact bytes.
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unreadable payload")
		return
	}

	if err := h.service.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Webhook signature verification failed")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Webhook handling failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func identityFrom(c *gin.Context) domain.Identity {
	return domain.Identity{
		UserID:  c.GetInt64("user_id"),
		IsAdmin: c.GetBool("is_admin"),
	}
}
