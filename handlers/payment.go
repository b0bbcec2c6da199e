// handlers/payment.go
package handlers

import (
	"io"
	"net/http"

	"mentormatch/models"
	"mentormatch/services/booking"
	"mentormatch/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes Stripe Connect onboarding, checkout, webhook and
// tip endpoints.
type PaymentHandler struct {
	Svc payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Svc: svc}
}

// OnboardMentorHandler creates (or resumes) Stripe Express onboarding for
// the authenticated mentor.
func (h *PaymentHandler) OnboardMentorHandler(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		return
	}

	var req struct {
		RefreshURL string `json:"refresh_url" binding:"required"`
		ReturnURL  string `json:"return_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Svc.OnboardMentor(profileID, req.RefreshURL, req.ReturnURL)
	if err != nil {
		if booking.CodeOf(err) != "" {
			writeBookingError(c, err)
			return
		}
		getLogger(c).Error("mentor onboarding failed", zap.String("profileID", profileID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start onboarding"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConnectStatusHandler returns the mentor's payout account state.
func (h *PaymentHandler) ConnectStatusHandler(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		return
	}

	status, err := h.Svc.ConnectStatus(profileID)
	if err != nil {
		if booking.CodeOf(err) != "" {
			writeBookingError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payout status"})
		return
	}
	c.JSON(http.StatusOK, status)
}

// CreateCheckoutHandler opens a hosted checkout for a booking.
func (h *PaymentHandler) CreateCheckoutHandler(c *gin.Context) {
	menteeID, ok := currentProfileID(c)
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Svc.CreateCheckout(menteeID, req)
	if err != nil {
		if booking.CodeOf(err) != "" {
			writeBookingError(c, err)
			return
		}
		getLogger(c).Error("checkout failed", zap.String("bookingID", req.BookingID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StripeWebhookHandler ingests Stripe events. The raw body is required for
// signature verification.
func (h *PaymentHandler) StripeWebhookHandler(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read payload"})
		return
	}

	if err := h.Svc.HandleWebhookEvent(payload, c.GetHeader("Stripe-Signature")); err != nil {
		getLogger(c).Warn("stripe webhook rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// TipMentorHandler sends a direct tip to a mentor.
func (h *PaymentHandler) TipMentorHandler(c *gin.Context) {
	fromID, ok := currentProfileID(c)
	if !ok {
		return
	}

	var req payment.TipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	tip, err := h.Svc.Tip(fromID, req)
	if err != nil {
		if booking.CodeOf(err) != "" {
			writeBookingError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, tip)
}

// ListTransactionsHandler returns the caller's payment history.
func (h *PaymentHandler) ListTransactionsHandler(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		return
	}

	txns, err := h.Svc.ListTransactions(profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}

// ListPayoutsHandler returns the authenticated mentor's earnings.
func (h *PaymentHandler) ListPayoutsHandler(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		return
	}

	payouts, err := h.Svc.ListPayouts(profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payouts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payouts": payouts})
}

// ListTipsHandler returns tips received by the authenticated mentor.
func (h *PaymentHandler) ListTipsHandler(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		return
	}

	tips, err := h.Svc.ListTips(profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tips"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tips": tips})
}
