// handlers/booking.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	bookingRepo "mentormatch/database/repository/booking"
	"mentormatch/models"
	"mentormatch/services/booking"
	"mentormatch/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle endpoints.
type BookingHandler struct {
	Svc        booking.BookingService
	PaymentSvc payment.PaymentService
}

func NewBookingHandler(svc booking.BookingService, paymentSvc payment.PaymentService) *BookingHandler {
	return &BookingHandler{Svc: svc, PaymentSvc: paymentSvc}
}

// CreateBookingHandler books a mentor's slot for the authenticated mentee.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	menteeID, ok := currentProfileID(c)
	if !ok {
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	view, err := h.Svc.Create(c.Request.Context(), menteeID, req)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetBookingHandler returns one booking to a participant.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	actorID, ok := currentProfileID(c)
	if !ok {
		return
	}

	view, err := h.Svc.Get(c.Param("id"), actorID)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListBookingsHandler returns the caller's bookings, optionally filtered by
// status, role and upcoming-only.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	actorID, ok := currentProfileID(c)
	if !ok {
		return
	}

	filter := bookingRepo.ListFilter{
		Status:       c.Query("status"),
		Role:         c.Query("role"),
		UpcomingOnly: c.Query("upcoming") == "true",
	}
	views, err := h.Svc.List(actorID, filter)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

// CheckAvailabilityHandler reports whether a window is free for a mentor.
// This is advisory; the create path re-checks atomically.
func (h *BookingHandler) CheckAvailabilityHandler(c *gin.Context) {
	mentorID := c.Query("mentor_id")
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be RFC3339"})
		return
	}
	duration, ok := parseDuration(c)
	if !ok {
		return
	}

	available, err := h.Svc.CheckAvailability(c.Request.Context(), mentorID, start, duration)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// PriceQuoteHandler computes the price of a prospective booking.
func (h *BookingHandler) PriceQuoteHandler(c *gin.Context) {
	duration, ok := parseDuration(c)
	if !ok {
		return
	}
	kind := c.DefaultQuery("session_kind", models.SessionKindOneOnOne)

	price, currency, err := h.Svc.ComputePriceForMentor(c.Query("mentor_id"), kind, duration)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"price_cents": price, "currency": currency})
}

// ConfirmBookingHandler lets the mentor accept a pending booking.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	h.applyTransition(c, booking.EventConfirm, booking.TransitionPayload{})
}

// CancelBookingHandler cancels an active booking. Refund-eligible, paid
// cancellations trigger a Stripe refund.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	actorID, ok := currentProfileID(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	view, err := h.Svc.ApplyTransition(c.Request.Context(), c.Param("id"), booking.EventCancel, actorID,
		booking.TransitionPayload{Reason: req.Reason})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	if view.Cancellation != nil && view.Cancellation.RefundEligible && h.PaymentSvc != nil {
		if err := h.PaymentSvc.RefundBooking(view.ID); err != nil {
			// The cancellation stands; the refund is retried by support tooling.
			getLogger(c).Error("refund failed after cancellation",
				zap.String("bookingID", view.ID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, view)
}

// RescheduleBookingHandler moves an active booking to a new window.
func (h *BookingHandler) RescheduleBookingHandler(c *gin.Context) {
	var req models.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	h.applyTransition(c, booking.EventReschedule, booking.TransitionPayload{Reschedule: &req})
}

// parseDuration reads the duration query (minutes, default 60) and rejects
// values outside the bookable range with 400.
func parseDuration(c *gin.Context) (int, bool) {
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
	if err != nil || duration < models.MinBookingMinutes || duration > models.MaxBookingMinutes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf(
			"duration must be a number of minutes between %d and %d",
			models.MinBookingMinutes, models.MaxBookingMinutes)})
		return 0, false
	}
	return duration, true
}

func (h *BookingHandler) applyTransition(c *gin.Context, event string, payload booking.TransitionPayload) {
	actorID, ok := currentProfileID(c)
	if !ok {
		return
	}

	view, err := h.Svc.ApplyTransition(c.Request.Context(), c.Param("id"), event, actorID, payload)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
