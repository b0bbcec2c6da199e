// models/booking.go
package models

import "time"

// Booking statuses. Cancelled, completed and no_show are terminal.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
	BookingStatusNoShow    = "no_show"
)

// Session kinds.
const (
	SessionKindOneOnOne = "one_on_one"
	SessionKindGroup    = "group"
	SessionKindTrial    = "trial"
)

// Duration bounds for a booking, in minutes.
const (
	MinBookingMinutes = 15
	MaxBookingMinutes = 180
)

// Booking is a reservation of a mentor's time by a mentee.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	MentorID        string    `bson:"mentor_id" json:"mentor_id"`
	MenteeID        string    `bson:"mentee_id" json:"mentee_id"`
	ScheduledAt     time.Time `bson:"scheduled_at" json:"scheduled_at"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	// EndsAt is denormalised from ScheduledAt + DurationMinutes so overlap
	// queries stay plain range filters. Maintained by SetWindow.
	EndsAt      time.Time `bson:"ends_at" json:"ends_at"`
	SessionKind string    `bson:"session_kind" json:"session_kind"`
	Status      string    `bson:"status" json:"status"`
	PriceCents  int64     `bson:"price_cents" json:"price_cents"`
	Currency    string    `bson:"currency" json:"currency"`
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`

	Cancellation *CancellationRecord `bson:"cancellation,omitempty" json:"cancellation,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CancellationRecord captures who cancelled a booking, when, and whether the
// 24-hour notice made it refund-eligible.
type CancellationRecord struct {
	Reason         string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CancelledBy    string    `bson:"cancelled_by" json:"cancelled_by"`
	CancelledAt    time.Time `bson:"cancelled_at" json:"cancelled_at"`
	RefundEligible bool      `bson:"refund_eligible" json:"refund_eligible"`
}

// SetWindow updates the scheduled window and keeps EndsAt consistent.
func (b *Booking) SetWindow(start time.Time, minutes int) {
	b.ScheduledAt = start
	b.DurationMinutes = minutes
	b.EndsAt = start.Add(time.Duration(minutes) * time.Minute)
}

// IsActive reports whether the booking counts toward slot conflicts.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// IsTerminal reports whether the booking can no longer change state.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow:
		return true
	}
	return false
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	MentorID        string    `json:"mentor_id" binding:"required"`
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
	SessionKind     string    `json:"session_kind" binding:"required"`
	Notes           string    `json:"notes"`
}

// RescheduleRequest carries the fields a mentee may change on a booking.
// Nil fields are left untouched.
type RescheduleRequest struct {
	ScheduledAt     *time.Time `json:"scheduled_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	Notes           *string    `json:"notes"`
}

// BookingView is the caller-facing shape of a booking, with derived fields.
type BookingView struct {
	Booking
	PaymentRequired bool   `json:"payment_required"`
	CanCancel       bool   `json:"can_cancel"`
	CanReschedule   bool   `json:"can_reschedule"`
	MentorName      string `json:"mentor_name,omitempty"`
	MenteeName      string `json:"mentee_name,omitempty"`
	SessionID       string `json:"session_id,omitempty"`
	VideoRoomURL    string `json:"video_room_url,omitempty"`
}
