// models/notification.go
package models

// ReminderPayload is the asynq task payload for a scheduled session reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	ProfileID string `json:"profileId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}
