// models/session.go
package models

import "time"

// Session statuses.
const (
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
)

// Session is the live counterpart of a confirmed booking: the video room and
// its start/end record.
type Session struct {
	ID           string     `bson:"id" json:"id"`
	BookingID    string     `bson:"booking_id" json:"booking_id"`
	MentorID     string     `bson:"mentor_id" json:"mentor_id"`
	MenteeID     string     `bson:"mentee_id" json:"mentee_id"`
	Status       string     `bson:"status" json:"status"`
	StartedAt    *time.Time `bson:"started_at,omitempty" json:"started_at,omitempty"`
	EndedAt      *time.Time `bson:"ended_at,omitempty" json:"ended_at,omitempty"`
	VideoRoomID  string     `bson:"video_room_id,omitempty" json:"video_room_id,omitempty"`
	VideoRoomURL string     `bson:"video_room_url,omitempty" json:"video_room_url,omitempty"`
	RecordingURL string     `bson:"recording_url,omitempty" json:"recording_url,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
}

// SessionStartResponse is returned when a mentor opens the room.
type SessionStartResponse struct {
	Session   Session `json:"session"`
	RoomToken string  `json:"room_token"`
}
