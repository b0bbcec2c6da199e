package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"mentormatch/config"
	"mentormatch/models"
	"mentormatch/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// reminderLead is how long before the session start the reminder fires.
const reminderLead = time.Hour

// ReminderQueueOpt builds the Redis connection options for the reminder queue.
func ReminderQueueOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// NewReminderTask builds the asynq task for one participant's reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(reminderTaskID(payload.BookingID, payload.ProfileID)),
	}
	return task, opts, nil
}

func reminderTaskID(bookingID, profileID string) string {
	return fmt.Sprintf("reminder:%s:%s", bookingID, profileID)
}

// AsynqReminderScheduler enqueues per-participant session reminders.
type AsynqReminderScheduler struct {
	client    *asynq.Client
	inspector *asynq.Inspector
}

// NewAsynqReminderScheduler connects a scheduler to the reminder queue.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	opt := ReminderQueueOpt()
	return &AsynqReminderScheduler{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
	}
}

// ScheduleReminder enqueues a reminder for both participants one hour before
// the session. Sessions starting sooner than the lead get no reminder.
func (s *AsynqReminderScheduler) ScheduleReminder(b *models.Booking) error {
	fireAt := b.ScheduledAt.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	startText := b.ScheduledAt.Format("Jan 2 15:04")
	payloads := []models.ReminderPayload{
		{
			BookingID: b.ID,
			ProfileID: b.MenteeID,
			Title:     "Session starting soon",
			Body:      fmt.Sprintf("Your mentoring session starts at %s.", startText),
			FireDate:  fireAt.Format(time.RFC3339),
		},
		{
			BookingID: b.ID,
			ProfileID: b.MentorID,
			Title:     "Session starting soon",
			Body:      fmt.Sprintf("You have a mentoring session at %s.", startText),
			FireDate:  fireAt.Format(time.RFC3339),
		},
	}

	for _, p := range payloads {
		task, opts, err := NewReminderTask(p, fireAt)
		if err != nil {
			return fmt.Errorf("failed to build reminder task: %w", err)
		}
		if _, err := s.client.Enqueue(task, opts...); err != nil {
			return fmt.Errorf("failed to enqueue reminder: %w", err)
		}
	}

	utils.GetLogger().Debug("reminders scheduled",
		zap.String("bookingID", b.ID),
		zap.Time("fireAt", fireAt))
	return nil
}

// CancelReminder removes both participants' pending reminders for a booking.
// Already-fired or missing tasks are not an error.
func (s *AsynqReminderScheduler) CancelReminder(bookingID string) error {
	scheduled, err := s.inspector.ListScheduledTasks("default")
	if err != nil {
		return fmt.Errorf("failed to list scheduled reminders: %w", err)
	}
	prefix := fmt.Sprintf("reminder:%s:", bookingID)
	for _, t := range scheduled {
		if len(t.ID) >= len(prefix) && t.ID[:len(prefix)] == prefix {
			if err := s.inspector.DeleteTask("default", t.ID); err != nil {
				utils.GetLogger().Warn("failed to delete reminder task",
					zap.String("taskID", t.ID), zap.Error(err))
			}
		}
	}
	return nil
}
