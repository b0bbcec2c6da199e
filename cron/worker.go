package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"mentormatch/models"
	"mentormatch/services/booking"
	"mentormatch/services/notification"
	"mentormatch/services/tasks"
	"mentormatch/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// noShowGrace is how long after a confirmed booking's end the sweep waits
// before marking it no_show.
const noShowGrace = time.Hour

// noShowSweepInterval is how often the sweep runs.
const noShowSweepInterval = 10 * time.Minute

// InitReminderWorker runs the asynq worker for session reminders in the
// background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		tasks.ReminderQueueOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid reminder payload", zap.Error(err))
			return err
		}

		notifSvc.NotifyBookingEvent(p.ProfileID, p.Title, p.Body, map[string]string{
			"type":       "session_reminder",
			"booking_id": p.BookingID,
			"fire_date":  p.FireDate,
		})
		return nil
	}
}

// InitNoShowSweep periodically flips confirmed bookings whose window ended
// without a session to no_show.
func InitNoShowSweep(bookingSvc booking.BookingService) {
	go func() {
		ticker := time.NewTicker(noShowSweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			cutoff := time.Now().Add(-noShowGrace)
			marked, err := bookingSvc.MarkNoShows(cutoff)
			if err != nil {
				utils.GetLogger().Error("no-show sweep failed", zap.Error(err))
				continue
			}
			if marked > 0 {
				utils.GetLogger().Info("no-show sweep completed", zap.Int("marked", marked))
			}
		}
	}()
}
