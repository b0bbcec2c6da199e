package notification

import (
	"context"
	"fmt"

	profileRepo "mentormatch/database/repository/profile"
	userRepo "mentormatch/database/repository/user"

	"mentormatch/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends FCM pushes to booking participants.
type NotificationService interface {
	SendPush(ctx context.Context, userID, title, body string, data map[string]string) error
	NotifyBookingEvent(profileID, title, body string, data map[string]string)
}

// DefaultNotificationService resolves device tokens through the user store.
type DefaultNotificationService struct {
	UserRepo    userRepo.UserRepository
	ProfileRepo profileRepo.ProfileRepository
}

// SendPush delivers a notification to every registered device of a user.
// A nil FCM client (no credentials configured) makes this a no-op.
func (s *DefaultNotificationService) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		return nil
	}

	u, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	if u == nil || len(u.DeviceTokens) == 0 {
		return nil
	}

	for _, token := range u.DeviceTokens {
		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					Sound: "default",
				},
			},
		}
		if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
			utils.GetLogger().Warn("failed to send push",
				zap.String("userID", userID), zap.Error(err))
		}
	}
	return nil
}

// NotifyBookingEvent resolves a profile to its user and sends the push in the
// background. Delivery failures are logged, never surfaced to the booking flow.
func (s *DefaultNotificationService) NotifyBookingEvent(profileID, title, body string, data map[string]string) {
	profile, err := s.ProfileRepo.GetByID(profileID)
	if err != nil || profile == nil {
		utils.GetLogger().Warn("cannot notify unknown profile", zap.String("profileID", profileID))
		return
	}
	go func() {
		if err := s.SendPush(context.Background(), profile.UserID, title, body, data); err != nil {
			utils.GetLogger().Warn("booking notification failed",
				zap.String("profileID", profileID), zap.Error(err))
		}
	}()
}
