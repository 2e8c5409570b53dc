package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/notification"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/webpush"
)

type NotificationServiceImpl struct {
	user.UserRepository
	sender *webpush.Sender
	logger *slog.Logger
}

func NewNotificationService(userRepo user.UserRepository, sender *webpush.Sender, logger *slog.Logger) notification.Service {
	return &NotificationServiceImpl{
		UserRepository: userRepo,
		sender:         sender,
		logger:         logger,
	}
}

// Notify implements notification.Notifier. Delivery runs in a goroutine with
// its own deadline; the request context may already be gone by the time the
// push service answers.
func (s *NotificationServiceImpl) Notify(_ context.Context, targetNIP string, title string, body string, link string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		target, err := s.UserRepository.GetByNIP(ctx, targetNIP)
		if err != nil {
			s.logger.Warn("push notification skipped", "nip", targetNIP, "error", err)
			return
		}
		if target.PushSubscription == nil {
			return
		}

		err = s.sender.Send(ctx, *target.PushSubscription, webpush.Payload{
			Title: title,
			Body:  body,
			URL:   link,
		})
		if err != nil {
			if errors.Is(err, webpush.ErrSubscriptionGone) {
				// The browser dropped the subscription; forget it.
				if err := s.UserRepository.SetPushSubscription(ctx, targetNIP, nil); err != nil {
					s.logger.Warn("failed to clear stale push subscription", "nip", targetNIP, "error", err)
				}
				return
			}
			s.logger.Warn("push notification failed", "nip", targetNIP, "error", err)
		}
	}()
}

// Subscribe implements notification.Service.
func (s *NotificationServiceImpl) Subscribe(ctx context.Context, nip string, subscriptionJSON string) error {
	if err := webpush.ValidateSubscription(subscriptionJSON); err != nil {
		return err
	}
	return s.UserRepository.SetPushSubscription(ctx, nip, &subscriptionJSON)
}

// PublicKey implements notification.Service.
func (s *NotificationServiceImpl) PublicKey() string {
	return s.sender.PublicKey()
}
