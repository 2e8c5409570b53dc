package webpush

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// ErrSubscriptionGone marks a subscription the push service reports as
// expired or revoked; the stored endpoint should be dropped.
var ErrSubscriptionGone = errors.New("push subscription is gone")

// Payload is the message shape the service worker reads.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

type Sender struct {
	publicKey  string
	privateKey string
	subscriber string
}

func NewSender(publicKey, privateKey, subscriber string) *Sender {
	return &Sender{
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: subscriber,
	}
}

// PublicKey returns the VAPID public key browsers subscribe with.
func (s *Sender) PublicKey() string {
	return s.publicKey
}

// ValidateSubscription checks that a stored subscription JSON parses.
func ValidateSubscription(subscriptionJSON string) error {
	var sub webpush.Subscription
	if err := json.Unmarshal([]byte(subscriptionJSON), &sub); err != nil {
		return fmt.Errorf("invalid subscription JSON: %w", err)
	}
	if sub.Endpoint == "" {
		return errors.New("subscription endpoint is empty")
	}
	return nil
}

// Send delivers one payload to a stored subscription.
func (s *Sender) Send(ctx context.Context, subscriptionJSON string, payload Payload) error {
	var sub webpush.Subscription
	if err := json.Unmarshal([]byte(subscriptionJSON), &sub); err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &sub, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             60,
	})
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		return ErrSubscriptionGone
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("push service responded with status %d", resp.StatusCode)
	}
	return nil
}
