package notification

import "context"

// Notifier delivers a push message to one user. Delivery is best-effort:
// implementations must never block the caller on network I/O and must
// swallow delivery errors; a failed notification never fails the state
// transition that triggered it.
type Notifier interface {
	Notify(ctx context.Context, targetNIP string, title string, body string, link string)
}

// Service adds subscription management on top of delivery.
type Service interface {
	Notifier

	// Subscribe stores a browser's Web Push subscription for a user.
	Subscribe(ctx context.Context, nip string, subscriptionJSON string) error

	// PublicKey returns the VAPID public key handed to browsers.
	PublicKey() string
}
