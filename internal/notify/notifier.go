// Package notify is the outbound boundary to the chat transport. Delivery
// is fire-and-forget: the engine never retries and never rolls back match
// state when a notification fails.
package notify

import (
	"context"
)

// Notifier delivers a text message to a participant.
type Notifier interface {
	Notify(ctx context.Context, participantID, text string)
}
