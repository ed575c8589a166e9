// Package events publishes session lifecycle events to interested
// out-of-process consumers. Delivery is best-effort; a publish failure is
// logged and never surfaces to the caller.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"legalease/internal/session"
)

// Kind enumerates session event categories.
type Kind string

const (
	KindDocumentSet     Kind = "document_set"
	KindDocumentCleared Kind = "document_cleared"
)

// Event is the wire record for a session change.
type Event struct {
	ID          uuid.UUID `json:"id"`
	Kind        Kind      `json:"kind"`
	Slot        string    `json:"slot"`
	DocumentID  string    `json:"document_id,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher emits session events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// Bridge adapts a publisher into a session observer. Session notifications
// are synchronous, so the publish itself runs inline; failures are logged
// and swallowed.
func Bridge(p Publisher, log *slog.Logger) session.Observer {
	return func(c session.Change) {
		event := Event{
			ID:         uuid.New(),
			Slot:       string(c.Slot),
			OccurredAt: time.Now().UTC(),
		}
		if c.Current != nil {
			event.Kind = KindDocumentSet
			event.DocumentID = c.Current.ID
			event.DisplayName = c.Current.DisplayName
		} else {
			event.Kind = KindDocumentCleared
		}
		if err := p.Publish(context.Background(), event); err != nil {
			log.Error("failed to publish session event", "kind", event.Kind, "slot", event.Slot, "err", err)
		}
	}
}
