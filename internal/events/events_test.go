package events

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"legalease/internal/session"
)

func TestBridgePublishesDocumentSet(t *testing.T) {
	pub := &MockPublisher{}
	var got Event
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(Event) bool { return true })).
		Run(func(args mock.Arguments) { got = args.Get(1).(Event) }).
		Return(nil)

	observer := Bridge(pub, slog.Default())
	observer(session.Change{
		Slot:    session.SlotPrimary,
		Current: &session.DocumentRef{ID: "doc_1", DisplayName: "lease.pdf", Slot: session.SlotPrimary},
	})

	require.Equal(t, KindDocumentSet, got.Kind)
	require.Equal(t, "primary", got.Slot)
	require.Equal(t, "doc_1", got.DocumentID)
	require.Equal(t, "lease.pdf", got.DisplayName)
	require.False(t, got.OccurredAt.IsZero())
	pub.AssertExpectations(t)
}

func TestBridgePublishesDocumentCleared(t *testing.T) {
	pub := &MockPublisher{}
	var got Event
	pub.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(Event) }).
		Return(nil)

	observer := Bridge(pub, slog.Default())
	observer(session.Change{
		Slot:     session.SlotSecondary,
		Previous: &session.DocumentRef{ID: "doc_b", Slot: session.SlotSecondary},
	})

	require.Equal(t, KindDocumentCleared, got.Kind)
	require.Equal(t, "secondary", got.Slot)
	require.Empty(t, got.DocumentID)
}

func TestBridgeSwallowsPublishError(t *testing.T) {
	pub := &MockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(context.DeadlineExceeded)

	observer := Bridge(pub, slog.Default())
	require.NotPanics(t, func() {
		observer(session.Change{Slot: session.SlotPrimary})
	})
}
