// Package session is the single source of truth for which documents are
// current. It owns the primary document (summary, clauses, chat) and an
// optional secondary document (comparison counterpart), persists the primary
// across restarts, and notifies dependents synchronously on every change.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"legalease/internal/kvstore"
)

// Slot distinguishes the main analyzed document from a comparison
// counterpart.
type Slot string

const (
	SlotPrimary   Slot = "primary"
	SlotSecondary Slot = "secondary"
)

// DocumentRef is the client's handle to a server-side uploaded document.
type DocumentRef struct {
	// ID is the opaque handle issued by the analysis service at upload time.
	ID string
	// DisplayName is the original filename, for presentation only.
	DisplayName string
	Slot        Slot
}

// Change describes one slot mutation. Previous and Current are nil when the
// slot was empty or cleared respectively.
type Change struct {
	Slot     Slot
	Previous *DocumentRef
	Current  *DocumentRef
}

// Observer receives change notifications. Delivery is synchronous: every
// observer runs before SetDocument/ClearDocument returns, so no dependent
// can observe a half-updated world.
type Observer func(Change)

type subscription struct {
	id uuid.UUID
	fn Observer
}

// Store tracks the current document per slot.
type Store struct {
	mu        sync.Mutex
	docs      map[Slot]*DocumentRef
	observers []subscription

	kv  kvstore.Store
	log *slog.Logger
}

// New builds a store and rehydrates the primary slot from the durable store
// if present. The rehydrated id is not validated against the analysis
// service here; the first operation against it surfaces a stale id as a
// not-found failure. The secondary slot is session-scoped and never
// persisted.
func New(ctx context.Context, kv kvstore.Store, log *slog.Logger) *Store {
	s := &Store{
		docs: make(map[Slot]*DocumentRef),
		kv:   kv,
		log:  log,
	}
	id, ok, err := kv.Get(ctx, kvstore.KeyDocumentID)
	if err != nil {
		log.Warn("failed to load saved document", "err", err)
		return s
	}
	if ok && id != "" {
		name, _, _ := kv.Get(ctx, kvstore.KeyDocumentName)
		s.docs[SlotPrimary] = &DocumentRef{ID: id, DisplayName: name, Slot: SlotPrimary}
		log.Info("restored document from previous session", "document_id", id, "name", name)
	}
	return s
}

// Document returns a copy of the current ref for slot, or nil when empty.
func (s *Store) Document(slot Slot) *DocumentRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ref := s.docs[slot]; ref != nil {
		cp := *ref
		return &cp
	}
	return nil
}

// SetDocument stores ref for its slot, persists the primary slot, and
// notifies observers before returning.
func (s *Store) SetDocument(ctx context.Context, ref DocumentRef) error {
	if ref.Slot == "" {
		ref.Slot = SlotPrimary
	}
	s.mu.Lock()
	prev := s.docs[ref.Slot]
	cp := ref
	s.docs[ref.Slot] = &cp
	s.mu.Unlock()

	if ref.Slot == SlotPrimary {
		if err := s.kv.Set(ctx, kvstore.KeyDocumentID, ref.ID); err != nil {
			s.log.Warn("failed to persist document id", "err", err)
		}
		if err := s.kv.Set(ctx, kvstore.KeyDocumentName, ref.DisplayName); err != nil {
			s.log.Warn("failed to persist document name", "err", err)
		}
	}

	s.notify(Change{Slot: ref.Slot, Previous: prev, Current: &cp})
	return nil
}

// ClearDocument removes the ref for slot, removes the durable entries for
// the primary slot, and notifies observers before returning. Clearing an
// already-empty slot is a no-op with no notification.
func (s *Store) ClearDocument(ctx context.Context, slot Slot) error {
	s.mu.Lock()
	prev := s.docs[slot]
	delete(s.docs, slot)
	s.mu.Unlock()

	if prev == nil {
		return nil
	}

	if slot == SlotPrimary {
		if err := s.kv.Delete(ctx, kvstore.KeyDocumentID); err != nil {
			s.log.Warn("failed to remove persisted document id", "err", err)
		}
		if err := s.kv.Delete(ctx, kvstore.KeyDocumentName); err != nil {
			s.log.Warn("failed to remove persisted document name", "err", err)
		}
	}

	s.notify(Change{Slot: slot, Previous: prev, Current: nil})
	return nil
}

// Subscribe registers an observer and returns an unsubscribe function.
func (s *Store) Subscribe(fn Observer) func() {
	id := uuid.New()
	s.mu.Lock()
	s.observers = append(s.observers, subscription{id: id, fn: fn})
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// notify runs observers outside the state lock so they can read the store.
func (s *Store) notify(change Change) {
	s.mu.Lock()
	subs := make([]subscription, len(s.observers))
	copy(subs, s.observers)
	s.mu.Unlock()
	for _, sub := range subs {
		sub.fn(change)
	}
}
