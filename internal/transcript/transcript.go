// Package transcript keeps the ordered chat history for the current primary
// document. Turns are append-only; the only mutation besides append is a
// whole-log reset when the document changes.
package transcript

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one exchange entry. Position in the log never changes after
// insertion.
type Turn struct {
	ID        uuid.UUID
	Role      Role
	Content   string
	CreatedAt time.Time
}

// Log is an append-only ordered sequence of turns.
type Log struct {
	mu    sync.RWMutex
	turns []Turn
}

func New() *Log {
	return &Log{}
}

// Append adds a turn at the end and returns it.
func (l *Log) Append(role Role, content string) Turn {
	turn := Turn{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	l.mu.Lock()
	l.turns = append(l.turns, turn)
	l.mu.Unlock()
	return turn
}

// Reset empties the log. Called when the primary document changes or is
// cleared.
func (l *Log) Reset() {
	l.mu.Lock()
	l.turns = nil
	l.mu.Unlock()
}

// Turns returns a snapshot of the log in append order.
func (l *Log) Turns() []Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len reports the number of turns.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}
