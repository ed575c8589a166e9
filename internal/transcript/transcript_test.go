package transcript

import (
	"fmt"
	"sync"
	"testing"
)

func TestAppendOrder(t *testing.T) {
	log := New()

	log.Append(RoleUser, "Q1")
	log.Append(RoleAssistant, "A1")
	log.Append(RoleUser, "Q2")
	log.Append(RoleAssistant, "A2")

	turns := log.Turns()
	if len(turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(turns))
	}
	expected := []struct {
		role    Role
		content string
	}{
		{RoleUser, "Q1"},
		{RoleAssistant, "A1"},
		{RoleUser, "Q2"},
		{RoleAssistant, "A2"},
	}
	for i, want := range expected {
		if turns[i].Role != want.role || turns[i].Content != want.content {
			t.Fatalf("turn %d: expected %s %q, got %s %q", i, want.role, want.content, turns[i].Role, turns[i].Content)
		}
	}
}

func TestReset(t *testing.T) {
	log := New()
	log.Append(RoleUser, "Q1")
	log.Append(RoleAssistant, "A1")

	log.Reset()
	if log.Len() != 0 {
		t.Fatalf("expected empty log after reset, got %d turns", log.Len())
	}

	// Appends after reset start a fresh ordered sequence
	log.Append(RoleUser, "Q2")
	turns := log.Turns()
	if len(turns) != 1 || turns[0].Content != "Q2" {
		t.Fatalf("expected single fresh turn, got %+v", turns)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	log := New()
	log.Append(RoleUser, "Q1")

	snap := log.Turns()
	log.Append(RoleAssistant, "A1")

	if len(snap) != 1 {
		t.Fatalf("snapshot should not grow with later appends, got %d", len(snap))
	}
}

func TestConcurrentAppendCount(t *testing.T) {
	log := New()
	var wg sync.WaitGroup
	const n = 50
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			log.Append(RoleUser, fmt.Sprintf("Q%d", i))
		}(i)
	}
	wg.Wait()
	if log.Len() != n {
		t.Fatalf("expected %d turns, got %d", n, log.Len())
	}
}
