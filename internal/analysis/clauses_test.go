package analysis

import (
	"strings"
	"testing"
)

func TestSplitClausesOnBlankLines(t *testing.T) {
	text := "Clause one text.\n\nClause two text.\n\nClause three text."
	clauses := SplitClauses(text, 10)
	if len(clauses) != 3 {
		t.Fatalf("expected 3 clauses, got %d: %v", len(clauses), clauses)
	}
	if clauses[0] != "Clause one text." {
		t.Fatalf("unexpected first clause: %q", clauses[0])
	}
}

func TestSplitClausesAccumulatesToLimit(t *testing.T) {
	// Short parts merge into one clause under the limit
	text := "Part A.\n\nPart B.\n\nPart C."
	clauses := SplitClauses(text, 1200)
	if len(clauses) != 1 {
		t.Fatalf("expected a single merged clause, got %d", len(clauses))
	}
	for _, want := range []string{"Part A.", "Part B.", "Part C."} {
		if !strings.Contains(clauses[0], want) {
			t.Fatalf("merged clause missing %q: %q", want, clauses[0])
		}
	}
}

func TestSplitClausesEmptyInput(t *testing.T) {
	if clauses := SplitClauses("", 0); len(clauses) != 0 {
		t.Fatalf("expected no clauses for empty text, got %d", len(clauses))
	}
	if clauses := SplitClauses("\n\n  \n\n", 0); len(clauses) != 0 {
		t.Fatalf("expected no clauses for whitespace text, got %d", len(clauses))
	}
}

func TestSplitClausesDeterministic(t *testing.T) {
	text := "Term.\n\nPayment within 30 days.\n\nLiability is limited.\n\nGoverning law applies."
	first := SplitClauses(text, 20)
	second := SplitClauses(text, 20)
	if len(first) != len(second) {
		t.Fatalf("expected identical splits, got %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("clause %d differs between runs", i)
		}
	}
}

func TestRetrieveContextFindsKeywordWindow(t *testing.T) {
	filler := strings.Repeat("lorem ipsum dolor sit amet. ", 40)
	text := filler + "The termination notice period is ninety days. " + filler
	got := RetrieveContext(text, "What is the termination notice period?", 200)
	if !strings.Contains(got, "termination") {
		t.Fatalf("expected window around keyword, got %q", got)
	}
	if len(got) > 200 {
		t.Fatalf("window exceeds requested size: %d", len(got))
	}
}

func TestRetrieveContextNoKeywordsFallsBackToHead(t *testing.T) {
	text := strings.Repeat("abcdefghij ", 200)
	got := RetrieveContext(text, "a b c", 100)
	if got != text[:100] {
		t.Fatal("expected document head when question has no usable keywords")
	}
}

func TestRetrieveContextShortDocument(t *testing.T) {
	text := "Short document."
	if got := RetrieveContext(text, "anything relevant here", 800); got != text {
		t.Fatalf("expected whole short document, got %q", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"english", "This agreement is made between the parties.", "english"},
		{"hindi", "यह अनुबंध पक्षों के बीच किया गया है।", "hindi"},
		{"russian", "Настоящее соглашение заключено между сторонами.", "russian"},
		{"empty", "12345 !!!", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
