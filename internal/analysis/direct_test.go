package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"legalease/internal/logger"
)

// Direct provider tests run in mock mode (no API key), matching how the
// original prototype ran without credentials.
func newMockDirect(t *testing.T) *DirectService {
	t.Helper()
	return NewDirect("", "", logger.New("error"))
}

func uploadText(t *testing.T, s *DirectService, text string) string {
	t.Helper()
	res, err := s.Upload(context.Background(), "doc.txt", []byte(text))
	require.NoError(t, err)
	return res.DocID
}

func TestDirectUploadAndSummarize(t *testing.T) {
	s := newMockDirect(t)
	ctx := context.Background()

	docID := uploadText(t, s, "The parties agree to the following terms.\n\nPayment is due in 30 days.")

	got, err := s.Summarize(ctx, docID, "en")
	require.NoError(t, err)
	require.NotEmpty(t, got.Summary)
	require.Equal(t, "english", got.DetectedLanguage)
}

func TestDirectUploadRejectsEmptyDocument(t *testing.T) {
	s := newMockDirect(t)

	_, err := s.Upload(context.Background(), "empty.txt", []byte("   \n   "))
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, 400, remoteErr.StatusCode)
}

func TestDirectUnknownDocumentID(t *testing.T) {
	s := newMockDirect(t)
	ctx := context.Background()

	_, err := s.Summarize(ctx, "no-such-doc", "en")
	require.ErrorIs(t, err, ErrDocumentNotFound)

	_, err = s.AnswerQuestion(ctx, "no-such-doc", "What is the term?", "en")
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDirectAnalyzeClausesOrderAndIdempotence(t *testing.T) {
	s := newMockDirect(t)
	ctx := context.Background()

	docID := uploadText(t, s, "Clause about term length goes here with some detail.\n\nClause about payment terms goes here with some detail.\n\nClause about liability goes here with some detail.")

	first, err := s.AnalyzeClauses(ctx, docID, "en")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Clause order matches document order
	clauses := SplitClauses("Clause about term length goes here with some detail.\n\nClause about payment terms goes here with some detail.\n\nClause about liability goes here with some detail.", 0)
	require.Len(t, first, len(clauses))
	for i := range clauses {
		require.Equal(t, clauses[i], first[i].Clause)
	}

	// A second run over an unchanged document yields the same ordered list
	second, err := s.AnalyzeClauses(ctx, docID, "en")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDirectCompareDocuments(t *testing.T) {
	s := newMockDirect(t)
	ctx := context.Background()

	docA := uploadText(t, s, "Original clause text.")
	docB := uploadText(t, s, "Revised clause text.")

	records, err := s.CompareDocuments(ctx, docA, docB, "en")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 0, records[0].Index)
	require.Equal(t, "Original clause text.", records[0].TextA)
	require.Equal(t, "Revised clause text.", records[0].TextB)
	require.Equal(t, "caution", records[0].RiskLevel) // mock response carries 🟡
}

func TestDirectStatus(t *testing.T) {
	s := newMockDirect(t)
	st, err := s.Status(context.Background())
	require.NoError(t, err)
	require.True(t, st.Mock)
	require.False(t, st.ImageSupport)
}

func TestRiskFromMarkers(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"🟢 Safe — standard boilerplate.", "safe"},
		{"🟡 Caution — review timelines.", "caution"},
		{"🔴 Risky — uncapped liability.", "risky"},
		{"no marker present", ""},
	}
	for _, tt := range tests {
		if got := riskFromMarkers(tt.text); got != tt.expected {
			t.Fatalf("riskFromMarkers(%q) = %q, want %q", tt.text, got, tt.expected)
		}
	}
}
