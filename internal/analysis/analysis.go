// Package analysis defines the contract of the remote document-analysis
// service and its providers. The production service is an external HTTP
// endpoint; a direct OpenAI-backed provider exists for development and
// offline use.
package analysis

import (
	"context"
	"errors"
	"fmt"
)

// ErrDocumentNotFound reports that the referenced document id no longer
// exists server-side (expired or evicted).
var ErrDocumentNotFound = errors.New("document not found")

// RemoteError is a non-success response from the analysis service.
type RemoteError struct {
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("analysis service returned %d: %s", e.StatusCode, e.Detail)
}

// UploadResult is the outcome of a successful upload.
type UploadResult struct {
	DocID            string `json:"doc_id"`
	TextLength       int    `json:"text_length"`
	FileType         string `json:"file_type"`
	DetectedLanguage string `json:"detected_language"`
}

// SummarizeResult is the outcome of a summarize call.
type SummarizeResult struct {
	Summary          string `json:"summary"`
	DetectedLanguage string `json:"detected_language,omitempty"`
}

// ClauseAnalysis is one per-clause explanation. Order corresponds to clause
// position in the source document.
type ClauseAnalysis struct {
	Clause   string `json:"clause"`
	Analysis string `json:"analysis"`
}

// ComparisonRecord is one per-clause comparison between two documents.
type ComparisonRecord struct {
	Index     int      `json:"index"`
	TextA     string   `json:"a"`
	TextB     string   `json:"b"`
	RiskLevel string   `json:"risk_level,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	Changes   []string `json:"changes,omitempty"`
	Impact    []string `json:"impact,omitempty"`
}

// Status reports service configuration, mirroring the diagnostics probes.
type Status struct {
	Service      string `json:"service"`
	Mock         bool   `json:"mock"`
	Model        string `json:"model"`
	ImageSupport bool   `json:"image_support"`
}

// Service is the analysis contract. All operations except Upload and Status
// require a previously issued, still-valid document id.
type Service interface {
	Upload(ctx context.Context, filename string, content []byte) (UploadResult, error)
	Summarize(ctx context.Context, docID, language string) (SummarizeResult, error)
	AnalyzeClauses(ctx context.Context, docID, language string) ([]ClauseAnalysis, error)
	AnswerQuestion(ctx context.Context, docID, question, language string) (string, error)
	CompareDocuments(ctx context.Context, docIDA, docIDB, language string) ([]ComparisonRecord, error)
	Status(ctx context.Context) (Status, error)
}
