package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"
)

// HTTPClient talks to a running analysis service over its JSON contract.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

// NewHTTPClient builds a client against baseURL. Timeout bounds each request;
// the core treats a timeout as any other transport failure.
func NewHTTPClient(baseURL string, timeout time.Duration, log *slog.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) Upload(ctx context.Context, filename string, content []byte) (UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, err
	}
	if _, err := part.Write(content); err != nil {
		return UploadResult{}, err
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return UploadResult{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out UploadResult
	if err := c.do(req, &out); err != nil {
		return UploadResult{}, err
	}
	return out, nil
}

func (c *HTTPClient) Summarize(ctx context.Context, docID, language string) (SummarizeResult, error) {
	var out SummarizeResult
	err := c.postJSON(ctx, "/summarize", map[string]string{
		"doc_id":   docID,
		"language": language,
	}, &out)
	return out, err
}

func (c *HTTPClient) AnalyzeClauses(ctx context.Context, docID, language string) ([]ClauseAnalysis, error) {
	var out struct {
		Clauses []ClauseAnalysis `json:"clauses"`
	}
	err := c.postJSON(ctx, "/clauses", map[string]string{
		"doc_id":   docID,
		"language": language,
	}, &out)
	return out.Clauses, err
}

func (c *HTTPClient) AnswerQuestion(ctx context.Context, docID, question, language string) (string, error) {
	var out struct {
		Answer string `json:"answer"`
	}
	err := c.postJSON(ctx, "/qa", map[string]string{
		"doc_id":   docID,
		"question": question,
		"language": language,
	}, &out)
	return out.Answer, err
}

func (c *HTTPClient) CompareDocuments(ctx context.Context, docIDA, docIDB, language string) ([]ComparisonRecord, error) {
	var out struct {
		Comparisons []ComparisonRecord `json:"comparisons"`
	}
	err := c.postJSON(ctx, "/compare", map[string]string{
		"doc_id_a": docIDA,
		"doc_id_b": docIDB,
		"language": language,
	}, &out)
	return out.Comparisons, err
}

func (c *HTTPClient) Status(ctx context.Context) (Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ai_status", nil)
	if err != nil {
		return Status{}, err
	}
	var out Status
	if err := c.do(req, &out); err != nil {
		return Status{}, err
	}
	return out, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes the request and decodes the response, translating non-success
// statuses into typed errors. 404 means the document id is gone server-side.
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := readDetail(resp.Body)
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, detail)
		}
		return &RemoteError{StatusCode: resp.StatusCode, Detail: detail}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed analysis response: %w", err)
	}
	return nil
}

// readDetail extracts the error detail field the service puts in failure
// bodies, falling back to the raw body.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return string(raw)
}
