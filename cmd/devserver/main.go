// Command devserver runs a local stand-in for the remote analysis service.
// It serves the same HTTP contract the client's HTTP provider speaks, backed
// by the direct provider (mock responses unless OPENAI_API_KEY is set), so
// the client can be exercised end to end without the hosted backend.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/openai/openai-go/v3"

	"legalease/internal/analysis"
	"legalease/internal/config"
	"legalease/internal/httputil"
	"legalease/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	svc := analysis.NewDirect(cfg.OpenAIKey, openai.ChatModel(cfg.LLMModel), log)

	r := httputil.NewRouter(log)
	r.Post("/upload", uploadHandler(svc, log, cfg.MaxUploadSize))
	r.Post("/summarize", summarizeHandler(svc, log))
	r.Post("/clauses", clausesHandler(svc, log))
	r.Post("/qa", qaHandler(svc, log))
	r.Post("/compare", compareHandler(svc, log))
	r.Get("/ai_status", statusHandler(svc, log))
	r.Get("/upload_status", uploadStatusHandler(log, cfg.MaxUploadSize))
	r.Get("/healthz", httputil.HealthHandler(log))

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("devserver listening", "addr", addr, "mock", cfg.OpenAIKey == "")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

type docRequest struct {
	DocID    string `json:"doc_id" validate:"required"`
	Language string `json:"language"`
}

type qaRequest struct {
	DocID    string `json:"doc_id" validate:"required"`
	Question string `json:"question" validate:"required,min=1,max=500"`
	Language string `json:"language"`
}

type compareRequest struct {
	DocIDA   string `json:"doc_id_a" validate:"required"`
	DocIDB   string `json:"doc_id_b" validate:"required"`
	Language string `json:"language"`
}

func uploadHandler(svc analysis.Service, log *slog.Logger, maxFileSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > maxFileSize {
			httputil.WriteError(log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.WriteError(log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Size > maxFileSize {
			httputil.WriteError(log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}
		content, err := io.ReadAll(file)
		if err != nil {
			httputil.WriteError(log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}

		res, err := svc.Upload(r.Context(), header.Filename, content)
		if err != nil {
			httputil.WriteError(log, w, err.Error(), err, http.StatusBadRequest)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, res)
	}
}

func summarizeHandler(svc analysis.Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req docRequest
		if !decode(w, r, log, &req) {
			return
		}
		res, err := svc.Summarize(r.Context(), req.DocID, req.Language)
		if err != nil {
			writeServiceError(log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, res)
	}
}

func clausesHandler(svc analysis.Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req docRequest
		if !decode(w, r, log, &req) {
			return
		}
		res, err := svc.AnalyzeClauses(r.Context(), req.DocID, req.Language)
		if err != nil {
			writeServiceError(log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"clauses": res})
	}
}

func qaHandler(svc analysis.Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req qaRequest
		if !decode(w, r, log, &req) {
			return
		}
		answer, err := svc.AnswerQuestion(r.Context(), req.DocID, req.Question, req.Language)
		if err != nil {
			writeServiceError(log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"answer": answer})
	}
}

func compareHandler(svc analysis.Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req compareRequest
		if !decode(w, r, log, &req) {
			return
		}
		res, err := svc.CompareDocuments(r.Context(), req.DocIDA, req.DocIDB, req.Language)
		if err != nil {
			writeServiceError(log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"comparisons": res})
	}
}

func statusHandler(svc analysis.Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := svc.Status(r.Context())
		if err != nil {
			httputil.WriteError(log, w, "status unavailable", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, status)
	}
}

func uploadStatusHandler(log *slog.Logger, maxFileSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"max_file_size":     maxFileSize,
			"supported_formats": []string{"pdf", "doc", "docx", "jpg", "jpeg", "png", "bmp", "tiff", "gif"},
		})
	}
}

// decode unmarshals and validates a JSON request body, writing the failure
// response itself. It reports whether the handler should proceed.
func decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.WriteError(log, w, "invalid JSON body", err, http.StatusBadRequest)
		return false
	}
	if err := httputil.Validator.Struct(dst); err != nil {
		httputil.ValidationError(log, w, err)
		return false
	}
	return true
}

func writeServiceError(log *slog.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, analysis.ErrDocumentNotFound) {
		httputil.WriteError(log, w, "Document not found. Please upload the document again.", err, http.StatusNotFound)
		return
	}
	httputil.WriteError(log, w, err.Error(), err, http.StatusInternalServerError)
}
