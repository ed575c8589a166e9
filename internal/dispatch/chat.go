package dispatch

import (
	"context"
	"strings"

	"legalease/internal/httputil"
	"legalease/internal/session"
	"legalease/internal/transcript"
)

// Chat policy: user turns are appended optimistically and immediately, in
// call order. The network calls themselves are serialized FIFO through a
// single worker, so assistant turns land in invocation order regardless of
// relative latency.

type chatJob struct {
	docID    string
	question string
	language string
}

type askRequest struct {
	Question string `validate:"required,min=1,max=500"`
}

// Ask appends the question to the transcript and queues the answer call.
// It returns once the question is queued; the assistant turn arrives
// asynchronously. An empty question or a missing document is rejected
// before any transcript mutation.
func (d *Dispatcher) Ask(ctx context.Context, question string) error {
	q := strings.TrimSpace(question)
	if err := httputil.Validator.Struct(&askRequest{Question: q}); err != nil {
		return &ErrorInfo{Kind: KindValidationError, Message: "question must be between 1 and 500 characters"}
	}
	doc := d.session.Document(session.SlotPrimary)
	if doc == nil {
		return d.validationFailure("common.uploadFirst", "no document uploaded")
	}

	// Optimistic insert: the question is visible before the call resolves
	// and stays in the transcript even if the call fails.
	d.chat.Append(transcript.RoleUser, q)

	job := chatJob{docID: doc.ID, question: q, language: d.locale.Language()}
	d.chatPending.Add(1)
	select {
	case d.chatJobs <- job:
		return nil
	default:
		d.chatPending.Done()
		info := ErrorInfo{Kind: KindTransportError, Message: "chat queue full"}
		d.notifyKey("chat.error", nil)
		return &info
	}
}

// Transcript returns the chat log snapshot in append order.
func (d *Dispatcher) Transcript() []transcript.Turn {
	return d.chat.Turns()
}

func (d *Dispatcher) chatWorker() {
	for job := range d.chatJobs {
		d.processChat(job)
		d.chatPending.Done()
	}
}

func (d *Dispatcher) processChat(job chatJob) {
	// The job may outlive the Ask call; the provider bounds each request
	// with its own timeout.
	ctx := context.Background()
	answer, err := d.svc.AnswerQuestion(ctx, job.docID, job.question, job.language)

	if d.superseded(session.SlotPrimary, job.docID) {
		d.log.Debug("discarding stale answer", "document_id", job.docID)
		return
	}

	if err != nil {
		info := normalizeError(err)
		if info.Kind == KindNotFound {
			if clearErr := d.session.ClearDocument(ctx, session.SlotPrimary); clearErr != nil {
				d.log.Warn("failed to clear document after not-found", "err", clearErr)
			}
			d.notifyKey("common.notFound", nil)
			return
		}
		// The user turn stays; only the answer is missing.
		d.log.Error("answer failed", "document_id", job.docID, "err", err)
		d.notifyKey("chat.error", nil)
		return
	}

	d.chat.Append(transcript.RoleAssistant, answer)
}
