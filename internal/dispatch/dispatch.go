// Package dispatch sequences the analysis operations against the current
// session. It enforces at-most-one in-flight call per operation kind,
// captures document identity at invocation time and discards results that
// arrive for a superseded session, and is the single place raw failures are
// normalized into typed ErrorInfo values.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"legalease/internal/analysis"
	"legalease/internal/i18n"
	"legalease/internal/session"
	"legalease/internal/transcript"
)

// ErrInFlight reports that an operation of the same kind is already pending.
// The new invocation is a no-op, never queued.
var ErrInFlight = errors.New("operation already in flight")

// SupportedExtensions is the upload allow-list, checked before any network
// call.
var SupportedExtensions = []string{"pdf", "doc", "docx", "jpg", "jpeg", "png", "bmp", "tiff", "gif"}

// Summary is the value held by a successful summarize result.
type Summary struct {
	Text             string
	DetectedLanguage string
}

// Notifier receives localized, non-blocking user notifications (the toast
// analog). Nil disables notifications.
type Notifier func(message string)

// Options tunes a Dispatcher.
type Options struct {
	MaxUploadSize int64
	ChatQueueSize int
	Notify        Notifier
}

const (
	defaultMaxUploadSize = 10 << 20
	defaultChatQueueSize = 64
)

// operation keys for the in-flight guard
const (
	opSummarize       = "summarize"
	opClauses         = "clauses"
	opCompare         = "compare"
	opUploadPrimary   = "upload_primary"
	opUploadSecondary = "upload_secondary"
)

// Dispatcher performs the four analysis operations plus upload/remove.
type Dispatcher struct {
	mu       sync.Mutex
	inFlight map[string]bool
	summary  Result[Summary]
	clauses  Result[[]analysis.ClauseAnalysis]
	compare  Result[[]analysis.ComparisonRecord]

	svc     analysis.Service
	session *session.Store
	chat    *transcript.Log
	locale  *i18n.Resolver
	log     *slog.Logger
	notify  Notifier

	maxUploadSize int64

	chatJobs    chan chatJob
	chatPending sync.WaitGroup
	unsubscribe func()
	closeOnce   sync.Once
}

// New wires a dispatcher to its collaborators and subscribes it to session
// changes so stale results and the transcript are reset synchronously with
// every document change. Close releases the subscription and the chat
// worker.
func New(svc analysis.Service, sess *session.Store, chat *transcript.Log, locale *i18n.Resolver, log *slog.Logger, opts Options) *Dispatcher {
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = defaultMaxUploadSize
	}
	if opts.ChatQueueSize <= 0 {
		opts.ChatQueueSize = defaultChatQueueSize
	}
	d := &Dispatcher{
		inFlight:      make(map[string]bool),
		summary:       idle[Summary](),
		clauses:       idle[[]analysis.ClauseAnalysis](),
		compare:       idle[[]analysis.ComparisonRecord](),
		svc:           svc,
		session:       sess,
		chat:          chat,
		locale:        locale,
		log:           log,
		notify:        opts.Notify,
		maxUploadSize: opts.MaxUploadSize,
		chatJobs:      make(chan chatJob, opts.ChatQueueSize),
	}
	d.unsubscribe = sess.Subscribe(d.onSessionChange)
	go d.chatWorker()
	return d
}

// Close stops the chat worker and detaches from the session store.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.unsubscribe()
		close(d.chatJobs)
	})
}

// onSessionChange implements the session store's side effect contract:
// a primary change clears the transcript and resets the summary and clauses
// slots; a secondary change resets the compare slot. It runs synchronously
// inside SetDocument/ClearDocument.
func (d *Dispatcher) onSessionChange(c session.Change) {
	d.mu.Lock()
	switch c.Slot {
	case session.SlotPrimary:
		d.summary = idle[Summary]()
		d.clauses = idle[[]analysis.ClauseAnalysis]()
		d.compare = idle[[]analysis.ComparisonRecord]()
		d.inFlight[opSummarize] = false
		d.inFlight[opClauses] = false
		d.inFlight[opCompare] = false
	case session.SlotSecondary:
		d.compare = idle[[]analysis.ComparisonRecord]()
		d.inFlight[opCompare] = false
	}
	d.mu.Unlock()

	if c.Slot == session.SlotPrimary {
		d.chat.Reset()
	}
}

// Summary returns the current summarize result. The value is shared; treat
// it as read-only.
func (d *Dispatcher) Summary() Result[Summary] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.summary
}

// Clauses returns the current clause-analysis result.
func (d *Dispatcher) Clauses() Result[[]analysis.ClauseAnalysis] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clauses
}

// Compare returns the current comparison result.
func (d *Dispatcher) Compare() Result[[]analysis.ComparisonRecord] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.compare
}

// Summarize runs the summarize operation for the current primary document.
// It blocks for the round-trip; a second invocation while one is pending
// returns ErrInFlight without touching state.
func (d *Dispatcher) Summarize(ctx context.Context) error {
	doc := d.session.Document(session.SlotPrimary)
	if doc == nil {
		return d.validationFailure("common.uploadFirst", "no document uploaded")
	}
	language := d.locale.Language()

	d.mu.Lock()
	if d.inFlight[opSummarize] {
		d.mu.Unlock()
		return ErrInFlight
	}
	d.inFlight[opSummarize] = true
	d.summary = pending[Summary]()
	d.mu.Unlock()

	res, err := d.svc.Summarize(ctx, doc.ID, language)
	if err != nil {
		return d.failSingleShot(ctx, opSummarize, doc.ID, normalizeError(err), func(info ErrorInfo) {
			d.summary = failed[Summary](info)
		})
	}
	d.completeSingleShot(opSummarize, doc.ID, func() {
		d.summary = success(Summary{Text: res.Summary, DetectedLanguage: res.DetectedLanguage})
	})
	return nil
}

// AnalyzeClauses runs the clause analysis operation for the current primary
// document. The server's clause order is preserved.
func (d *Dispatcher) AnalyzeClauses(ctx context.Context) error {
	doc := d.session.Document(session.SlotPrimary)
	if doc == nil {
		return d.validationFailure("common.uploadFirst", "no document uploaded")
	}
	language := d.locale.Language()

	d.mu.Lock()
	if d.inFlight[opClauses] {
		d.mu.Unlock()
		return ErrInFlight
	}
	d.inFlight[opClauses] = true
	d.clauses = pending[[]analysis.ClauseAnalysis]()
	d.mu.Unlock()

	res, err := d.svc.AnalyzeClauses(ctx, doc.ID, language)
	if err != nil {
		return d.failSingleShot(ctx, opClauses, doc.ID, normalizeError(err), func(info ErrorInfo) {
			d.clauses = failed[[]analysis.ClauseAnalysis](info)
		})
	}
	d.completeSingleShot(opClauses, doc.ID, func() {
		d.clauses = success(res)
	})
	return nil
}

// CompareDocuments compares the primary document against the secondary one.
func (d *Dispatcher) CompareDocuments(ctx context.Context) error {
	primary := d.session.Document(session.SlotPrimary)
	if primary == nil {
		return d.validationFailure("common.uploadFirst", "no document uploaded")
	}
	secondary := d.session.Document(session.SlotSecondary)
	if secondary == nil {
		return d.validationFailure("compare.needTwo", "no comparison document uploaded")
	}
	language := d.locale.Language()

	d.mu.Lock()
	if d.inFlight[opCompare] {
		d.mu.Unlock()
		return ErrInFlight
	}
	d.inFlight[opCompare] = true
	d.compare = pending[[]analysis.ComparisonRecord]()
	d.mu.Unlock()

	res, err := d.svc.CompareDocuments(ctx, primary.ID, secondary.ID, language)

	// Staleness: both captured ids must still be current.
	if d.superseded(session.SlotPrimary, primary.ID) || d.superseded(session.SlotSecondary, secondary.ID) {
		d.log.Debug("discarding stale compare result", "primary", primary.ID, "secondary", secondary.ID)
		return nil
	}

	if err != nil {
		info := normalizeError(err)
		if info.Kind == KindNotFound {
			// The comparison counterpart is the session-scoped document and
			// the one most likely to have expired; the primary's own
			// operations will surface its expiry independently.
			if clearErr := d.session.ClearDocument(ctx, session.SlotSecondary); clearErr != nil {
				d.log.Warn("failed to clear comparison document", "err", clearErr)
			}
		}
		d.mu.Lock()
		d.inFlight[opCompare] = false
		d.compare = failed[[]analysis.ComparisonRecord](info)
		d.mu.Unlock()
		d.notifyFailure(info)
		return &info
	}

	d.mu.Lock()
	d.inFlight[opCompare] = false
	d.compare = success(res)
	d.mu.Unlock()
	return nil
}

// Upload validates the file locally, sends it to the analysis service, and
// installs the returned document id in the given slot.
func (d *Dispatcher) Upload(ctx context.Context, slot session.Slot, filename string, content []byte) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !extensionAllowed(ext) {
		info := ErrorInfo{Kind: KindUnsupportedFormat, Message: "unsupported file format: " + ext}
		d.notifyKey("upload.unsupported", map[string]string{"formats": strings.Join(SupportedExtensions, ", ")})
		return &info
	}
	if int64(len(content)) > d.maxUploadSize {
		info := ErrorInfo{Kind: KindValidationError, Message: "file too large"}
		d.notifyKey("upload.error", nil)
		return &info
	}

	op := opUploadPrimary
	if slot == session.SlotSecondary {
		op = opUploadSecondary
	}
	d.mu.Lock()
	if d.inFlight[op] {
		d.mu.Unlock()
		return ErrInFlight
	}
	d.inFlight[op] = true
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.inFlight[op] = false
		d.mu.Unlock()
	}()

	res, err := d.svc.Upload(ctx, filename, content)
	if err != nil {
		info := normalizeError(err)
		d.log.Error("upload failed", "filename", filename, "err", err)
		d.notifyKey("upload.error", nil)
		return &info
	}

	ref := session.DocumentRef{ID: res.DocID, DisplayName: filename, Slot: slot}
	if err := d.session.SetDocument(ctx, ref); err != nil {
		info := ErrorInfo{Kind: KindTransportError, Message: err.Error()}
		return &info
	}
	d.log.Info("document uploaded", "document_id", res.DocID, "filename", filename, "detected_language", res.DetectedLanguage)
	d.notifyKey("upload.success", nil)
	return nil
}

// Remove clears the document in slot and its durable entry.
func (d *Dispatcher) Remove(ctx context.Context, slot session.Slot) error {
	if err := d.session.ClearDocument(ctx, slot); err != nil {
		return err
	}
	d.notifyKey("upload.removed", nil)
	return nil
}

// superseded reports whether the captured id no longer matches the current
// document for slot.
func (d *Dispatcher) superseded(slot session.Slot, capturedID string) bool {
	cur := d.session.Document(slot)
	return cur == nil || cur.ID != capturedID
}

// completeSingleShot applies a success mutation unless the session moved on
// while the call was in flight.
func (d *Dispatcher) completeSingleShot(op, capturedID string, apply func()) {
	if d.superseded(session.SlotPrimary, capturedID) {
		d.log.Debug("discarding stale result", "operation", op, "document_id", capturedID)
		return
	}
	d.mu.Lock()
	d.inFlight[op] = false
	apply()
	d.mu.Unlock()
}

// failSingleShot normalizes and applies a failure, handling the NOT_FOUND
// side effect: the offending slot is cleared (which resets dependent state
// through the session observer) before the failure is recorded.
func (d *Dispatcher) failSingleShot(ctx context.Context, op, capturedID string, info ErrorInfo, apply func(ErrorInfo)) error {
	if d.superseded(session.SlotPrimary, capturedID) {
		d.log.Debug("discarding stale failure", "operation", op, "document_id", capturedID)
		return nil
	}
	if info.Kind == KindNotFound {
		if err := d.session.ClearDocument(ctx, session.SlotPrimary); err != nil {
			d.log.Warn("failed to clear document after not-found", "err", err)
		}
	}
	d.mu.Lock()
	d.inFlight[op] = false
	apply(info)
	d.mu.Unlock()
	d.notifyFailure(info)
	return &info
}

func (d *Dispatcher) validationFailure(messageKey, message string) error {
	info := ErrorInfo{Kind: KindValidationError, Message: message}
	d.notifyKey(messageKey, nil)
	return &info
}

// notifyFailure surfaces a failure as a localized, non-blocking
// notification.
func (d *Dispatcher) notifyFailure(info ErrorInfo) {
	switch info.Kind {
	case KindNotFound:
		d.notifyKey("common.notFound", nil)
	default:
		d.notifyKey("common.error", nil)
	}
}

func (d *Dispatcher) notifyKey(key string, params map[string]string) {
	if d.notify == nil {
		return
	}
	d.notify(d.locale.Resolve(key, params))
}

func extensionAllowed(ext string) bool {
	for _, allowed := range SupportedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// normalizeError funnels every raw failure into the error taxonomy. The
// dispatcher is the only translator; nothing above it inspects transport
// errors.
func normalizeError(err error) ErrorInfo {
	var remoteErr *analysis.RemoteError
	switch {
	case errors.Is(err, analysis.ErrDocumentNotFound):
		return ErrorInfo{Kind: KindNotFound, Message: err.Error()}
	case errors.As(err, &remoteErr):
		return ErrorInfo{Kind: KindServerError, Message: remoteErr.Detail}
	default:
		return ErrorInfo{Kind: KindTransportError, Message: err.Error()}
	}
}
