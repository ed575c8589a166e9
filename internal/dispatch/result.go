package dispatch

// Status is the lifecycle of a single-shot operation result.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// ErrorKind classifies a failed operation. Callers branch on kinds, never on
// transport-level detail.
type ErrorKind string

const (
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindNotFound          ErrorKind = "not_found"
	KindServerError       ErrorKind = "server_error"
	KindTransportError    ErrorKind = "transport_error"
	KindValidationError   ErrorKind = "validation_error"
)

// ErrorInfo is the normalized failure for one invocation.
type ErrorInfo struct {
	Kind    ErrorKind
	Message string
}

func (e *ErrorInfo) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Result is the outcome container for summarize, clauses, and compare.
// Exactly one of Value and Err is set outside Idle/Pending.
type Result[T any] struct {
	Status Status
	Value  *T
	Err    *ErrorInfo
}

func idle[T any]() Result[T] {
	return Result[T]{Status: StatusIdle}
}

func pending[T any]() Result[T] {
	return Result[T]{Status: StatusPending}
}

func success[T any](value T) Result[T] {
	return Result[T]{Status: StatusSuccess, Value: &value}
}

func failed[T any](info ErrorInfo) Result[T] {
	return Result[T]{Status: StatusFailed, Err: &info}
}
