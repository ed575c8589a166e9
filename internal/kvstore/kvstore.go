package kvstore

import (
	"context"
)

// Store is the durable client-side key-value store. It survives restarts
// within one profile and holds the current document identity and language
// selection between sessions.
type Store interface {
	// Get retrieves a value by key. The second return is false when the key
	// is absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close closes the store connection.
	Close() error
}

// Well-known keys shared by the session store and the locale resolver.
const (
	KeyDocumentID   = "legalease_doc_id"
	KeyDocumentName = "legalease_doc_name"
	KeyLanguage     = "legalease_language"
)
