// Package notes provides storage for flashcard notes. A note is a bag of
// named text fields belonging to a deck; stores surface the notes whose
// fields still need generating and persist the generated values back.
package notes

import (
	"context"
	"fmt"
	"time"
)

// Note is a single flashcard note.
type Note struct {
	// ID uniquely identifies the note within its store.
	ID int64

	// Deck is the name of the deck the note belongs to.
	Deck string

	// Fields maps field names to their current content. Empty content
	// means the field has not been filled yet.
	Fields map[string]string

	// ModifiedAt is the last time the note's fields changed.
	ModifiedAt time.Time
}

// Filter narrows a List query.
type Filter struct {
	// Deck restricts results to a single deck. Empty matches all decks.
	Deck string

	// MissingField restricts results to notes where the named field is
	// absent or empty. Empty disables the check.
	MissingField string

	// Limit caps the number of returned notes. Zero means no cap.
	Limit int
}

// Store is the interface note storage backends implement.
type Store interface {
	// List returns notes matching the filter, ordered by ID.
	List(ctx context.Context, filter Filter) ([]*Note, error)

	// Get returns the note with the given ID, or ErrNotFound.
	Get(ctx context.Context, id int64) (*Note, error)

	// UpdateFields merges the given field values into the note and
	// bumps its modification time. Fields not named are left alone.
	UpdateFields(ctx context.Context, id int64, fields map[string]string) error

	// Close releases resources held by the store.
	Close() error
}

// ErrNotFound is returned when a note ID does not exist.
var ErrNotFound = fmt.Errorf("note not found")

// StoreError wraps a storage backend failure with its backend name and
// the operation that failed.
type StoreError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("notes storage error [%s/%s]: %v", e.Backend, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError.
func NewStoreError(backend, op string, err error) *StoreError {
	return &StoreError{Backend: backend, Op: op, Err: err}
}
