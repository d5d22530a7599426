package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("document not found")
	ErrRevisionMismatch = errors.New("document revision mismatch")
	ErrInvalidPatch     = errors.New("invalid patch")
)

// TimeLayout is the layout of the _createdAt and _updatedAt system fields.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// DocumentStore is the external content database holding every document.
// A single Patch call is applied atomically; nothing spans multiple calls.
type DocumentStore interface {
	Fetch(ctx context.Context, q Query) ([]Document, error)
	Get(ctx context.Context, id string) (Document, error)
	Create(ctx context.Context, doc Document) (Document, error)
	Patch(ctx context.Context, id string, patch *Patch) (Document, error)
	Delete(ctx context.Context, id string) error
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
