package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process. It serves the development driver
// and the tests; patches are atomic under its lock like on the real stores.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]Document
	order []string
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]Document),
		now:  time.Now,
	}
}

// WithClock replaces the clock used for system timestamps.
func (v *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	v.now = now
	return v
}

func (v *MemoryStore) Fetch(ctx context.Context, q Query) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	all := make([]Document, 0, len(v.order))
	for _, id := range v.order {
		all = append(all, v.docs[id].Clone())
	}
	return Select(all, q), nil
}

func (v *MemoryStore) Get(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	doc, ok := v.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return doc.Clone(), nil
}

func (v *MemoryStore) Create(ctx context.Context, doc Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := Normalize(doc)
	if err != nil {
		return nil, err
	}
	if out.ID() == "" {
		out[FieldID] = uuid.NewString()
	}
	if out.Kind() == "" {
		return nil, fmt.Errorf("document %s has no _type", out.ID())
	}
	ts := FormatTime(v.now())
	out[FieldRev] = uuid.NewString()
	out[FieldCreatedAt] = ts
	out[FieldUpdatedAt] = ts

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.docs[out.ID()]; exists {
		return nil, fmt.Errorf("document %s already exists", out.ID())
	}
	v.docs[out.ID()] = out
	v.order = append(v.order, out.ID())
	return out.Clone(), nil
}

func (v *MemoryStore) Patch(ctx context.Context, id string, patch *Patch) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	doc, ok := v.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if patch.IfRevision != "" && patch.IfRevision != doc.Rev() {
		return nil, fmt.Errorf("%w: %s", ErrRevisionMismatch, id)
	}
	out, err := ApplyPatch(doc, patch)
	if err != nil {
		return nil, err
	}
	out[FieldRev] = uuid.NewString()
	out[FieldUpdatedAt] = FormatTime(v.now())
	v.docs[id] = out
	return out.Clone(), nil
}

func (v *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.docs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(v.docs, id)
	for idx, item := range v.order {
		if item == id {
			v.order = append(v.order[:idx], v.order[idx+1:]...)
			break
		}
	}
	return nil
}
