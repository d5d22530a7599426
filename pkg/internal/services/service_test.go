package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/events"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/stretchr/testify/require"
)

type detectorFunc func(string) string

func (f detectorFunc) Detect(text string) string { return f(text) }

// recordingStore counts mutations and can fail them on demand.
type recordingStore struct {
	store.DocumentStore

	mu        sync.Mutex
	mutations []string

	failPatch  func(id string, p *store.Patch) error
	failDelete func(id string) error
}

func (v *recordingStore) record(op string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mutations = append(v.mutations, op)
}

func (v *recordingStore) Mutations() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.mutations...)
}

func (v *recordingStore) Create(ctx context.Context, doc store.Document) (store.Document, error) {
	v.record("create")
	return v.DocumentStore.Create(ctx, doc)
}

func (v *recordingStore) Patch(ctx context.Context, id string, p *store.Patch) (store.Document, error) {
	v.record("patch:" + id)
	if v.failPatch != nil {
		if err := v.failPatch(id, p); err != nil {
			return nil, err
		}
	}
	return v.DocumentStore.Patch(ctx, id, p)
}

func (v *recordingStore) Delete(ctx context.Context, id string) error {
	v.record("delete:" + id)
	if v.failDelete != nil {
		if err := v.failDelete(id); err != nil {
			return err
		}
	}
	return v.DocumentStore.Delete(ctx, id)
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Engagement
}

func (v *recordingBus) Publish(evt events.Engagement) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, evt)
	return nil
}

func (v *recordingBus) Topics() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, 0, len(v.events))
	for _, evt := range v.events {
		out = append(out, evt.Topic)
	}
	return out
}

type fixture struct {
	svc    *Service
	memory *store.MemoryStore
	store  *recordingStore
	bus    *recordingBus
}

func newFixture(t *testing.T, opts ...func(*Options)) *fixture {
	t.Helper()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	memory := store.NewMemoryStore().WithClock(clock)
	recorder := &recordingStore{DocumentStore: memory}
	bus := &recordingBus{}

	options := Options{
		Events:   bus,
		Detector: detectorFunc(func(string) string { return "en" }),
		Clock:    clock,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &fixture{
		svc:    New(recorder, options),
		memory: memory,
		store:  recorder,
		bus:    bus,
	}
}

func (f *fixture) seed(t *testing.T, doc store.Document) store.Document {
	t.Helper()
	out, err := f.memory.Create(context.Background(), doc)
	require.NoError(t, err)
	return out
}

func (f *fixture) get(t *testing.T, id string) store.Document {
	t.Helper()
	out, err := f.memory.Get(context.Background(), id)
	require.NoError(t, err)
	return out
}

func (f *fixture) seedAuthor(t *testing.T, id string) *models.Actor {
	t.Helper()
	f.seed(t, store.Document{
		store.FieldID:   id,
		store.FieldType: models.KindAuthor,
		"id":            "acct-" + id,
		"name":          "Author " + id,
	})
	return &models.Actor{AuthorID: id, AccountID: "acct-" + id}
}

func (f *fixture) seedPost(t *testing.T, id, authorID string) {
	t.Helper()
	f.seed(t, store.Document{
		store.FieldID:   id,
		store.FieldType: models.KindPost,
		"title":         "Post " + id,
		"author":        models.NewReference(authorID),
	})
}

func (f *fixture) seedGame(t *testing.T, id, authorID string) {
	t.Helper()
	f.seed(t, store.Document{
		store.FieldID:   id,
		store.FieldType: models.KindGame,
		"title":         "Game " + id,
		"category":      "Puzzle",
		"author":        models.NewReference(authorID),
	})
}
