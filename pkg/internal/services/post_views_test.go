package services

import (
	"context"
	"sync"
	"testing"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementViews_CountsEveryCall(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedPost(t, "p1", "a1")

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.IncrementViews(ctx, models.KindPost, "p1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, float64(n), f.get(t, "p1")[models.FieldViews])

	views, err := f.svc.IncrementViews(ctx, models.KindPost, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(n+1), views)
}

func TestIncrementViews_Game(t *testing.T) {
	f := newFixture(t)
	f.seedGame(t, "g1", "a1")

	views, err := f.svc.IncrementViews(context.Background(), models.KindGame, "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)
}

func TestIncrementViews_Rejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedAuthor(t, "a1")

	_, err := f.svc.IncrementViews(ctx, models.KindAuthor, "a1")
	assert.ErrorIs(t, err, ErrUnsupportedKind)

	_, err = f.svc.IncrementViews(ctx, models.KindPost, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.IncrementViews(ctx, models.KindPost, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestIncrementViews_KindMustMatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedAuthor(t, "a1")
	f.seedPost(t, "p1", "a1")
	f.seedGame(t, "g1", "a1")

	cases := []struct{ kind, id string }{
		{models.KindPost, "a1"},
		{models.KindGame, "a1"},
		{models.KindPost, "g1"},
		{models.KindGame, "p1"},
	}
	for _, tc := range cases {
		_, err := f.svc.IncrementViews(ctx, tc.kind, tc.id)
		assert.ErrorIs(t, err, store.ErrNotFound, tc.kind+"/"+tc.id)
	}

	assert.False(t, f.get(t, "a1").Has(models.FieldViews))
	assert.False(t, f.get(t, "p1").Has(models.FieldViews))
	assert.False(t, f.get(t, "g1").Has(models.FieldViews))
	assert.Empty(t, f.store.Mutations())
	assert.Empty(t, f.bus.Topics())
}

func TestBackfillViews_Converges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedGame(t, "g1", "a1")
	f.seedGame(t, "g2", "a1")
	f.seedGame(t, "g3", "a1")
	f.seed(t, store.Document{store.FieldID: "g4", store.FieldType: models.KindGame, "views": 7})
	f.seedPost(t, "p1", "a1")

	count, err := f.svc.BackfillViews(ctx, models.KindGame)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	for _, id := range []string{"g1", "g2", "g3"} {
		assert.Equal(t, float64(0), f.get(t, id)[models.FieldViews])
	}
	assert.Equal(t, float64(7), f.get(t, "g4")[models.FieldViews])
	assert.False(t, f.get(t, "p1").Has(models.FieldViews))

	count, err = f.svc.BackfillViews(ctx, models.KindGame)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBackfillViews_UnsupportedKind(t *testing.T) {
	_, err := newFixture(t).svc.BackfillViews(context.Background(), models.KindComment)
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}
