package services

import (
	"context"
	"testing"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackfillFollowers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedAuthor(t, "a1")
	f.seedAuthor(t, "a2")
	f.seed(t, store.Document{store.FieldID: "a3", store.FieldType: models.KindAuthor, "followers": []any{}})

	count, err := f.svc.BackfillFollowers(ctx, models.KindAuthor)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []any{}, f.get(t, "a1")[models.FieldFollowers])

	count, err = f.svc.BackfillFollowers(ctx, models.KindAuthor)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.svc.BackfillFollowers(ctx, models.KindPost)
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestRepairArray(t *testing.T) {
	in := []any{
		map[string]any{"_ref": "c-1"},
		map[string]any{"_key": "custom", "_ref": "c-2", "_type": "reference"},
		map[string]any{"_ref": "c-1", "_type": "reference"},
	}

	out, changed := RepairArray(models.FieldComments, in)
	assert.True(t, changed)
	want := []any{
		map[string]any{"_key": "comment_c1", "_ref": "c-1", "_type": "reference"},
		map[string]any{"_key": "custom", "_ref": "c-2", "_type": "reference"},
		map[string]any{"_key": "comment_c1", "_ref": "c-1", "_type": "reference"},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("RepairArray() mismatch (-want +got):\n%s", diff)
	}

	_, changed = RepairArray(models.FieldComments, out)
	assert.False(t, changed)
}

func TestRepairArray_DeduplicatesSets(t *testing.T) {
	in := []any{
		map[string]any{"_key": "like_a", "_ref": "a", "_type": "reference"},
		map[string]any{"_ref": "a"},
		map[string]any{"_ref": "b"},
	}

	out, changed := RepairArray(models.FieldLikes, in)
	assert.True(t, changed)
	want := []any{
		map[string]any{"_key": "like_a", "_ref": "a", "_type": "reference"},
		map[string]any{"_key": "like_b", "_ref": "b", "_type": "reference"},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("RepairArray() mismatch (-want +got):\n%s", diff)
	}
}

func TestRepairMissingKeys_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, store.Document{
		store.FieldID:   "p1",
		store.FieldType: models.KindPost,
		"comments":      []any{map[string]any{"_ref": "c.1", "_type": "reference"}},
		"likes":         []any{map[string]any{"_key": "like_a1", "_ref": "a1", "_type": "reference"}},
	})
	f.seed(t, store.Document{
		store.FieldID:   "p2",
		store.FieldType: models.KindPost,
		"likes":         []any{map[string]any{"_key": "like_a1", "_ref": "a1", "_type": "reference"}},
	})
	f.seed(t, store.Document{
		store.FieldID:   "a2",
		store.FieldType: models.KindAuthor,
		"followers":     []any{map[string]any{"_ref": "a1"}},
	})
	f.seed(t, store.Document{store.FieldID: "p3", store.FieldType: models.KindPost})

	count, err := f.svc.RepairMissingKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	comments := f.get(t, "p1").Array(models.FieldComments)
	assert.Equal(t, "comment_c1", comments[0]["_key"])
	followers := f.get(t, "a2").Array(models.FieldFollowers)
	assert.Equal(t, "follower_a1", followers[0]["_key"])
	assert.Equal(t, "reference", followers[0]["_type"])

	before := f.store.Mutations()
	snapshot := f.get(t, "p1")

	count, err = f.svc.RepairMissingKeys(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, before, f.store.Mutations())
	assert.Equal(t, snapshot, f.get(t, "p1"))
}
