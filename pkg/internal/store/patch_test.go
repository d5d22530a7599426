package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPatch_SetIfMissingThenInc(t *testing.T) {
	doc := Document{FieldID: "p1", FieldType: "post"}

	out, err := ApplyPatch(doc, NewPatch().SetFieldIfMissing("views", 0).IncField("views", 1))
	require.NoError(t, err)
	assert.Equal(t, float64(1), out["views"])

	out, err = ApplyPatch(out, NewPatch().SetFieldIfMissing("views", 0).IncField("views", 1))
	require.NoError(t, err)
	assert.Equal(t, float64(2), out["views"])
}

func TestApplyPatch_DoesNotMutateInput(t *testing.T) {
	doc := Document{FieldID: "p1", "views": float64(3)}

	_, err := ApplyPatch(doc, NewPatch().IncField("views", 1))
	require.NoError(t, err)
	assert.Equal(t, float64(3), doc["views"])
}

func TestApplyPatch_IncOnMissingField(t *testing.T) {
	_, err := ApplyPatch(Document{FieldID: "p1"}, NewPatch().IncField("views", 1))
	assert.ErrorIs(t, err, ErrInvalidPatch)
}

func TestApplyPatch_AppendNeedsArray(t *testing.T) {
	entry := map[string]any{FieldKey: "like_a1", FieldType: "reference", FieldRef: "a1"}

	_, err := ApplyPatch(Document{FieldID: "p1"}, NewPatch().AppendItems("likes", entry))
	assert.ErrorIs(t, err, ErrInvalidPatch)

	out, err := ApplyPatch(Document{FieldID: "p1"}, NewPatch().
		SetFieldIfMissing("likes", []any{}).
		AppendItems("likes", entry))
	require.NoError(t, err)
	require.Len(t, out.Array("likes"), 1)
	assert.Equal(t, "a1", out.Array("likes")[0][FieldRef])
}

func TestApplyPatch_UnsetByRef(t *testing.T) {
	doc := Document{
		FieldID: "p1",
		"likes": []any{
			map[string]any{FieldKey: "like_a1", FieldRef: "a1"},
			map[string]any{FieldKey: "like_a2", FieldRef: "a2"},
			map[string]any{FieldKey: "like_a1_dup", FieldRef: "a1"},
		},
	}

	out, err := ApplyPatch(doc, NewPatch().UnsetRef("likes", "a1"))
	require.NoError(t, err)
	require.Len(t, out.Array("likes"), 1)
	assert.Equal(t, "a2", out.Array("likes")[0][FieldRef])
}

func TestApplyPatch_UnsetByRefOnMissingFieldIsNoop(t *testing.T) {
	out, err := ApplyPatch(Document{FieldID: "p1"}, NewPatch().UnsetRef("likes", "a1"))
	require.NoError(t, err)
	assert.False(t, out.Has("likes"))
}

func TestApplyPatch_UnsetField(t *testing.T) {
	out, err := ApplyPatch(Document{FieldID: "p1", "bio": "hello"}, NewPatch().UnsetField("bio"))
	require.NoError(t, err)
	assert.False(t, out.Has("bio"))
}

func TestApplyPatch_SetBeforeSetIfMissing(t *testing.T) {
	out, err := ApplyPatch(Document{FieldID: "p1"}, NewPatch().
		SetField("views", 5).
		SetFieldIfMissing("views", 0))
	require.NoError(t, err)
	assert.Equal(t, float64(5), out["views"])
}

func TestPatch_IsEmpty(t *testing.T) {
	assert.True(t, NewPatch().IfRevisionID("r1").IsEmpty())
	assert.False(t, NewPatch().UnsetField("x").IsEmpty())
}
