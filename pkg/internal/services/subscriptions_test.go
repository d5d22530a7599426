package services

import (
	"context"
	"testing"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/events"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollow_SelfFollowRejected(t *testing.T) {
	f := newFixture(t)
	actor := f.seedAuthor(t, "a1")

	_, err := f.svc.ToggleFollow(context.Background(), actor, "a1")
	assert.ErrorIs(t, err, ErrSelfFollow)
	assert.Empty(t, f.store.Mutations())
	assert.Empty(t, f.bus.Topics())
}

func TestToggleFollow_Author(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	actor := f.seedAuthor(t, "a1")
	f.seedAuthor(t, "a2")

	following, err := f.svc.ToggleFollow(ctx, actor, "a2")
	require.NoError(t, err)
	assert.True(t, following)

	followers := f.get(t, "a2").Array(models.FieldFollowers)
	require.Len(t, followers, 1)
	assert.Equal(t, "follower_a1", followers[0]["_key"])
	assert.Equal(t, "a1", followers[0]["_ref"])

	following, err = f.svc.ToggleFollow(ctx, actor, "a2")
	require.NoError(t, err)
	assert.False(t, following)
	assert.Empty(t, f.get(t, "a2").Array(models.FieldFollowers))
}

func TestToggleFollow_TargetMustBeAuthor(t *testing.T) {
	f := newFixture(t)
	actor := f.seedAuthor(t, "a1")
	f.seedPost(t, "p1", "a1")

	_, err := f.svc.ToggleFollow(context.Background(), actor, "p1")
	assert.Error(t, err)
	assert.Empty(t, f.store.Mutations())
}

func TestToggleGameFollow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedAuthor(t, "owner")
	actor := f.seedAuthor(t, "fan")
	f.seedGame(t, "g1", "owner")

	following, err := f.svc.ToggleGameFollow(ctx, actor, "g1")
	require.NoError(t, err)
	assert.True(t, following)

	followers := f.get(t, "g1").Array(models.FieldFollowers)
	require.Len(t, followers, 1)
	assert.Equal(t, "follower_fan", followers[0]["_key"])

	following, err = f.svc.ToggleGameFollow(ctx, actor, "g1")
	require.NoError(t, err)
	assert.False(t, following)

	assert.Equal(t, []string{events.TopicGameFollowToggled, events.TopicGameFollowToggled}, f.bus.Topics())
}
