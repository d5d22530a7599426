package services

import (
	"context"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePostInput(gameID string) PostInput {
	return PostInput{
		Title:   "Devlog #1",
		Content: "This week I rewrote the cave generator from scratch.",
		GameID:  gameID,
	}
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	actor := f.seedAuthor(t, "a1")
	f.seedGame(t, "g1", "a1")

	post, err := f.svc.CreatePost(ctx, actor, samplePostInput("g1"))
	require.NoError(t, err)
	assert.Equal(t, "Devlog #1", post.Title)
	assert.Equal(t, "devlog-1", post.Slug.Current)
	assert.Equal(t, "en", post.Language)
	assert.Equal(t, "g1", post.Game.Ref)
	assert.Equal(t, "a1", post.Author.Ref)
	assert.Empty(t, post.Comments)
	assert.Empty(t, post.Likes)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), post.PostedAt.UTC())

	got, err := f.svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
}

func TestCreatePost_GameMustExist(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	actor := f.seedAuthor(t, "a1")

	_, err := f.svc.CreatePost(ctx, actor, samplePostInput("missing"))
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = f.svc.CreatePost(ctx, actor, samplePostInput(""))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.CreatePost(ctx, nil, samplePostInput("missing"))
	assert.ErrorIs(t, err, ErrNotSignedIn)

	assert.Empty(t, f.store.Mutations())
}

func TestListPosts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	actor := f.seedAuthor(t, "a1")
	f.seedGame(t, "g1", "a1")
	f.seedGame(t, "g2", "a1")

	first, err := f.svc.CreatePost(ctx, actor, samplePostInput("g1"))
	require.NoError(t, err)
	second, err := f.svc.CreatePost(ctx, actor, samplePostInput("g2"))
	require.NoError(t, err)

	all, err := f.svc.ListPosts(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	scoped, err := f.svc.ListPosts(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, first.ID, scoped[0].ID)
}
