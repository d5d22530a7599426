package services

import (
	"context"
	"fmt"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type PostInput struct {
	Title   string
	Content string
	Image   string
	GameID  string
}

func (v *Service) CreatePost(ctx context.Context, actor *models.Actor, input PostInput) (models.Post, error) {
	var post models.Post
	if actor == nil {
		return post, ErrNotSignedIn
	}
	if _, err := v.GetGame(ctx, input.GameID); err != nil {
		return post, err
	}
	if err := copier.Copy(&post, &input); err != nil {
		return post, fmt.Errorf("unable to map post input: %v", err)
	}

	current := slug.Make(input.Title)
	if len(current) == 0 {
		return post, fmt.Errorf("%w: title must contain letters or digits", ErrInvalidInput)
	}
	post.Type = models.KindPost
	post.Slug = models.NewSlug(current)
	post.Language = v.detector.Detect(input.Title + "\n" + input.Content)
	post.Views = lo.ToPtr[int64](0)
	post.Comments = []models.Reference{}
	post.Likes = []models.Reference{}
	post.Author = models.NewReference(actor.AuthorID)
	post.Game = models.NewReference(input.GameID)
	post.PostedAt = v.now()

	doc, err := v.create(ctx, post)
	if err != nil {
		return post, fmt.Errorf("unable to create post: %w", err)
	}
	log.Debug().Str("id", doc.ID()).Str("language", post.Language).Msg("Created post.")

	err = doc.Decode(&post)
	return post, err
}

func (v *Service) GetPost(ctx context.Context, id string) (models.Post, error) {
	var post models.Post
	err := v.getAs(ctx, models.KindPost, id, &post)
	return post, err
}

// ListPosts lists posts newest first, only those of the game when gameID is
// not empty.
func (v *Service) ListPosts(ctx context.Context, gameID string) ([]models.Post, error) {
	q := store.Query{Kind: models.KindPost, Newest: true}
	if len(gameID) > 0 {
		q.Filters = []store.Filter{store.RefEq("game", gameID)}
	}
	docs, err := v.store.Fetch(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("unable to list posts: %w", err)
	}
	return decodeAll[models.Post](docs)
}
