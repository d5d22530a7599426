package services

import (
	"context"
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
	"github.com/samber/lo"
)

type GameInput struct {
	Title       string
	Description string
	Category    string
	Image       string
	GameURL     string
}

func (v *Service) CreateGame(ctx context.Context, actor *models.Actor, input GameInput) (models.Game, error) {
	var game models.Game
	if actor == nil {
		return game, ErrNotSignedIn
	}
	if !lo.Contains(models.GameCategories, input.Category) {
		return game, fmt.Errorf("%w: unknown category %s", ErrInvalidInput, input.Category)
	}
	if err := copier.Copy(&game, &input); err != nil {
		return game, fmt.Errorf("unable to map game input: %v", err)
	}

	current := slug.Make(input.Title)
	if len(current) == 0 {
		return game, fmt.Errorf("%w: title must contain letters or digits", ErrInvalidInput)
	}
	game.Type = models.KindGame
	game.Slug = models.NewSlug(current)
	game.Views = lo.ToPtr[int64](0)
	game.Followers = []models.Reference{}
	game.Author = models.NewReference(actor.AuthorID)

	doc, err := v.create(ctx, game)
	if err != nil {
		return game, fmt.Errorf("unable to create game: %w", err)
	}
	err = doc.Decode(&game)
	return game, err
}

func (v *Service) GetGame(ctx context.Context, id string) (models.Game, error) {
	var game models.Game
	err := v.getAs(ctx, models.KindGame, id, &game)
	return game, err
}

// ListGames lists games newest first, optionally matching the search text
// against title and category.
func (v *Service) ListGames(ctx context.Context, search string) ([]models.Game, error) {
	q := store.Query{Kind: models.KindGame, Newest: true}
	if search = strings.TrimSpace(search); len(search) > 0 {
		q.Any = []store.Filter{
			store.Match("title", search),
			store.Match("category", search),
		}
	}
	docs, err := v.store.Fetch(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("unable to list games: %w", err)
	}
	return decodeAll[models.Game](docs)
}

// ListUserGames lists the games of the actor, newest first.
func (v *Service) ListUserGames(ctx context.Context, actor *models.Actor) ([]models.Game, error) {
	if actor == nil {
		return nil, ErrNotSignedIn
	}
	docs, err := v.store.Fetch(ctx, store.Query{
		Kind:    models.KindGame,
		Filters: []store.Filter{store.RefEq("author", actor.AuthorID)},
		Newest:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list user games: %w", err)
	}
	return decodeAll[models.Game](docs)
}

func (v *Service) create(ctx context.Context, model any) (store.Document, error) {
	doc, err := store.Normalize(model)
	if err != nil {
		return nil, err
	}
	return v.store.Create(ctx, doc)
}

func (v *Service) getAs(ctx context.Context, kind, id string, out any) error {
	if len(id) == 0 {
		return fmt.Errorf("%w: missing %s id", ErrInvalidInput, kind)
	}
	doc, err := v.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if doc.Kind() != kind {
		return fmt.Errorf("%w: %s is not a %s", store.ErrNotFound, id, kind)
	}
	return doc.Decode(out)
}

func decodeAll[T any](docs []store.Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := doc.Decode(&item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
