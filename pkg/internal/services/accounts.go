package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	cachestore "github.com/eko/gocache/lib/v4/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func authorCacheKey(accountID string) string {
	return fmt.Sprintf("author#%s", accountID)
}

// EnsureAuthor returns the author of the signed-in account, creating it on
// the first sign-in.
func (v *Service) EnsureAuthor(ctx context.Context, identity models.Identity) (models.Author, error) {
	var author models.Author
	if len(identity.AccountID) == 0 {
		return author, fmt.Errorf("%w: identity has no account id", ErrInvalidInput)
	}

	var marshal *marshaler.Marshaler
	if v.cache != nil {
		marshal = marshaler.New(cache.New[any](v.cache))
		if cached, err := marshal.Get(ctx, authorCacheKey(identity.AccountID), new(models.Author)); err == nil {
			return *cached.(*models.Author), nil
		}
	}

	doc, err := v.findAuthor(ctx, identity.AccountID)
	if errors.Is(err, store.ErrNotFound) {
		doc, err = v.create(ctx, models.Author{
			BaseDocument: models.BaseDocument{ID: AuthorID(identity.AccountID), Type: models.KindAuthor},
			AccountID:    identity.AccountID,
			Name:         identity.Name,
			Username:     identity.Username,
			Email:        identity.Email,
			Image:        identity.Avatar,
			Bio:          identity.Bio,
			Followers:    []models.Reference{},
		})
		if err != nil {
			// A concurrent first sign-in won the create.
			if existing, gerr := v.findAuthor(ctx, identity.AccountID); gerr == nil {
				doc, err = existing, nil
			} else {
				return author, fmt.Errorf("unable to create author: %w", err)
			}
		} else {
			log.Info().Str("account", identity.AccountID).Str("id", doc.ID()).Msg("Created author for new account.")
		}
	} else if err != nil {
		return author, fmt.Errorf("unable to find author: %w", err)
	}

	if err := doc.Decode(&author); err != nil {
		return author, err
	}
	if marshal != nil {
		_ = marshal.Set(
			ctx,
			authorCacheKey(identity.AccountID),
			author,
			cachestore.WithExpiration(10*time.Minute),
			cachestore.WithTags([]string{"author", authorCacheKey(identity.AccountID)}),
		)
	}
	return author, nil
}

// AuthorID is the document id of the author owning an account. It is derived
// from the account id so racing creates collide on the same document.
func AuthorID(accountID string) string {
	return "author-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(accountID)).String()
}

// findAuthor reads by the derived id through the live API, then falls back to
// the account id field for authors created before ids were derived.
func (v *Service) findAuthor(ctx context.Context, accountID string) (store.Document, error) {
	doc, err := v.store.Get(ctx, AuthorID(accountID))
	if err == nil && doc.Kind() == models.KindAuthor {
		return doc, nil
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	docs, err := v.store.Fetch(ctx, store.Query{
		Kind:    models.KindAuthor,
		Filters: []store.Filter{store.Eq("id", accountID)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	} else if len(docs) == 0 {
		return nil, store.ErrNotFound
	}
	return docs[0], nil
}

// ResolveActor turns a signed-in identity into the actor of mutations.
func (v *Service) ResolveActor(ctx context.Context, identity models.Identity) (*models.Actor, error) {
	author, err := v.EnsureAuthor(ctx, identity)
	if err != nil {
		return nil, err
	}
	return &models.Actor{
		AuthorID:  author.ID,
		AccountID: author.AccountID,
		Name:      author.Name,
		Username:  author.Username,
	}, nil
}
