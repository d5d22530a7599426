package services

import (
	"context"
	"errors"
	"fmt"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/events"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/locks"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type toggleTarget struct {
	kind   string
	id     string
	field  string
	prefix string
	topic  string
}

// HasReference reports whether any entry of the array field points at ref.
func HasReference(doc store.Document, field, ref string) bool {
	return lo.SomeBy(doc.Array(field), func(item map[string]any) bool {
		return item[store.FieldRef] == ref
	})
}

// toggle flips the membership of the actor in the target's array field and
// returns the membership after the flip.
func (v *Service) toggle(ctx context.Context, actor *models.Actor, target toggleTarget) (bool, error) {
	if actor == nil {
		return false, ErrNotSignedIn
	}
	if len(target.id) == 0 {
		return false, fmt.Errorf("%w: missing %s id", ErrInvalidInput, target.kind)
	}

	unlock, err := v.locker.Lock(ctx, locks.Key(target.id, actor.AuthorID))
	if err != nil {
		return false, fmt.Errorf("unable to lock %s: %v", target.id, err)
	}
	defer unlock()

	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		doc, err := v.store.Get(ctx, target.id)
		if err != nil {
			return false, err
		}
		if doc.Kind() != target.kind {
			return false, fmt.Errorf("%w: %s is not a %s", store.ErrNotFound, target.id, target.kind)
		}

		present := HasReference(doc, target.field, actor.AuthorID)
		patch := store.NewPatch().
			IfRevisionID(doc.Rev()).
			SetFieldIfMissing(target.field, []any{})
		if present {
			patch.UnsetRef(target.field, actor.AuthorID)
		} else {
			patch.AppendItems(target.field, models.NewArrayReference(target.prefix, actor.AuthorID))
		}

		if _, err := v.store.Patch(ctx, target.id, patch); err != nil {
			if errors.Is(err, store.ErrRevisionMismatch) {
				log.Debug().Str("id", target.id).Int("attempt", attempt).Msg("Document changed during toggle, retrying...")
				continue
			}
			return false, err
		}

		v.publish(events.Engagement{
			Topic:     target.topic,
			Kind:      target.kind,
			SubjectID: target.id,
			ActorID:   actor.AuthorID,
			Active:    !present,
		})
		return !present, nil
	}

	return false, fmt.Errorf("%w: %s", ErrContention, target.id)
}

// ToggleLike likes the post or takes the like back. Authors may like their
// own posts.
func (v *Service) ToggleLike(ctx context.Context, actor *models.Actor, postID string) (bool, error) {
	return v.toggle(ctx, actor, toggleTarget{
		kind:   models.KindPost,
		id:     postID,
		field:  models.FieldLikes,
		prefix: models.KeyPrefixLike,
		topic:  events.TopicLikeToggled,
	})
}

func (v *Service) publish(evt events.Engagement) {
	if evt.At.IsZero() {
		evt.At = v.now()
	}
	if err := v.events.Publish(evt); err != nil {
		log.Warn().Err(err).Str("topic", evt.Topic).Msg("An error occurred when publishing engagement event...")
	}
}
