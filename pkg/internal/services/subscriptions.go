package services

import (
	"context"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/events"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
)

func (v *Service) ToggleFollow(ctx context.Context, actor *models.Actor, targetAuthorID string) (bool, error) {
	if actor == nil {
		return false, ErrNotSignedIn
	}
	if targetAuthorID == actor.AuthorID {
		return false, ErrSelfFollow
	}
	return v.toggle(ctx, actor, toggleTarget{
		kind:   models.KindAuthor,
		id:     targetAuthorID,
		field:  models.FieldFollowers,
		prefix: models.KeyPrefixFollower,
		topic:  events.TopicFollowToggled,
	})
}

func (v *Service) ToggleGameFollow(ctx context.Context, actor *models.Actor, gameID string) (bool, error) {
	return v.toggle(ctx, actor, toggleTarget{
		kind:   models.KindGame,
		id:     gameID,
		field:  models.FieldFollowers,
		prefix: models.KeyPrefixFollower,
		topic:  events.TopicGameFollowToggled,
	})
}
