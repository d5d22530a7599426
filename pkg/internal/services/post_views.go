package services

import (
	"context"
	"fmt"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/events"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var viewKinds = []string{models.KindPost, models.KindGame}

// IncrementViews adds one view and returns the new count. Every call counts,
// there is no per-visitor dedup. Only posts and games carry a counter; the
// kind is checked first and _type never changes after create.
func (v *Service) IncrementViews(ctx context.Context, kind, id string) (int64, error) {
	if !lo.Contains(viewKinds, kind) {
		return 0, fmt.Errorf("%w: %s has no views", ErrUnsupportedKind, kind)
	}
	if len(id) == 0 {
		return 0, fmt.Errorf("%w: missing %s id", ErrInvalidInput, kind)
	}

	if doc, err := v.store.Get(ctx, id); err != nil {
		return 0, err
	} else if doc.Kind() != kind {
		return 0, fmt.Errorf("%w: %s is not a %s", store.ErrNotFound, id, kind)
	}

	out, err := v.store.Patch(ctx, id, store.NewPatch().
		SetFieldIfMissing(models.FieldViews, 0).
		IncField(models.FieldViews, 1))
	if err != nil {
		return 0, err
	}

	v.publish(events.Engagement{
		Topic:     events.TopicViewsIncremented,
		Kind:      kind,
		SubjectID: id,
		Active:    true,
	})
	views, _ := out[models.FieldViews].(float64)
	return int64(views), nil
}

// BackfillViews sets views to zero on every document of the kind lacking it.
func (v *Service) BackfillViews(ctx context.Context, kind string) (int, error) {
	if !lo.Contains(viewKinds, kind) {
		return 0, fmt.Errorf("%w: %s has no views", ErrUnsupportedKind, kind)
	}
	return v.backfill(ctx, kind, models.FieldViews, 0)
}

// backfill only touches documents still missing the field, so an interrupted
// run is resumed by running it again.
func (v *Service) backfill(ctx context.Context, kind, field string, zero any) (int, error) {
	log.Info().Str("kind", kind).Str("field", field).Msg("Backfilling documents...")

	docs, err := v.store.Fetch(ctx, store.Query{
		Kind:    kind,
		Filters: []store.Filter{store.Undefined(field)},
	})
	if err != nil {
		return 0, fmt.Errorf("unable to fetch %s without %s: %w", kind, field, err)
	}

	var count int
	for _, doc := range docs {
		if _, err := v.store.Patch(ctx, doc.ID(), store.NewPatch().SetFieldIfMissing(field, zero)); err != nil {
			return count, fmt.Errorf("unable to backfill %s on %s: %w", field, doc.ID(), err)
		}
		count++
	}

	log.Info().Str("kind", kind).Str("field", field).Int("count", count).Msg("Backfilled documents.")
	return count, nil
}
