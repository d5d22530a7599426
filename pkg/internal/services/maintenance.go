package services

import (
	"context"
	"errors"
	"fmt"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var followerKinds = []string{models.KindAuthor, models.KindGame}

// BackfillFollowers sets followers to an empty array on every document of the
// kind lacking it.
func (v *Service) BackfillFollowers(ctx context.Context, kind string) (int, error) {
	if !lo.Contains(followerKinds, kind) {
		return 0, fmt.Errorf("%w: %s has no followers", ErrUnsupportedKind, kind)
	}
	return v.backfill(ctx, kind, models.FieldFollowers, []any{})
}

// Reference-array fields per kind covered by the key repair.
var repairedFields = []struct {
	kind   string
	fields []string
}{
	{models.KindPost, []string{models.FieldComments, models.FieldLikes}},
	{models.KindGame, []string{models.FieldFollowers}},
	{models.KindAuthor, []string{models.FieldFollowers}},
}

// RepairMissingKeys gives every keyless array entry its derived key and the
// reference type, and drops duplicate entries from set-like arrays. Each
// affected document is fixed with a single patch replacing the whole arrays.
// It returns the number of documents repaired; a second run repairs none.
func (v *Service) RepairMissingKeys(ctx context.Context) (int, error) {
	var count int
	for _, target := range repairedFields {
		docs, err := v.store.Fetch(ctx, store.Query{
			Kind: target.kind,
			Any: lo.Map(target.fields, func(field string, _ int) store.Filter {
				return store.NonEmpty(field)
			}),
		})
		if err != nil {
			return count, fmt.Errorf("unable to fetch %s for key repair: %w", target.kind, err)
		}

		for _, doc := range docs {
			patch := store.NewPatch().IfRevisionID(doc.Rev())
			for _, field := range target.fields {
				if repaired, changed := RepairArray(field, doc[field]); changed {
					patch.SetField(field, repaired)
				}
			}
			if patch.IsEmpty() {
				continue
			}

			if _, err := v.store.Patch(ctx, doc.ID(), patch); err != nil {
				if errors.Is(err, store.ErrRevisionMismatch) {
					log.Warn().Str("id", doc.ID()).Msg("Document changed during key repair, it will be repaired next run...")
					continue
				}
				return count, fmt.Errorf("unable to repair keys on %s: %w", doc.ID(), err)
			}
			count++
		}
	}

	log.Info().Int("count", count).Msg("Repaired missing array keys.")
	return count, nil
}

// RepairArray returns the array with keys and reference types filled in, and
// whether anything changed. Entries already keyed are passed through.
func RepairArray(field string, raw any) ([]any, bool) {
	entries, ok := raw.([]any)
	if !ok {
		return nil, false
	}

	prefix := models.ArrayKeyPrefixes[field]
	unique := field != models.FieldComments
	seen := make(map[string]bool, len(entries))

	var changed bool
	out := make([]any, 0, len(entries))
	for _, item := range entries {
		entry, ok := item.(map[string]any)
		if !ok {
			out = append(out, item)
			continue
		}
		ref, _ := entry[store.FieldRef].(string)
		if unique && len(ref) > 0 {
			if seen[ref] {
				changed = true
				continue
			}
			seen[ref] = true
		}

		fixed := entry
		if key, _ := entry[store.FieldKey].(string); len(key) == 0 && len(ref) > 0 {
			fixed = lo.Assign(entry, map[string]any{store.FieldKey: models.ArrayKey(prefix, ref)})
			changed = true
		}
		if kind, _ := entry[store.FieldType].(string); len(kind) == 0 {
			fixed = lo.Assign(fixed, map[string]any{store.FieldType: models.ReferenceType})
			changed = true
		}
		out = append(out, fixed)
	}
	return out, changed
}

// RepairDanglingReferences removes comment entries whose comment document no
// longer exists, which a failed unlink after a delete leaves behind.
func (v *Service) RepairDanglingReferences(ctx context.Context) (int, error) {
	posts, err := v.store.Fetch(ctx, store.Query{
		Kind:    models.KindPost,
		Filters: []store.Filter{store.NonEmpty(models.FieldComments)},
	})
	if err != nil {
		return 0, fmt.Errorf("unable to fetch posts with comments: %w", err)
	}

	refs := lo.Uniq(lo.FlatMap(posts, func(post store.Document, _ int) []string {
		return referencedIDs(post, models.FieldComments)
	}))
	if len(refs) == 0 {
		return 0, nil
	}

	comments, err := v.store.Fetch(ctx, store.Query{Kind: models.KindComment, IDs: refs})
	if err != nil {
		return 0, fmt.Errorf("unable to fetch referenced comments: %w", err)
	}
	existing := lo.SliceToMap(comments, func(item store.Document) (string, bool) {
		return item.ID(), true
	})

	var count int
	for _, post := range posts {
		dangling := lo.Filter(lo.Uniq(referencedIDs(post, models.FieldComments)), func(ref string, _ int) bool {
			return !existing[ref]
		})
		if len(dangling) == 0 {
			continue
		}

		patch := store.NewPatch()
		for _, ref := range dangling {
			patch.UnsetRef(models.FieldComments, ref)
		}
		if _, err := v.store.Patch(ctx, post.ID(), patch); err != nil {
			return count, fmt.Errorf("unable to unlink dangling comments on %s: %w", post.ID(), err)
		}
		log.Info().Str("post", post.ID()).Strs("comments", dangling).Msg("Removed dangling comment references.")
		count++
	}
	return count, nil
}

func referencedIDs(doc store.Document, field string) []string {
	return lo.FilterMap(doc.Array(field), func(item map[string]any, _ int) (string, bool) {
		ref, ok := item[store.FieldRef].(string)
		return ref, ok && len(ref) > 0
	})
}
