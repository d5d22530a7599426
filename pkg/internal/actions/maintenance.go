package actions

import (
	"context"

	"github.com/rs/zerolog/log"
)

func (v *Actions) BackfillViews(ctx context.Context, kind string) CountResult {
	log.Info().Str("kind", kind).Msg("Backfilling views...")
	count, err := v.svc.BackfillViews(ctx, kind)
	if err != nil {
		return CountResult{Outcome: fail("backfillViews", err)}
	}
	log.Info().Str("kind", kind).Int("count", count).Msg("Backfilled views")
	return CountResult{Outcome: success(), UpdatedCount: count}
}

func (v *Actions) BackfillFollowers(ctx context.Context, kind string) CountResult {
	log.Info().Str("kind", kind).Msg("Backfilling followers...")
	count, err := v.svc.BackfillFollowers(ctx, kind)
	if err != nil {
		return CountResult{Outcome: fail("backfillFollowers", err)}
	}
	log.Info().Str("kind", kind).Int("count", count).Msg("Backfilled followers")
	return CountResult{Outcome: success(), UpdatedCount: count}
}

func (v *Actions) RepairMissingKeys(ctx context.Context) CountResult {
	log.Info().Msg("Repairing missing array keys...")
	count, err := v.svc.RepairMissingKeys(ctx)
	if err != nil {
		return CountResult{Outcome: fail("repairMissingKeys", err)}
	}
	log.Info().Int("count", count).Msg("Repaired missing array keys")
	return CountResult{Outcome: success(), UpdatedCount: count}
}

func (v *Actions) RepairDanglingReferences(ctx context.Context) CountResult {
	log.Info().Msg("Removing dangling comment references...")
	count, err := v.svc.RepairDanglingReferences(ctx)
	if err != nil {
		return CountResult{Outcome: fail("repairDanglingReferences", err)}
	}
	log.Info().Int("count", count).Msg("Removed dangling comment references")
	return CountResult{Outcome: success(), UpdatedCount: count}
}

func (v *Actions) CheckStore(ctx context.Context) Outcome {
	if err := v.svc.CheckStore(ctx); err != nil {
		return fail("checkStore", err)
	}
	return success()
}
