package cli

import (
	"context"
	"fmt"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/actions"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"github.com/spf13/cobra"
)

// runAction opens a runtime for one maintenance run and reports its count.
func runAction(cmd *cobra.Command, fn func(ctx context.Context, act *actions.Actions) actions.CountResult) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := NewRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())

	out := fn(ctx, rt.Actions)
	if !out.OK() {
		return fmt.Errorf("%s", out.Error)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated %d documents\n", out.UpdatedCount)
	return nil
}

func newBackfillCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Give documents created before a field existed its zero value",
	}

	var viewsKind string
	views := &cobra.Command{
		Use:   "views",
		Short: "Set views to 0 where it is missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, func(ctx context.Context, act *actions.Actions) actions.CountResult {
				return act.BackfillViews(ctx, viewsKind)
			})
		},
	}
	views.Flags().StringVar(&viewsKind, "kind", models.KindPost, "document kind, post or game")

	var followersKind string
	followers := &cobra.Command{
		Use:   "followers",
		Short: "Set followers to an empty list where it is missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, func(ctx context.Context, act *actions.Actions) actions.CountResult {
				return act.BackfillFollowers(ctx, followersKind)
			})
		},
	}
	followers.Flags().StringVar(&followersKind, "kind", models.KindAuthor, "document kind, author or game")

	cmd.AddCommand(views, followers)
	return cmd
}

func newRepairCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Fix reference arrays left inconsistent by older writes",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "keys",
			Short: "Derive missing _key and _type on reference entries",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAction(cmd, func(ctx context.Context, act *actions.Actions) actions.CountResult {
					return act.RepairMissingKeys(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "references",
			Short: "Drop comment references whose comment is gone",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAction(cmd, func(ctx context.Context, act *actions.Actions) actions.CountResult {
					return act.RepairDanglingReferences(ctx)
				})
			},
		},
	)
	return cmd
}
