package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hobbylab/hobbylab-core/internal/application/analytics"
	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// STATS
// ══════════════════════════════════════════════════════════════════════════════

func newStatsCmd(run runner) *cobra.Command {
	var rangeName string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show time analytics for a range",
		Args:  cobra.NoArgs,
		RunE: run(func(_ context.Context, cmd *cobra.Command, app *App, _ []string) error {
			r, err := analytics.ParseTimeRange(rangeName)
			if err != nil {
				return fmt.Errorf("%q: %w", rangeName, err)
			}
			renderReport(cmd.OutOrStdout(), app.Analytics.Report(r))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&rangeName, "range", "r", analytics.RangeWeek.String(), "day|week|month|year")

	week := &cobra.Command{
		Use:   "week",
		Short: "Per-hobby totals since Monday",
		Args:  cobra.NoArgs,
		RunE: run(func(_ context.Context, cmd *cobra.Command, app *App, _ []string) error {
			renderWeek(cmd.OutOrStdout(), app.Analytics.WeeklyStats())
			return nil
		}),
	}

	var month string
	calendar := &cobra.Command{
		Use:   "calendar",
		Short: "Month calendar of active days",
		Args:  cobra.NoArgs,
		RunE: run(func(_ context.Context, cmd *cobra.Command, app *App, _ []string) error {
			at := app.Store.Now()
			if month != "" {
				t, err := time.ParseInLocation("2006-01", month, app.Config.App.Location)
				if err != nil {
					return fmt.Errorf("invalid --month %q: %w", month, shared.ErrInvalidFormat)
				}
				at = t
			}
			renderMonth(cmd.OutOrStdout(), app.Analytics.MonthActivity(at.Year(), at.Month()))
			return nil
		}),
	}
	calendar.Flags().StringVar(&month, "month", "", "month (YYYY-MM), default current")

	cmd.AddCommand(week, calendar)
	return cmd
}

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE
// ══════════════════════════════════════════════════════════════════════════════

func newProfileCmd(run runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show level, XP and all-time totals",
		Args:  cobra.NoArgs,
		RunE: run(func(_ context.Context, cmd *cobra.Command, app *App, _ []string) error {
			renderProfile(cmd.OutOrStdout(), app.Store.Profile(), app.Analytics.ProfileSummary())
			return nil
		}),
	}

	var name, avatar string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change display name or avatar",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, _ []string) error {
			if err := check(profileInput{Name: name}); err != nil {
				return err
			}
			p := app.Store.UpdateProfile(ctx, name, avatar)
			fmt.Fprintf(cmd.OutOrStdout(), "profile: %s %s\n", p.AvatarEmoji, p.Name)
			return nil
		}),
	}
	set.Flags().StringVar(&name, "name", "", "display name")
	set.Flags().StringVar(&avatar, "avatar", "", "avatar emoji")

	achievements := &cobra.Command{
		Use:   "achievements",
		Short: "Re-check and list achievements",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, _ []string) error {
			// Unlocks are announced by the notifier.
			app.Store.CheckAchievements(ctx)
			renderAchievements(cmd.OutOrStdout(), gamification.Board(app.Store.Profile()))
			return nil
		}),
	}

	cmd.AddCommand(set, achievements)
	return cmd
}

// ══════════════════════════════════════════════════════════════════════════════
// RESET
// ══════════════════════════════════════════════════════════════════════════════

var errResetNotConfirmed = errors.New("refusing to erase stored data without --yes")

func newResetCmd(run runner) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all stored data for the configured owner",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, _ []string) error {
			if !yes {
				return errResetNotConfirmed
			}
			if err := app.Store.ClearPersisted(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "erased stored data for %s\n", app.Config.App.Owner)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm")
	return cmd
}
