package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hobbylab/hobbylab-core/internal/application/store"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
	"github.com/hobbylab/hobbylab-core/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// SESSION
// ══════════════════════════════════════════════════════════════════════════════

func newSessionCmd(run runner) *cobra.Command {
	cmd := &cobra.Command{Use: "session", Short: "Log and review practice sessions"}

	var (
		duration time.Duration
		project  string
		notes    string
		at       string
		tags     []string
	)

	log := &cobra.Command{
		Use:   "log <hobby>",
		Short: "Log a practice session",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			if err := check(sessionInput{Duration: duration, Notes: notes, Tags: tags}); err != nil {
				return err
			}
			hobbyID, err := app.hobbyID(args[0])
			if err != nil {
				return err
			}
			projectID := ""
			if project != "" {
				if projectID, err = app.projectID(hobbyID, project); err != nil {
					return err
				}
			}
			sess := hobby.Session{Duration: duration, Notes: notes, Tags: tags}
			if at != "" {
				if sess.Date, err = time.ParseInLocation(timeutil.FormatDateTime, at, app.Config.App.Location); err != nil {
					return fmt.Errorf("invalid --at %q: %w", at, shared.ErrInvalidFormat)
				}
			}
			sess, err = app.Store.AddSession(ctx, hobbyID, projectID, sess).OrErr(shared.ErrHobbyNotFound)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged %s, +%d XP\n", timeutil.FormatDuration(sess.Duration), sess.XPEarned)
			return nil
		}),
	}
	log.Flags().DurationVarP(&duration, "duration", "d", 30*time.Minute, "session length, e.g. 45m or 1h30m")
	log.Flags().StringVarP(&project, "project", "p", "", "project within the hobby")
	log.Flags().StringVar(&notes, "notes", "", "notes")
	log.Flags().StringVar(&at, "at", "", "start time (YYYY-MM-DD HH:MM), default now")
	log.Flags().StringSliceVar(&tags, "tags", nil, "tags")

	list := &cobra.Command{
		Use:   "list <hobby>",
		Short: "List a hobby's sessions",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(_ context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, err := app.hobbyID(args[0])
			if err != nil {
				return err
			}
			renderSessions(cmd.OutOrStdout(), app.Store.GetAllSessions(hobbyID), app.Store.Now())
			return nil
		}),
	}

	var day string
	today := &cobra.Command{
		Use:   "day",
		Short: "List every session of one day, newest first",
		Args:  cobra.NoArgs,
		RunE: run(func(_ context.Context, cmd *cobra.Command, app *App, _ []string) error {
			date := app.Store.Now()
			d, err := parseDate(day, app.Config.App.Location)
			if err != nil {
				return err
			}
			if d != nil {
				date = *d
			}
			w := cmd.OutOrStdout()
			sessions := app.Analytics.DaySessions(date)
			if len(sessions) == 0 {
				fmt.Fprintln(w, mutedStyle.Render("nothing logged on "+date.Format(timeutil.FormatDate)))
				return nil
			}
			for _, s := range sessions {
				fmt.Fprintf(w, "%s %s  %s  %s\n",
					swatch(s.HobbyColor),
					s.Date.In(date.Location()).Format(timeutil.FormatTime),
					s.HobbyName,
					timeutil.FormatDuration(s.Duration),
				)
			}
			return nil
		}),
	}
	today.Flags().StringVar(&day, "date", "", "day (YYYY-MM-DD), default today")

	del := &cobra.Command{
		Use:   "delete <hobby> <session>",
		Short: "Delete a session; time and XP already earned are kept",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, err := app.hobbyID(args[0])
			if err != nil {
				return err
			}
			sessionID, err := app.sessionID(hobbyID, args[1])
			if err != nil {
				return err
			}
			if _, err := app.Store.DeleteSession(ctx, hobbyID, sessionID).OrErr(shared.ErrSessionNotFound); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted session %s\n", shortID(sessionID))
			return nil
		}),
	}

	cmd.AddCommand(log, list, today, del)
	return cmd
}

// ══════════════════════════════════════════════════════════════════════════════
// IDEA
// ══════════════════════════════════════════════════════════════════════════════

func newIdeaCmd(run runner) *cobra.Command {
	cmd := &cobra.Command{Use: "idea", Short: "Capture ideas for a hobby"}

	var (
		content string
		title   string
		tags    []string
		links   []string
	)

	add := &cobra.Command{
		Use:   "add <hobby> <title>",
		Short: "Add an idea",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			if err := check(ideaInput{Title: args[1], Tags: tags, Links: links}); err != nil {
				return err
			}
			hobbyID, err := app.hobbyID(args[0])
			if err != nil {
				return err
			}
			i, err := app.Store.AddIdea(ctx, hobbyID, hobby.Idea{
				Title:   args[1],
				Content: content,
				Tags:    tags,
				Links:   links,
			}).OrErr(shared.ErrHobbyNotFound)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added idea %s (%s)\n", i.Title, shortID(i.ID))
			return nil
		}),
	}
	add.Flags().StringVar(&content, "content", "", "idea text")
	add.Flags().StringSliceVar(&tags, "tags", nil, "tags")
	add.Flags().StringSliceVar(&links, "links", nil, "reference links")

	var favorites bool
	var query string
	list := &cobra.Command{
		Use:   "list <hobby>",
		Short: "List ideas, optionally filtered",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(_ context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, err := app.hobbyID(args[0])
			if err != nil {
				return err
			}
			ideas := app.Store.FindIdeas(hobbyID, store.IdeaFilter{FavoritesOnly: favorites, Query: query})
			renderIdeas(cmd.OutOrStdout(), ideas)
			return nil
		}),
	}
	list.Flags().BoolVar(&favorites, "favorites", false, "favorites only")
	list.Flags().StringVarP(&query, "query", "q", "", "match title, content or tags")

	edit := &cobra.Command{
		Use:   "edit <hobby> <idea>",
		Short: "Edit an idea's title, content, tags or links",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, ideaID, err := app.ideaRef(args[0], args[1])
			if err != nil {
				return err
			}
			var current hobby.Idea
			for _, i := range app.Store.Ideas(hobbyID) {
				if i.ID == ideaID {
					current = i
				}
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				current.Title = title
			}
			if flags.Changed("content") {
				current.Content = content
			}
			if flags.Changed("tags") {
				current.Tags = tags
			}
			if flags.Changed("links") {
				current.Links = links
			}
			if err := check(ideaInput{Title: current.Title, Tags: current.Tags, Links: current.Links}); err != nil {
				return err
			}
			i, err := app.Store.UpdateIdea(ctx, hobbyID, current).OrErr(shared.ErrIdeaNotFound)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated idea %s\n", i.Title)
			return nil
		}),
	}
	edit.Flags().StringVar(&title, "title", "", "new title")
	edit.Flags().StringVar(&content, "content", "", "idea text")
	edit.Flags().StringSliceVar(&tags, "tags", nil, "tags")
	edit.Flags().StringSliceVar(&links, "links", nil, "reference links")

	fav := &cobra.Command{
		Use:   "favorite <hobby> <idea>",
		Short: "Toggle an idea's favorite flag",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, ideaID, err := app.ideaRef(args[0], args[1])
			if err != nil {
				return err
			}
			i, err := app.Store.ToggleIdeaFavorite(ctx, hobbyID, ideaID).OrErr(shared.ErrIdeaNotFound)
			if err != nil {
				return err
			}
			state := "unstarred"
			if i.IsFavorite {
				state = "starred"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, i.Title)
			return nil
		}),
	}

	del := &cobra.Command{
		Use:   "delete <hobby> <idea>",
		Short: "Delete an idea",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, ideaID, err := app.ideaRef(args[0], args[1])
			if err != nil {
				return err
			}
			i, err := app.Store.DeleteIdea(ctx, hobbyID, ideaID).OrErr(shared.ErrIdeaNotFound)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted idea %s\n", strings.TrimSpace(i.Title))
			return nil
		}),
	}

	cmd.AddCommand(add, list, edit, fav, del)
	return cmd
}

func (a *App) ideaRef(hobbyRef, ideaRef string) (string, string, error) {
	hobbyID, err := a.hobbyID(hobbyRef)
	if err != nil {
		return "", "", err
	}
	ideaID, err := a.ideaID(hobbyID, ideaRef)
	if err != nil {
		return "", "", err
	}
	return hobbyID, ideaID, nil
}
