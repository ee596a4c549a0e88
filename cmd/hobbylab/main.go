// Command hobbylab tracks hobbies, projects and practice sessions from the
// terminal, with streaks, levels, achievements and time analytics.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/spf13/cobra"

	"github.com/hobbylab/hobbylab-core/config"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for bad input, 3 for unreachable or corrupt storage and 1
// otherwise.
func exitCode(err error) int {
	switch {
	case shared.IsValidation(err):
		return 2
	case shared.IsStorage(err):
		return 3
	}
	return 1
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "hobbylab",
		Short:         "Track hobbies, practice sessions and progress",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $HOBBYLAB_CONFIG)")

	run := func(fn action) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, args, configPath, fn)
		}
	}

	root.AddCommand(
		newHobbyCmd(run),
		newProjectCmd(run),
		newTaskCmd(run),
		newSessionCmd(run),
		newIdeaCmd(run),
		newStatsCmd(run),
		newProfileCmd(run),
		newResetCmd(run),
	)
	return root
}

// action is a command body running against an opened App.
type action func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error

// runner adapts an action to cobra's RunE.
type runner func(fn action) func(*cobra.Command, []string) error

func withApp(cmd *cobra.Command, args []string, configPath string, fn action) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := setupLogger(cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := openApp(ctx, cfg, log, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			log.Warn("failed to close resources", "error", cerr)
		}
	}()
	return fn(ctx, cmd, app, args)
}

// ══════════════════════════════════════════════════════════════════════════════
// REFERENCE RESOLUTION
// ══════════════════════════════════════════════════════════════════════════════

type ref struct {
	id   string
	name string
}

// suggestThreshold is the minimum fuzzy ratio for a "did you mean" hint.
const suggestThreshold = 60

// resolve matches a user-supplied reference against candidates: exact ID,
// then case-insensitive name, then a unique ID prefix. A miss suggests the
// closest name.
func resolve(input string, candidates []ref, notFound error) (string, error) {
	input = strings.TrimSpace(input)
	for _, c := range candidates {
		if c.id == input {
			return c.id, nil
		}
	}
	for _, c := range candidates {
		if c.name != "" && strings.EqualFold(c.name, input) {
			return c.id, nil
		}
	}
	var match string
	for _, c := range candidates {
		if input != "" && strings.HasPrefix(c.id, input) {
			if match != "" {
				return "", fmt.Errorf("%q is ambiguous: %w", input, shared.ErrValidation)
			}
			match = c.id
		}
	}
	if match == "" {
		if hint := closest(input, candidates); hint != "" {
			return "", fmt.Errorf("%q (did you mean %q?): %w", input, hint, notFound)
		}
		return "", fmt.Errorf("%q: %w", input, notFound)
	}
	return match, nil
}

func closest(input string, candidates []ref) string {
	best, bestScore := "", suggestThreshold-1
	for _, c := range candidates {
		if c.name == "" {
			continue
		}
		score := fuzzy.Ratio(strings.ToLower(input), strings.ToLower(c.name))
		if score > bestScore {
			best, bestScore = c.name, score
		}
	}
	return best
}

func (a *App) hobbyID(input string) (string, error) {
	var refs []ref
	for _, h := range a.Store.Hobbies() {
		refs = append(refs, ref{id: h.ID, name: h.Name})
	}
	return resolve(input, refs, shared.ErrHobbyNotFound)
}

func (a *App) projectID(hobbyID, input string) (string, error) {
	var refs []ref
	for _, p := range a.Store.Projects(hobbyID) {
		refs = append(refs, ref{id: p.ID, name: p.Name})
	}
	return resolve(input, refs, shared.ErrProjectNotFound)
}

func (a *App) taskID(hobbyID, projectID, input string) (string, error) {
	var refs []ref
	for _, t := range a.Store.Tasks(hobbyID, projectID) {
		refs = append(refs, ref{id: t.ID, name: t.Title})
	}
	return resolve(input, refs, shared.ErrTaskNotFound)
}

func (a *App) sessionID(hobbyID, input string) (string, error) {
	var refs []ref
	for _, s := range a.Store.GetAllSessions(hobbyID) {
		refs = append(refs, ref{id: s.ID})
	}
	return resolve(input, refs, shared.ErrSessionNotFound)
}

func (a *App) ideaID(hobbyID, input string) (string, error) {
	var refs []ref
	for _, i := range a.Store.Ideas(hobbyID) {
		refs = append(refs, ref{id: i.ID, name: i.Title})
	}
	return resolve(input, refs, shared.ErrIdeaNotFound)
}
