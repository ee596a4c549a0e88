package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
	"github.com/hobbylab/hobbylab-core/internal/domain/streak"
	"github.com/hobbylab/hobbylab-core/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// HOBBY
// ══════════════════════════════════════════════════════════════════════════════

func newHobbyCmd(run runner) *cobra.Command {
	cmd := &cobra.Command{Use: "hobby", Short: "Manage hobbies"}

	var category, color, icon string

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a hobby",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			h := hobby.Hobby{Name: strings.TrimSpace(args[0]), Color: color, Icon: icon}
			if err := check(hobbyInput{Name: h.Name, Color: h.Color, Icon: h.Icon}); err != nil {
				return err
			}
			cat, err := hobby.ParseCategory(category)
			if err != nil {
				return err
			}
			h.Category = cat
			h = app.Store.AddHobby(ctx, h)
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", h.Name, shortID(h.ID))
			return nil
		}),
	}
	add.Flags().StringVar(&category, "category", "Other", "category: "+categoryNames())
	add.Flags().StringVar(&color, "color", "", "hex color")
	add.Flags().StringVar(&icon, "icon", "", "icon name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List hobbies",
		Args:  cobra.NoArgs,
		RunE: run(func(_ context.Context, cmd *cobra.Command, app *App, _ []string) error {
			renderHobbies(cmd.OutOrStdout(), app.Store.Hobbies())
			return nil
		}),
	}

	show := &cobra.Command{
		Use:   "show <hobby>",
		Short: "Show a hobby with its projects",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(_ context.Context, cmd *cobra.Command, app *App, args []string) error {
			id, err := app.hobbyID(args[0])
			if err != nil {
				return err
			}
			h, err := app.Store.Hobby(id).OrErr(shared.ErrHobbyNotFound)
			if err != nil {
				return err
			}
			recomputed, _ := app.Store.RecomputedTimeSpent(id).Get()
			lastActive := streak.LastActive(app.Store.Snapshot().SessionsForHobby(id))
			daysLeft := streak.DaysUntilBreak(lastActive, app.Store.Now())
			renderHobby(cmd.OutOrStdout(), h, recomputed, daysLeft, app.Store.Projects(id))
			return nil
		}),
	}

	var newName, newCategory, newColor, newIcon string
	update := &cobra.Command{
		Use:   "update <hobby>",
		Short: "Rename or restyle a hobby",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			if err := check(hobbyPatch{Name: newName, Color: newColor, Icon: newIcon}); err != nil {
				return err
			}
			id, err := app.hobbyID(args[0])
			if err != nil {
				return err
			}
			// An invalid category keeps the stored one.
			patch := hobby.Hobby{ID: id, Name: newName, Color: newColor, Icon: newIcon, Category: hobby.Category(-1)}
			if cmd.Flags().Changed("category") {
				if patch.Category, err = hobby.ParseCategory(newCategory); err != nil {
					return err
				}
			}
			h, err := app.Store.UpdateHobby(ctx, patch).OrErr(shared.ErrHobbyNotFound)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", h.Name)
			return nil
		}),
	}
	update.Flags().StringVar(&newName, "name", "", "new name")
	update.Flags().StringVar(&newCategory, "category", "", "category: "+categoryNames())
	update.Flags().StringVar(&newColor, "color", "", "hex color")
	update.Flags().StringVar(&newIcon, "icon", "", "icon name")

	del := &cobra.Command{
		Use:   "delete <hobby>",
		Short: "Delete a hobby with its projects, sessions and ideas",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			id, err := app.hobbyID(args[0])
			if err != nil {
				return err
			}
			h, err := app.Store.DeleteHobby(ctx, id).OrErr(shared.ErrHobbyNotFound)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", h.Name)
			return nil
		}),
	}

	cmd.AddCommand(add, list, show, update, del)
	return cmd
}

func categoryNames() string {
	names := make([]string, 0, len(hobby.Categories()))
	for _, c := range hobby.Categories() {
		names = append(names, c.String())
	}
	return strings.Join(names, "|")
}

// ══════════════════════════════════════════════════════════════════════════════
// PROJECT
// ══════════════════════════════════════════════════════════════════════════════

func newProjectCmd(run runner) *cobra.Command {
	cmd := &cobra.Command{Use: "project", Short: "Manage projects within a hobby"}

	var description, target, name string
	var reopen bool

	add := &cobra.Command{
		Use:   "add <hobby> <name>",
		Short: "Add a project",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, err := app.hobbyID(args[0])
			if err != nil {
				return err
			}
			p := hobby.Project{Name: args[1], Description: description}
			if err := check(projectInput{Name: p.Name, Description: p.Description}); err != nil {
				return err
			}
			if p.TargetEndDate, err = parseDate(target, app.Config.App.Location); err != nil {
				return err
			}
			p, err = app.Store.AddProject(ctx, hobbyID, p).OrErr(shared.ErrHobbyNotFound)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added project %s (%s)\n", p.Name, shortID(p.ID))
			return nil
		}),
	}
	add.Flags().StringVar(&description, "description", "", "description")
	add.Flags().StringVar(&target, "target", "", "target end date (YYYY-MM-DD)")

	list := &cobra.Command{
		Use:   "list <hobby>",
		Short: "List a hobby's projects",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(_ context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, err := app.hobbyID(args[0])
			if err != nil {
				return err
			}
			renderProjects(cmd.OutOrStdout(), app.Store.Projects(hobbyID))
			return nil
		}),
	}

	update := &cobra.Command{
		Use:   "update <hobby> <project>",
		Short: "Edit a project's name, description or target date",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, projectID, err := app.projectRef(args[0], args[1])
			if err != nil {
				return err
			}
			p, err := app.Store.Project(hobbyID, projectID).OrErr(shared.ErrProjectNotFound)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("description") {
				p.Description = description
			}
			if cmd.Flags().Changed("target") {
				if p.TargetEndDate, err = parseDate(target, app.Config.App.Location); err != nil {
					return err
				}
			}
			if err := check(projectInput{Name: p.Name, Description: p.Description}); err != nil {
				return err
			}
			p, err = app.Store.UpdateProject(ctx, hobbyID, p).OrErr(shared.ErrProjectNotFound)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated project %s\n", p.Name)
			return nil
		}),
	}
	update.Flags().StringVar(&name, "name", "", "new name")
	update.Flags().StringVar(&description, "description", "", "description")
	update.Flags().StringVar(&target, "target", "", "target end date (YYYY-MM-DD), empty to clear")

	complete := &cobra.Command{
		Use:   "complete <hobby> <project>",
		Short: "Mark a project completed",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, projectID, err := app.projectRef(args[0], args[1])
			if err != nil {
				return err
			}
			p, err := app.Store.SetProjectCompleted(ctx, hobbyID, projectID, !reopen).OrErr(shared.ErrProjectNotFound)
			if err != nil {
				return err
			}
			state := "completed"
			if reopen {
				state = "reopened"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, p.Name)
			return nil
		}),
	}
	complete.Flags().BoolVar(&reopen, "reopen", false, "reopen instead of completing")

	del := &cobra.Command{
		Use:   "delete <hobby> <project>",
		Short: "Delete a project with its tasks and sessions",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, projectID, err := app.projectRef(args[0], args[1])
			if err != nil {
				return err
			}
			p, err := app.Store.DeleteProject(ctx, hobbyID, projectID).OrErr(shared.ErrProjectNotFound)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted project %s\n", p.Name)
			return nil
		}),
	}

	cmd.AddCommand(add, list, update, complete, del)
	return cmd
}

func (a *App) projectRef(hobbyRef, projectRef string) (string, string, error) {
	hobbyID, err := a.hobbyID(hobbyRef)
	if err != nil {
		return "", "", err
	}
	projectID, err := a.projectID(hobbyID, projectRef)
	if err != nil {
		return "", "", err
	}
	return hobbyID, projectID, nil
}

// parseDate reads a YYYY-MM-DD date; an empty string yields nil.
func parseDate(s string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(timeutil.FormatDate, strings.TrimSpace(s), loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", s, shared.ErrInvalidFormat)
	}
	return &t, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// TASK
// ══════════════════════════════════════════════════════════════════════════════

func newTaskCmd(run runner) *cobra.Command {
	cmd := &cobra.Command{Use: "task", Short: "Manage tasks within a project"}

	var priority, description string

	add := &cobra.Command{
		Use:   "add <hobby> <project> <title>",
		Short: "Add an open task",
		Args:  cobra.ExactArgs(3),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			if err := check(taskInput{Title: args[2]}); err != nil {
				return err
			}
			hobbyID, projectID, err := app.projectRef(args[0], args[1])
			if err != nil {
				return err
			}
			prio, err := hobby.ParsePriority(priority)
			if err != nil {
				return err
			}
			t, err := app.Store.AddTask(ctx, hobbyID, projectID, hobby.Task{
				Title:       args[2],
				Description: description,
				Priority:    prio,
			}).OrErr(shared.ErrProjectNotFound)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added task %s (%s)\n", t.Title, shortID(t.ID))
			return nil
		}),
	}
	add.Flags().StringVar(&priority, "priority", "Medium", "Low|Medium|High")
	add.Flags().StringVar(&description, "description", "", "description")

	list := &cobra.Command{
		Use:   "list <hobby> <project>",
		Short: "List a project's tasks",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(_ context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, projectID, err := app.projectRef(args[0], args[1])
			if err != nil {
				return err
			}
			renderTasks(cmd.OutOrStdout(), app.Store.Tasks(hobbyID, projectID))
			return nil
		}),
	}

	toggle := &cobra.Command{
		Use:   "toggle <hobby> <project> <task>",
		Short: "Complete or reopen a task",
		Args:  cobra.ExactArgs(3),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, projectID, err := app.projectRef(args[0], args[1])
			if err != nil {
				return err
			}
			taskID, err := app.taskID(hobbyID, projectID, args[2])
			if err != nil {
				return err
			}
			t, err := app.Store.ToggleTask(ctx, hobbyID, projectID, taskID).OrErr(shared.ErrTaskNotFound)
			if err != nil {
				return err
			}
			if t.IsCompleted {
				fmt.Fprintf(cmd.OutOrStdout(), "completed %s\n", t.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "reopened %s\n", t.Title)
			}
			return nil
		}),
	}

	del := &cobra.Command{
		Use:   "delete <hobby> <project> <task>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(3),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			hobbyID, projectID, err := app.projectRef(args[0], args[1])
			if err != nil {
				return err
			}
			taskID, err := app.taskID(hobbyID, projectID, args[2])
			if err != nil {
				return err
			}
			t, err := app.Store.DeleteTask(ctx, hobbyID, projectID, taskID).OrErr(shared.ErrTaskNotFound)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted task %s\n", t.Title)
			return nil
		}),
	}

	cmd.AddCommand(add, list, toggle, del)
	return cmd
}
