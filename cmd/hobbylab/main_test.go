package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbylab/hobbylab-core/internal/application/analytics"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
)

// setupEnv points the CLI at a fresh SQLite file so state carries over
// between invocations the way it does between real processes.
func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOBBYLAB_CONFIG", "")
	t.Setenv("HOBBYLAB_ENV", "development")
	t.Setenv("HOBBYLAB_DEBUG", "false")
	t.Setenv("HOBBYLAB_STORAGE", "sqlite")
	t.Setenv("HOBBYLAB_SQLITE_PATH", filepath.Join(t.TempDir(), "hobbylab.db"))
	t.Setenv("HOBBYLAB_TIMEZONE", "UTC")
	t.Setenv("HOBBYLAB_OWNER", "tester")
	t.Setenv("HOBBYLAB_EVENTS_REDIS", "false")
	t.Setenv("HOBBYLAB_EVENTS_ASYNC", "false")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err, strings.Join(args, " "))
	return out
}

func TestCLI_HobbyLifecycle(t *testing.T) {
	setupEnv(t)

	out := mustExecute(t, "hobby", "add", "Guitar", "--category", "music")
	assert.Contains(t, out, "added Guitar")

	out = mustExecute(t, "session", "log", "guitar", "--duration", "1h")
	assert.Contains(t, out, "logged 1h 0m, +10 XP")
	assert.Contains(t, out, "achievement unlocked: First Steps")

	out = mustExecute(t, "hobby", "list")
	assert.Contains(t, out, "Guitar")
	assert.Contains(t, out, "Music")
	assert.Contains(t, out, "1h 0m")

	mustExecute(t, "project", "add", "Guitar", "Album", "--target", "2030-01-01")
	mustExecute(t, "task", "add", "guitar", "album", "Write riff", "--priority", "high")
	out = mustExecute(t, "task", "toggle", "guitar", "album", "write riff")
	assert.Contains(t, out, "completed Write riff")

	out = mustExecute(t, "project", "list", "guitar")
	assert.Contains(t, out, "100%")

	out = mustExecute(t, "profile")
	assert.Contains(t, out, "Hobbyist")
	assert.Contains(t, out, "15")

	out = mustExecute(t, "stats", "--range", "day")
	assert.Contains(t, out, "Guitar")
	assert.Contains(t, out, "100.0%")

	out = mustExecute(t, "hobby", "delete", "guitar")
	assert.Contains(t, out, "deleted Guitar")
	out = mustExecute(t, "hobby", "list")
	assert.Contains(t, out, "no hobbies yet")
}

func TestCLI_IdeasAndSessions(t *testing.T) {
	setupEnv(t)
	mustExecute(t, "hobby", "add", "Drawing", "--category", "art")

	mustExecute(t, "idea", "add", "drawing", "Portrait series", "--tags", "faces,ink")
	mustExecute(t, "idea", "add", "drawing", "Landscape", "--content", "hills at dusk")
	out := mustExecute(t, "idea", "favorite", "drawing", "landscape")
	assert.Contains(t, out, "starred Landscape")

	out = mustExecute(t, "idea", "list", "drawing", "--favorites")
	assert.Contains(t, out, "Landscape")
	assert.NotContains(t, out, "Portrait")

	out = mustExecute(t, "idea", "list", "drawing", "-q", "INK")
	assert.Contains(t, out, "Portrait series")

	mustExecute(t, "session", "log", "drawing", "-d", "45m", "--at", "2024-03-01 10:00")
	out = mustExecute(t, "session", "day", "--date", "2024-03-01")
	assert.Contains(t, out, "10:00")
	assert.Contains(t, out, "Drawing")
	assert.Contains(t, out, "45m")

	out = mustExecute(t, "session", "day", "--date", "2024-03-02")
	assert.Contains(t, out, "nothing logged")
}

func TestCLI_Errors(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "hobby", "show", "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = execute(t, "stats", "--range", "decade")
	assert.ErrorIs(t, err, shared.ErrUnknownTimeRange)

	_, err = execute(t, "hobby", "add", "Chess", "--category", "boardgames")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = execute(t, "hobby", "add", "Chess", "--color", "red")
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.ErrorContains(t, err, "not a hex color")

	mustExecute(t, "hobby", "add", "Guitar")
	_, err = execute(t, "session", "log", "guitar", "--duration", "0s")
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = execute(t, "hobby", "show", "Guitr")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorContains(t, err, `did you mean "Guitar"`)

	_, err = execute(t, "idea", "add", "guitar", "Cover", "--links", "not a url")
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = execute(t, "reset")
	assert.ErrorIs(t, err, errResetNotConfirmed)

	t.Setenv("HOBBYLAB_STORAGE", "floppy")
	_, err = execute(t, "hobby", "list")
	assert.ErrorContains(t, err, "unknown backend")
}

func TestCLI_ResetErasesStoredData(t *testing.T) {
	setupEnv(t)
	mustExecute(t, "hobby", "add", "Running", "--category", "sports")

	out := mustExecute(t, "reset", "--yes")
	assert.Contains(t, out, "erased stored data for tester")

	out = mustExecute(t, "hobby", "list")
	assert.Contains(t, out, "no hobbies yet")
}

func TestResolve(t *testing.T) {
	refs := []ref{
		{id: "a1b2c3", name: "Guitar"},
		{id: "a1ffff", name: "Piano"},
		{id: "zz9999", name: "Running"},
	}
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"a1b2c3", "a1b2c3", false},
		{"piano", "a1ffff", false},
		{"zz", "zz9999", false},
		{"a1", "", true},
		{"nothing", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := resolve(tt.in, refs, shared.ErrHobbyNotFound)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := resolve("nothing", refs, shared.ErrHobbyNotFound)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = resolve("a1", refs, shared.ErrHobbyNotFound)
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Equal(t, 2, exitCode(err))
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("", time.UTC)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseDate("2026-10-17", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), *d)

	_, err = parseDate("17/10/2026", time.UTC)
	assert.ErrorIs(t, err, shared.ErrInvalidFormat)
}

func TestRenderMonth_MondayFirst(t *testing.T) {
	var days []analytics.DayActivity
	// October 2026 starts on a Thursday.
	first := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 31; i++ {
		days = append(days, analytics.DayActivity{Date: first.AddDate(0, 0, i)})
	}

	var out bytes.Buffer
	renderMonth(&out, days)
	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "October 2026", lines[0])
	assert.Equal(t, "          1  2  3  4", lines[2])
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(shared.ErrUnknownTimeRange))
	assert.Equal(t, 2, exitCode(check(hobbyInput{})))
	assert.Equal(t, 3, exitCode(fmt.Errorf("load: %w", shared.ErrCorruptedSnapshot)))
	assert.Equal(t, 1, exitCode(shared.ErrHobbyNotFound))
}
