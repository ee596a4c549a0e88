package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hobbylab/hobbylab-core/internal/application/analytics"
	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/messaging"
	"github.com/hobbylab/hobbylab-core/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// STYLES
// ══════════════════════════════════════════════════════════════════════════════

var (
	accent = lipgloss.Color("#7D56F4")
	muted  = lipgloss.Color("#626262")
	good   = lipgloss.Color("#04B575")
	warn   = lipgloss.Color("#FFA500")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle = lipgloss.NewStyle().Foreground(muted)
	goodStyle  = lipgloss.NewStyle().Foreground(good).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(warn)
	labelStyle = lipgloss.NewStyle().Width(14)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
)

const barWidth = 30

func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func bar(value, peak float64, color string) string {
	n := 0
	if peak > 0 {
		n = int(math.Round(value / peak * barWidth))
	}
	n = min(max(n, 0), barWidth)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", n)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-n))
}

func field(label, value string) string {
	return labelStyle.Render(label) + value
}

// ─────────────────────────────────────────────────────────────────────────────
// Entities
// ─────────────────────────────────────────────────────────────────────────────

func renderHobbies(w io.Writer, hobbies []hobby.Hobby) {
	if len(hobbies) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no hobbies yet, add one with `hobbylab hobby add <name>`"))
		return
	}
	for _, h := range hobbies {
		fmt.Fprintf(w, "%s %s  %s  %s  %s\n",
			swatch(h.Color),
			titleStyle.Render(h.Name),
			mutedStyle.Render(shortID(h.ID)),
			h.Category,
			timeutil.FormatDuration(h.TotalTimeSpent),
		)
	}
}

func renderHobby(w io.Writer, h hobby.Hobby, recomputed time.Duration, daysLeft int, projects []hobby.Project) {
	lines := []string{
		swatch(h.Color) + " " + titleStyle.Render(h.Name),
		field("id", h.ID),
		field("category", h.Category.String()),
		field("time", timeutil.FormatDuration(h.TotalTimeSpent)),
		field("streak", fmt.Sprintf("%d (best %d)", h.CurrentStreak, h.LongestStreak)),
	}
	if recomputed != h.TotalTimeSpent {
		lines = append(lines, field("", mutedStyle.Render("sessions on record: "+timeutil.FormatDuration(recomputed))))
	}
	if h.CurrentStreak > 0 && daysLeft == 1 {
		lines = append(lines, warnStyle.Render("practice today to keep your streak"))
	}
	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
	renderProjects(w, projects)
}

func renderProjects(w io.Writer, projects []hobby.Project) {
	for _, p := range projects {
		status := fmt.Sprintf("%3.0f%%", p.Progress*100)
		if p.IsCompleted {
			status = goodStyle.Render("done")
		}
		fmt.Fprintf(w, "  %s %s  %s\n", status, p.Name, mutedStyle.Render(shortID(p.ID)))
	}
}

func renderTasks(w io.Writer, tasks []hobby.Task) {
	for _, t := range tasks {
		box := "[ ]"
		if t.IsCompleted {
			box = goodStyle.Render("[x]")
		}
		prio := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Priority.Color())).Render(t.Priority.String())
		fmt.Fprintf(w, "%s %s  %s  %s\n", box, t.Title, prio, mutedStyle.Render(shortID(t.ID)))
	}
}

func renderSessions(w io.Writer, sessions []hobby.Session, now time.Time) {
	for _, s := range sessions {
		fmt.Fprintf(w, "%s  %-8s  +%d XP  %s  %s\n",
			s.Date.In(now.Location()).Format(timeutil.FormatDateTime),
			timeutil.FormatDuration(s.Duration),
			s.XPEarned,
			mutedStyle.Render(timeutil.FormatRelative(s.Date, now)),
			mutedStyle.Render(shortID(s.ID)),
		)
	}
}

func renderIdeas(w io.Writer, ideas []hobby.Idea) {
	for _, i := range ideas {
		star := " "
		if i.IsFavorite {
			star = warnStyle.Render("★")
		}
		tags := ""
		if len(i.Tags) > 0 {
			tags = mutedStyle.Render("#" + strings.Join(i.Tags, " #"))
		}
		fmt.Fprintf(w, "%s %s  %s  %s\n", star, i.Title, tags, mutedStyle.Render(shortID(i.ID)))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Analytics
// ─────────────────────────────────────────────────────────────────────────────

func renderReport(w io.Writer, r analytics.Report) {
	m := r.Metrics
	summary := strings.Join([]string{
		titleStyle.Render("Last " + r.Range.String()),
		field("total", timeutil.FormatDuration(m.TotalTime)),
		field("sessions", fmt.Sprint(m.SessionCount)),
		field("per day", timeutil.FormatDuration(m.AveragePerDay)),
		field("xp earned", fmt.Sprint(m.TotalXP)),
		field("tasks done", fmt.Sprint(m.CompletedTasks)),
		field("open projects", fmt.Sprint(m.ActiveProjects)),
		field("best streak", fmt.Sprint(m.BestStreak)),
		field("hobbies", fmt.Sprint(m.HobbiesPracticed)),
	}, "\n")
	fmt.Fprintln(w, boxStyle.Render(summary))

	renderShares(w, "By hobby", r.ByHobby)
	renderShares(w, "By category", r.ByCategory)
	renderBuckets(w, r.Activity, r.ActivityUnit)
}

func renderShares(w io.Writer, title string, shares []analytics.Share) {
	if len(shares) == 0 {
		return
	}
	fmt.Fprintln(w, titleStyle.Render(title))
	for _, s := range shares {
		fmt.Fprintf(w, "  %s %s %5.1f%%  %s\n",
			labelStyle.Render(s.Label),
			bar(s.Percentage, 100, s.Color),
			s.Percentage,
			timeutil.FormatDuration(s.Duration),
		)
	}
}

func renderBuckets(w io.Writer, buckets []analytics.Bucket, unit analytics.Unit) {
	var peak float64
	for _, b := range buckets {
		peak = math.Max(peak, b.Value)
	}
	fmt.Fprintln(w, titleStyle.Render("Activity")+" "+mutedStyle.Render("("+string(unit)+")"))
	for _, b := range buckets {
		fmt.Fprintf(w, "  %-6s %s %.1f\n", b.Label, bar(b.Value, peak, string(accent)), b.Value)
	}
}

func renderWeek(w io.Writer, weeks []analytics.HobbyWeek) {
	var peak time.Duration
	for _, hw := range weeks {
		peak = max(peak, hw.Time)
	}
	fmt.Fprintln(w, titleStyle.Render("This week"))
	for _, hw := range weeks {
		fmt.Fprintf(w, "  %s %s %s  %d sessions\n",
			labelStyle.Render(hw.Name),
			bar(float64(hw.Time), float64(peak), hw.Color),
			timeutil.FormatDuration(hw.Time),
			hw.Sessions,
		)
	}
}

// renderMonth draws a Monday-first calendar; active days are highlighted.
func renderMonth(w io.Writer, days []analytics.DayActivity) {
	if len(days) == 0 {
		return
	}
	fmt.Fprintln(w, titleStyle.Render(days[0].Date.Format("January 2006")))
	fmt.Fprintln(w, mutedStyle.Render("Mo Tu We Th Fr Sa Su"))

	offset := (int(days[0].Date.Weekday()) + 6) % 7
	var sb strings.Builder
	sb.WriteString(strings.Repeat("   ", offset))
	for i, d := range days {
		cell := fmt.Sprintf("%2d", d.Date.Day())
		if d.Active() {
			cell = goodStyle.Render(cell)
		}
		sb.WriteString(cell)
		if (offset+i+1)%7 == 0 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}
	fmt.Fprintln(w, strings.TrimRight(sb.String(), " \n"))
}

// ─────────────────────────────────────────────────────────────────────────────
// Profile
// ─────────────────────────────────────────────────────────────────────────────

func renderProfile(w io.Writer, p gamification.UserProfile, s analytics.Summary) {
	lines := []string{
		titleStyle.Render(p.AvatarEmoji + " " + p.Name),
		field("level", fmt.Sprintf("%d  %s %d/%d XP", p.Level,
			bar(p.ProgressToNextLevel(), 1, string(good)), p.CurrentXP, gamification.XPForNextLevel(p.Level))),
		field("total xp", fmt.Sprint(s.TotalXP)),
		field("hobbies", fmt.Sprint(s.Hobbies)),
		field("projects", fmt.Sprint(s.TotalProjects)),
		field("tasks done", fmt.Sprint(s.CompletedTasks)),
		field("best streak", fmt.Sprint(s.LongestStreak)),
		field("time", timeutil.FormatDuration(s.TotalTime)),
		field("achievements", fmt.Sprintf("%d/%d", s.UnlockedAchievements, len(gamification.Catalog()))),
		field("joined", p.JoinDate.Format(timeutil.FormatDate)),
	}
	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

func renderAchievements(w io.Writer, board []gamification.Achievement) {
	for _, a := range board {
		if a.IsUnlocked {
			when := ""
			if a.UnlockedDate != nil {
				when = mutedStyle.Render(a.UnlockedDate.Format(timeutil.FormatDate))
			}
			fmt.Fprintf(w, "%s %s  %s\n", goodStyle.Render("✓"), a.Title, when)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", mutedStyle.Render("·"), mutedStyle.Render(a.Title+": "+a.Description))
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// NOTIFIER
// ══════════════════════════════════════════════════════════════════════════════

// subscribeNotifier prints level-ups, unlocked achievements and streak
// records as they are published.
func subscribeNotifier(bus *messaging.InMemoryEventBus, out io.Writer) error {
	handlers := map[shared.EventType]shared.EventHandler{
		shared.EventLevelUp: func(e shared.Event) error {
			if ev, ok := e.(shared.LevelUpEvent); ok {
				fmt.Fprintln(out, goodStyle.Render(fmt.Sprintf("▲ level up! %d → %d", ev.OldLevel, ev.NewLevel)))
			}
			return nil
		},
		shared.EventAchievementUnlocked: func(e shared.Event) error {
			if ev, ok := e.(shared.AchievementUnlockedEvent); ok {
				fmt.Fprintln(out, goodStyle.Render("★ achievement unlocked: "+ev.Title))
			}
			return nil
		},
		shared.EventStreakUpdated: func(e shared.Event) error {
			if ev, ok := e.(shared.StreakUpdatedEvent); ok && ev.IsNewRecord {
				fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("🔥 new streak record: %d days", ev.NewStreak)))
			}
			return nil
		},
	}
	for _, t := range []shared.EventType{shared.EventLevelUp, shared.EventAchievementUnlocked, shared.EventStreakUpdated} {
		if err := bus.Subscribe(t, handlers[t]); err != nil {
			return fmt.Errorf("subscribe %s: %w", t, err)
		}
	}
	return nil
}
