package hobby

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

// fixture builds: guitar{songbook{t1(done), t2; s1}, loose s2, idea i1}, chess{}.
func fixture(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	g.InsertHobby(Hobby{ID: "guitar", Name: "Guitar", Category: CategoryMusic, CreatedDate: day})
	g.InsertHobby(Hobby{ID: "chess", Name: "Chess", Category: CategoryGaming, CreatedDate: day})

	_, ok := g.InsertProject(Project{ID: "songbook", HobbyID: "guitar", Name: "Songbook", StartDate: day})
	require.True(t, ok)

	done := day
	_, ok = g.InsertTask(Task{ID: "t1", ProjectID: "songbook", Title: "Learn chords", IsCompleted: true, CompletedDate: &done})
	require.True(t, ok)
	_, ok = g.InsertTask(Task{ID: "t2", ProjectID: "songbook", Title: "Learn strumming", Priority: PriorityHigh})
	require.True(t, ok)

	_, ok = g.InsertSession(Session{ID: "s1", HobbyID: "guitar", ProjectID: "songbook", Date: day, Duration: time.Hour, Tags: []string{"chords"}})
	require.True(t, ok)
	_, ok = g.InsertSession(Session{ID: "s2", HobbyID: "guitar", Date: day.Add(time.Hour), Duration: 30 * time.Minute})
	require.True(t, ok)

	_, ok = g.InsertIdea(Idea{ID: "i1", HobbyID: "guitar", Title: "Fingerpicking", Links: []string{"https://example.com"}})
	require.True(t, ok)
	return g
}

func TestGraph_InsertRejectsMissingParent(t *testing.T) {
	g := fixture(t)

	_, ok := g.InsertProject(Project{ID: "p", HobbyID: "nope"})
	assert.False(t, ok)

	_, ok = g.InsertTask(Task{ID: "t", ProjectID: "nope"})
	assert.False(t, ok)

	_, ok = g.InsertSession(Session{ID: "s", HobbyID: "nope"})
	assert.False(t, ok)

	// project exists but belongs to another hobby
	_, ok = g.InsertSession(Session{ID: "s", HobbyID: "chess", ProjectID: "songbook"})
	assert.False(t, ok)

	_, ok = g.InsertIdea(Idea{ID: "i", HobbyID: "nope"})
	assert.False(t, ok)
}

func TestGraph_LookupsRespectOwnership(t *testing.T) {
	g := fixture(t)

	_, ok := g.Project("guitar", "songbook")
	assert.True(t, ok)
	_, ok = g.Project("chess", "songbook")
	assert.False(t, ok)

	_, ok = g.Task("songbook", "t1")
	assert.True(t, ok)
	_, ok = g.Session("chess", "s1")
	assert.False(t, ok)
	_, ok = g.Idea("chess", "i1")
	assert.False(t, ok)
}

func TestGraph_SessionsForHobby_ProjectsFirstThenLoose(t *testing.T) {
	g := fixture(t)

	sessions := g.SessionsForHobby("guitar")
	require.Len(t, sessions, 2)
	assert.Equal(t, "s1", sessions[0].ID)
	assert.Equal(t, "s2", sessions[1].ID)
	assert.Empty(t, g.SessionsForHobby("chess"))
}

func TestGraph_RecomputeProgress(t *testing.T) {
	g := fixture(t)

	assert.InDelta(t, 0.5, g.RecomputeProgress("songbook"), 1e-9)

	_, ok := g.RemoveTask("songbook", "t1")
	require.True(t, ok)
	_, ok = g.RemoveTask("songbook", "t2")
	require.True(t, ok)
	assert.InDelta(t, 0.5, g.RecomputeProgress("songbook"), 1e-9, "no tasks but a session")

	_, ok = g.RemoveSession("guitar", "s1")
	require.True(t, ok)
	assert.Equal(t, 0.0, g.RecomputeProgress("songbook"))
}

func TestProgressFor(t *testing.T) {
	assert.Equal(t, 0.25, ProgressFor(4, 1, 0))
	assert.Equal(t, 0.5, ProgressFor(0, 0, 3))
	assert.Equal(t, 0.0, ProgressFor(0, 0, 0))
	assert.Equal(t, 1.0, ProgressFor(2, 2, 0))
}

func TestGraph_RemoveHobbyCascades(t *testing.T) {
	g := fixture(t)

	removed, ok := g.RemoveHobby("guitar")
	require.True(t, ok)
	assert.Equal(t, "Guitar", removed.Name)

	assert.Equal(t, 1, g.HobbyCount())
	assert.Equal(t, 0, g.SessionCount())
	assert.Equal(t, 0, g.CompletedTaskCount())
	assert.Empty(t, g.AllProjects())
	_, ok = g.Task("songbook", "t1")
	assert.False(t, ok)

	_, ok = g.RemoveHobby("guitar")
	assert.False(t, ok)
}

func TestGraph_RemoveProjectCascades(t *testing.T) {
	g := fixture(t)

	_, ok := g.RemoveProject("guitar", "songbook")
	require.True(t, ok)

	assert.Empty(t, g.Projects("guitar"))
	assert.Empty(t, g.Tasks("songbook"))
	assert.Equal(t, 1, g.SessionCount(), "loose session survives")
}

func TestGraph_TimeSpentCounters(t *testing.T) {
	g := fixture(t)
	h, _ := g.Hobby("guitar")
	h.TotalTimeSpent = 90 * time.Minute

	assert.Equal(t, 90*time.Minute, g.RecomputedTimeSpent("guitar"))

	g.RemoveSession("guitar", "s2")
	assert.Equal(t, 90*time.Minute, g.TotalTimeSpent())
	assert.Equal(t, time.Hour, g.RecomputedTimeSpent("guitar"))
}

func TestGraph_CloneIsIndependent(t *testing.T) {
	g := fixture(t)
	c := g.Clone()

	s, _ := c.Session("guitar", "s1")
	s.Tags[0] = "changed"
	c.RemoveHobby("chess")
	h, _ := c.Hobby("guitar")
	h.Name = "Bass"

	orig, _ := g.Session("guitar", "s1")
	assert.Equal(t, "chords", orig.Tags[0])
	assert.Equal(t, 2, g.HobbyCount())
	gh, _ := g.Hobby("guitar")
	assert.Equal(t, "Guitar", gh.Name)
}

func TestTree_RoundTrip(t *testing.T) {
	g := fixture(t)
	h, _ := g.Hobby("guitar")
	h.TotalTimeSpent = 90*time.Minute + 250*time.Millisecond
	h.CurrentStreak = 2
	g.RecomputeProgress("songbook")

	data, err := json.Marshal(g.ToTree())
	require.NoError(t, err)

	var tree Tree
	require.NoError(t, json.Unmarshal(data, &tree))
	back := FromTree(tree)

	assert.Equal(t, g.ToTree(), back.ToTree())

	bh, _ := back.Hobby("guitar")
	assert.Equal(t, h.TotalTimeSpent, bh.TotalTimeSpent)

	s, ok := back.Session("guitar", "s1")
	require.True(t, ok)
	assert.Equal(t, "songbook", s.ProjectID)
	loose, ok := back.Session("guitar", "s2")
	require.True(t, ok)
	assert.False(t, loose.HasProject())

	task, ok := back.Task("songbook", "t2")
	require.True(t, ok)
	assert.Equal(t, PriorityHigh, task.Priority)
}

func TestFromTree_RecomputesStaleProgress(t *testing.T) {
	tree := fixture(t).ToTree()
	tree.Hobbies[0].Projects[0].Progress = 0.9

	back := FromTree(tree)

	p, ok := back.Project("guitar", "songbook")
	require.True(t, ok)
	assert.InDelta(t, 0.5, p.Progress, 1e-9, "one of two tasks done")
}

func TestTree_JSONShape(t *testing.T) {
	g := fixture(t)
	data, err := json.Marshal(g.ToTree())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	hobbies := doc["hobbies"].([]any)
	first := hobbies[0].(map[string]any)

	assert.Equal(t, "Music", first["category"])
	assert.Contains(t, first, "totalTimeSpent")
	project := first["projects"].([]any)[0].(map[string]any)
	session := project["sessions"].([]any)[0].(map[string]any)
	assert.Equal(t, 3600.0, session["duration"])
}
