package hobby

import (
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// ARENA
// ══════════════════════════════════════════════════════════════════════════════

// Graph is the entity arena. Entities live in flat tables keyed by identity
// and point at their parent by ID. Child order is kept in per-parent ID lists
// so iteration matches insertion order.
//
// Graph is not safe for concurrent use; the store serializes access.
type Graph struct {
	hobbyOrder []string

	hobbies  map[string]*Hobby
	projects map[string]*Project
	tasks    map[string]*Task
	sessions map[string]*Session
	ideas    map[string]*Idea

	projectsByHobby      map[string][]string
	ideasByHobby         map[string][]string
	looseSessionsByHobby map[string][]string
	tasksByProject       map[string][]string
	sessionsByProject    map[string][]string
}

// NewGraph creates an empty arena.
func NewGraph() *Graph {
	return &Graph{
		hobbies:              make(map[string]*Hobby),
		projects:             make(map[string]*Project),
		tasks:                make(map[string]*Task),
		sessions:             make(map[string]*Session),
		ideas:                make(map[string]*Idea),
		projectsByHobby:      make(map[string][]string),
		ideasByHobby:         make(map[string][]string),
		looseSessionsByHobby: make(map[string][]string),
		tasksByProject:       make(map[string][]string),
		sessionsByProject:    make(map[string][]string),
	}
}

// without returns ids minus id as a fresh slice.
func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Hobbies
// ─────────────────────────────────────────────────────────────────────────────

// InsertHobby stores h at the end of the root collection.
func (g *Graph) InsertHobby(h Hobby) *Hobby {
	stored := h
	g.hobbies[h.ID] = &stored
	g.hobbyOrder = append(g.hobbyOrder, h.ID)
	return &stored
}

// Hobby locates a hobby.
func (g *Graph) Hobby(id string) (*Hobby, bool) {
	h, ok := g.hobbies[id]
	return h, ok
}

// Hobbies returns hobbies in insertion order.
func (g *Graph) Hobbies() []*Hobby {
	out := make([]*Hobby, 0, len(g.hobbyOrder))
	for _, id := range g.hobbyOrder {
		out = append(out, g.hobbies[id])
	}
	return out
}

// HobbyCount returns the number of hobbies.
func (g *Graph) HobbyCount() int {
	return len(g.hobbyOrder)
}

// RemoveHobby deletes a hobby with its projects, ideas and sessions.
func (g *Graph) RemoveHobby(id string) (Hobby, bool) {
	h, ok := g.hobbies[id]
	if !ok {
		return Hobby{}, false
	}
	for _, pid := range g.projectsByHobby[id] {
		g.dropProject(pid)
	}
	for _, iid := range g.ideasByHobby[id] {
		delete(g.ideas, iid)
	}
	for _, sid := range g.looseSessionsByHobby[id] {
		delete(g.sessions, sid)
	}
	delete(g.projectsByHobby, id)
	delete(g.ideasByHobby, id)
	delete(g.looseSessionsByHobby, id)
	delete(g.hobbies, id)
	g.hobbyOrder = without(g.hobbyOrder, id)
	return *h, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Projects
// ─────────────────────────────────────────────────────────────────────────────

// InsertProject attaches p to its hobby. Returns false if the hobby is missing.
func (g *Graph) InsertProject(p Project) (*Project, bool) {
	if _, ok := g.hobbies[p.HobbyID]; !ok {
		return nil, false
	}
	stored := p.Clone()
	g.projects[p.ID] = &stored
	g.projectsByHobby[p.HobbyID] = append(g.projectsByHobby[p.HobbyID], p.ID)
	return &stored, true
}

// Project locates a project inside the given hobby.
func (g *Graph) Project(hobbyID, id string) (*Project, bool) {
	p, ok := g.projects[id]
	if !ok || p.HobbyID != hobbyID {
		return nil, false
	}
	return p, true
}

// Projects returns the hobby's projects in insertion order.
func (g *Graph) Projects(hobbyID string) []*Project {
	ids := g.projectsByHobby[hobbyID]
	out := make([]*Project, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.projects[id])
	}
	return out
}

// AllProjects returns every project, grouped by hobby order.
func (g *Graph) AllProjects() []*Project {
	out := make([]*Project, 0, len(g.projects))
	for _, hid := range g.hobbyOrder {
		out = append(out, g.Projects(hid)...)
	}
	return out
}

// RemoveProject deletes a project with its tasks and sessions.
func (g *Graph) RemoveProject(hobbyID, id string) (Project, bool) {
	p, ok := g.Project(hobbyID, id)
	if !ok {
		return Project{}, false
	}
	removed := *p
	g.dropProject(id)
	g.projectsByHobby[hobbyID] = without(g.projectsByHobby[hobbyID], id)
	return removed, true
}

// dropProject removes a project and its children but not its entry in the
// parent's order list.
func (g *Graph) dropProject(id string) {
	for _, tid := range g.tasksByProject[id] {
		delete(g.tasks, tid)
	}
	for _, sid := range g.sessionsByProject[id] {
		delete(g.sessions, sid)
	}
	delete(g.tasksByProject, id)
	delete(g.sessionsByProject, id)
	delete(g.projects, id)
}

// RecomputeProgress derives the project's progress from its tasks and sessions.
func (g *Graph) RecomputeProgress(projectID string) float64 {
	p, ok := g.projects[projectID]
	if !ok {
		return 0
	}
	taskIDs := g.tasksByProject[projectID]
	completed := 0
	for _, tid := range taskIDs {
		if g.tasks[tid].IsCompleted {
			completed++
		}
	}
	p.Progress = ProgressFor(len(taskIDs), completed, len(g.sessionsByProject[projectID]))
	return p.Progress
}

// ─────────────────────────────────────────────────────────────────────────────
// Tasks
// ─────────────────────────────────────────────────────────────────────────────

// InsertTask attaches t to its project. Returns false if the project is missing.
func (g *Graph) InsertTask(t Task) (*Task, bool) {
	if _, ok := g.projects[t.ProjectID]; !ok {
		return nil, false
	}
	stored := t.Clone()
	g.tasks[t.ID] = &stored
	g.tasksByProject[t.ProjectID] = append(g.tasksByProject[t.ProjectID], t.ID)
	return &stored, true
}

// Task locates a task inside the given project.
func (g *Graph) Task(projectID, id string) (*Task, bool) {
	t, ok := g.tasks[id]
	if !ok || t.ProjectID != projectID {
		return nil, false
	}
	return t, true
}

// Tasks returns the project's tasks in insertion order.
func (g *Graph) Tasks(projectID string) []*Task {
	ids := g.tasksByProject[projectID]
	out := make([]*Task, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.tasks[id])
	}
	return out
}

// RemoveTask deletes a task from its project.
func (g *Graph) RemoveTask(projectID, id string) (Task, bool) {
	t, ok := g.Task(projectID, id)
	if !ok {
		return Task{}, false
	}
	removed := *t
	delete(g.tasks, id)
	g.tasksByProject[projectID] = without(g.tasksByProject[projectID], id)
	return removed, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Sessions
// ─────────────────────────────────────────────────────────────────────────────

// InsertSession attaches s to its project, or to its hobby when ProjectID is
// empty. Returns false if the hobby is missing or the project does not
// belong to it.
func (g *Graph) InsertSession(s Session) (*Session, bool) {
	if _, ok := g.hobbies[s.HobbyID]; !ok {
		return nil, false
	}
	if s.HasProject() {
		if _, ok := g.Project(s.HobbyID, s.ProjectID); !ok {
			return nil, false
		}
	}
	stored := s.Clone()
	g.sessions[s.ID] = &stored
	if s.HasProject() {
		g.sessionsByProject[s.ProjectID] = append(g.sessionsByProject[s.ProjectID], s.ID)
	} else {
		g.looseSessionsByHobby[s.HobbyID] = append(g.looseSessionsByHobby[s.HobbyID], s.ID)
	}
	return &stored, true
}

// Session locates a session inside the given hobby.
func (g *Graph) Session(hobbyID, id string) (*Session, bool) {
	s, ok := g.sessions[id]
	if !ok || s.HobbyID != hobbyID {
		return nil, false
	}
	return s, true
}

// SessionsForHobby flattens the hobby's sessions: every project's sessions in
// project order, followed by sessions logged without a project.
func (g *Graph) SessionsForHobby(hobbyID string) []*Session {
	var out []*Session
	for _, pid := range g.projectsByHobby[hobbyID] {
		out = append(out, g.SessionsForProject(pid)...)
	}
	for _, sid := range g.looseSessionsByHobby[hobbyID] {
		out = append(out, g.sessions[sid])
	}
	return out
}

// SessionsForProject returns the project's sessions in insertion order.
func (g *Graph) SessionsForProject(projectID string) []*Session {
	ids := g.sessionsByProject[projectID]
	out := make([]*Session, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.sessions[id])
	}
	return out
}

// RemoveSession detaches and deletes a session.
func (g *Graph) RemoveSession(hobbyID, id string) (Session, bool) {
	s, ok := g.Session(hobbyID, id)
	if !ok {
		return Session{}, false
	}
	removed := *s
	delete(g.sessions, id)
	if removed.HasProject() {
		g.sessionsByProject[removed.ProjectID] = without(g.sessionsByProject[removed.ProjectID], id)
	} else {
		g.looseSessionsByHobby[hobbyID] = without(g.looseSessionsByHobby[hobbyID], id)
	}
	return removed, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Ideas
// ─────────────────────────────────────────────────────────────────────────────

// InsertIdea attaches i to its hobby. Returns false if the hobby is missing.
func (g *Graph) InsertIdea(i Idea) (*Idea, bool) {
	if _, ok := g.hobbies[i.HobbyID]; !ok {
		return nil, false
	}
	stored := i.Clone()
	g.ideas[i.ID] = &stored
	g.ideasByHobby[i.HobbyID] = append(g.ideasByHobby[i.HobbyID], i.ID)
	return &stored, true
}

// Idea locates an idea inside the given hobby.
func (g *Graph) Idea(hobbyID, id string) (*Idea, bool) {
	i, ok := g.ideas[id]
	if !ok || i.HobbyID != hobbyID {
		return nil, false
	}
	return i, true
}

// Ideas returns the hobby's ideas in insertion order.
func (g *Graph) Ideas(hobbyID string) []*Idea {
	ids := g.ideasByHobby[hobbyID]
	out := make([]*Idea, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.ideas[id])
	}
	return out
}

// RemoveIdea deletes an idea from its hobby.
func (g *Graph) RemoveIdea(hobbyID, id string) (Idea, bool) {
	i, ok := g.Idea(hobbyID, id)
	if !ok {
		return Idea{}, false
	}
	removed := *i
	delete(g.ideas, id)
	g.ideasByHobby[hobbyID] = without(g.ideasByHobby[hobbyID], id)
	return removed, true
}

// ══════════════════════════════════════════════════════════════════════════════
// AGGREGATE FACTS
// ══════════════════════════════════════════════════════════════════════════════

// SessionCount returns the number of sessions across all hobbies.
func (g *Graph) SessionCount() int {
	return len(g.sessions)
}

// CompletedTaskCount returns the number of completed tasks.
func (g *Graph) CompletedTaskCount() int {
	n := 0
	for _, t := range g.tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}

// CompletedProjectCount returns the number of completed projects.
func (g *Graph) CompletedProjectCount() int {
	n := 0
	for _, p := range g.projects {
		if p.IsCompleted {
			n++
		}
	}
	return n
}

// TotalTimeSpent sums every hobby's incremental counter.
func (g *Graph) TotalTimeSpent() time.Duration {
	var total time.Duration
	for _, h := range g.hobbies {
		total += h.TotalTimeSpent
	}
	return total
}

// RecomputedTimeSpent sums the durations of the hobby's current sessions.
// It differs from Hobby.TotalTimeSpent once sessions have been deleted.
func (g *Graph) RecomputedTimeSpent(hobbyID string) time.Duration {
	var total time.Duration
	for _, s := range g.SessionsForHobby(hobbyID) {
		total += s.Duration
	}
	return total
}

// BestCurrentStreak returns the highest current streak across hobbies.
func (g *Graph) BestCurrentStreak() int {
	best := 0
	for _, h := range g.hobbies {
		if h.CurrentStreak > best {
			best = h.CurrentStreak
		}
	}
	return best
}

// BestLongestStreak returns the highest longest streak across hobbies.
func (g *Graph) BestLongestStreak() int {
	best := 0
	for _, h := range g.hobbies {
		if h.LongestStreak > best {
			best = h.LongestStreak
		}
	}
	return best
}

// ══════════════════════════════════════════════════════════════════════════════
// COPY
// ══════════════════════════════════════════════════════════════════════════════

// Clone returns a deep copy that shares nothing with g.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	c.hobbyOrder = cloneStrings(g.hobbyOrder)
	for id, h := range g.hobbies {
		v := *h
		c.hobbies[id] = &v
	}
	for id, p := range g.projects {
		v := p.Clone()
		c.projects[id] = &v
	}
	for id, t := range g.tasks {
		v := t.Clone()
		c.tasks[id] = &v
	}
	for id, s := range g.sessions {
		v := s.Clone()
		c.sessions[id] = &v
	}
	for id, i := range g.ideas {
		v := i.Clone()
		c.ideas[id] = &v
	}
	copyIndex(c.projectsByHobby, g.projectsByHobby)
	copyIndex(c.ideasByHobby, g.ideasByHobby)
	copyIndex(c.looseSessionsByHobby, g.looseSessionsByHobby)
	copyIndex(c.tasksByProject, g.tasksByProject)
	copyIndex(c.sessionsByProject, g.sessionsByProject)
	return c
}

func copyIndex(dst, src map[string][]string) {
	for k, ids := range src {
		dst[k] = cloneStrings(ids)
	}
}
