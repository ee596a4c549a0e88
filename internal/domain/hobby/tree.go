package hobby

import (
	"math"
	"time"
)

// TreeVersion is the current document format version.
const TreeVersion = 1

// Tree is the nested, serializable form of the arena. Child records carry no
// parent IDs: ownership is expressed by nesting.
type Tree struct {
	Version int           `json:"version"`
	Hobbies []HobbyRecord `json:"hobbies"`
}

// HobbyRecord is a hobby with its owned children.
type HobbyRecord struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       Category        `json:"category"`
	Color          string          `json:"color"`
	Icon           string          `json:"icon"`
	CreatedDate    time.Time       `json:"createdDate"`
	TotalTimeSpent float64         `json:"totalTimeSpent"` // seconds
	CurrentStreak  int             `json:"currentStreak"`
	LongestStreak  int             `json:"longestStreak"`
	Projects       []ProjectRecord `json:"projects"`
	Ideas          []IdeaRecord    `json:"ideas"`
	Sessions       []SessionRecord `json:"sessions"` // sessions without a project
}

// ProjectRecord is a project with its tasks and sessions.
type ProjectRecord struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	StartDate      time.Time       `json:"startDate"`
	TargetEndDate  *time.Time      `json:"targetEndDate,omitempty"`
	CompletionDate *time.Time      `json:"completionDate,omitempty"`
	Progress       float64         `json:"progress"`
	IsCompleted    bool            `json:"isCompleted"`
	Tasks          []TaskRecord    `json:"tasks"`
	Sessions       []SessionRecord `json:"sessions"`
}

// TaskRecord is a serialized task.
type TaskRecord struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	IsCompleted   bool       `json:"isCompleted"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	CreatedDate   time.Time  `json:"createdDate"`
	Priority      Priority   `json:"priority"`
}

// SessionRecord is a serialized session.
type SessionRecord struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Duration  float64   `json:"duration"` // seconds
	Notes     string    `json:"notes"`
	Tags      []string  `json:"tags"`
	MediaURLs []string  `json:"mediaUrls,omitempty"`
	XPEarned  int       `json:"xpEarned"`
}

// IdeaRecord is a serialized idea.
type IdeaRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Links       []string  `json:"links"`
	Tags        []string  `json:"tags"`
	ImageURLs   []string  `json:"imageUrls,omitempty"`
	CreatedDate time.Time `json:"createdDate"`
	IsFavorite  bool      `json:"isFavorite"`
}

func seconds(d time.Duration) float64 {
	return d.Seconds()
}

func fromSeconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// ToTree renders the arena as a nested document in collection order.
func (g *Graph) ToTree() Tree {
	tree := Tree{Version: TreeVersion, Hobbies: make([]HobbyRecord, 0, len(g.hobbyOrder))}
	for _, h := range g.Hobbies() {
		rec := HobbyRecord{
			ID:             h.ID,
			Name:           h.Name,
			Category:       h.Category,
			Color:          h.Color,
			Icon:           h.Icon,
			CreatedDate:    h.CreatedDate,
			TotalTimeSpent: seconds(h.TotalTimeSpent),
			CurrentStreak:  h.CurrentStreak,
			LongestStreak:  h.LongestStreak,
			Projects:       []ProjectRecord{},
			Ideas:          []IdeaRecord{},
			Sessions:       []SessionRecord{},
		}
		for _, p := range g.Projects(h.ID) {
			prec := ProjectRecord{
				ID:             p.ID,
				Name:           p.Name,
				Description:    p.Description,
				StartDate:      p.StartDate,
				TargetEndDate:  cloneTime(p.TargetEndDate),
				CompletionDate: cloneTime(p.CompletionDate),
				Progress:       p.Progress,
				IsCompleted:    p.IsCompleted,
				Tasks:          []TaskRecord{},
				Sessions:       []SessionRecord{},
			}
			for _, t := range g.Tasks(p.ID) {
				prec.Tasks = append(prec.Tasks, TaskRecord{
					ID:            t.ID,
					Title:         t.Title,
					Description:   t.Description,
					IsCompleted:   t.IsCompleted,
					CompletedDate: cloneTime(t.CompletedDate),
					CreatedDate:   t.CreatedDate,
					Priority:      t.Priority,
				})
			}
			for _, s := range g.SessionsForProject(p.ID) {
				prec.Sessions = append(prec.Sessions, sessionRecord(s))
			}
			rec.Projects = append(rec.Projects, prec)
		}
		for _, i := range g.Ideas(h.ID) {
			rec.Ideas = append(rec.Ideas, IdeaRecord{
				ID:          i.ID,
				Title:       i.Title,
				Content:     i.Content,
				Links:       cloneStrings(i.Links),
				Tags:        cloneStrings(i.Tags),
				ImageURLs:   cloneStrings(i.ImageURLs),
				CreatedDate: i.CreatedDate,
				IsFavorite:  i.IsFavorite,
			})
		}
		for _, sid := range g.looseSessionsByHobby[h.ID] {
			rec.Sessions = append(rec.Sessions, sessionRecord(g.sessions[sid]))
		}
		tree.Hobbies = append(tree.Hobbies, rec)
	}
	return tree
}

func sessionRecord(s *Session) SessionRecord {
	return SessionRecord{
		ID:        s.ID,
		Date:      s.Date,
		Duration:  seconds(s.Duration),
		Notes:     s.Notes,
		Tags:      cloneStrings(s.Tags),
		MediaURLs: cloneStrings(s.MediaURLs),
		XPEarned:  s.XPEarned,
	}
}

// FromTree rebuilds an arena from a nested document. Parent IDs are taken
// from the nesting. Project progress is recomputed from the loaded tasks and
// sessions; the stored value is ignored.
func FromTree(tree Tree) *Graph {
	g := NewGraph()
	for _, rec := range tree.Hobbies {
		g.InsertHobby(Hobby{
			ID:             rec.ID,
			Name:           rec.Name,
			Category:       rec.Category,
			Color:          rec.Color,
			Icon:           rec.Icon,
			CreatedDate:    rec.CreatedDate,
			TotalTimeSpent: fromSeconds(rec.TotalTimeSpent),
			CurrentStreak:  rec.CurrentStreak,
			LongestStreak:  rec.LongestStreak,
		})
		for _, prec := range rec.Projects {
			g.InsertProject(Project{
				ID:             prec.ID,
				HobbyID:        rec.ID,
				Name:           prec.Name,
				Description:    prec.Description,
				StartDate:      prec.StartDate,
				TargetEndDate:  prec.TargetEndDate,
				CompletionDate: prec.CompletionDate,
				Progress:       prec.Progress,
				IsCompleted:    prec.IsCompleted,
			})
			for _, t := range prec.Tasks {
				g.InsertTask(Task{
					ID:            t.ID,
					ProjectID:     prec.ID,
					Title:         t.Title,
					Description:   t.Description,
					IsCompleted:   t.IsCompleted,
					CompletedDate: t.CompletedDate,
					CreatedDate:   t.CreatedDate,
					Priority:      t.Priority,
				})
			}
			for _, s := range prec.Sessions {
				g.InsertSession(fromSessionRecord(s, rec.ID, prec.ID))
			}
			g.RecomputeProgress(prec.ID)
		}
		for _, i := range rec.Ideas {
			g.InsertIdea(Idea{
				ID:          i.ID,
				HobbyID:     rec.ID,
				Title:       i.Title,
				Content:     i.Content,
				Links:       i.Links,
				Tags:        i.Tags,
				ImageURLs:   i.ImageURLs,
				CreatedDate: i.CreatedDate,
				IsFavorite:  i.IsFavorite,
			})
		}
		for _, s := range rec.Sessions {
			g.InsertSession(fromSessionRecord(s, rec.ID, ""))
		}
	}
	return g
}

func fromSessionRecord(s SessionRecord, hobbyID, projectID string) Session {
	return Session{
		ID:        s.ID,
		HobbyID:   hobbyID,
		ProjectID: projectID,
		Date:      s.Date,
		Duration:  fromSeconds(s.Duration),
		Notes:     s.Notes,
		Tags:      s.Tags,
		MediaURLs: s.MediaURLs,
		XPEarned:  s.XPEarned,
	}
}
