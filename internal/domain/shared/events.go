package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types published by the store after a mutation commits.
const (
	// Graph events
	EventHobbyCreated     EventType = "hobby.created"
	EventHobbyDeleted     EventType = "hobby.deleted"
	EventProjectCompleted EventType = "project.completed"
	EventSessionLogged    EventType = "session.logged"
	EventTaskCompleted    EventType = "task.completed"

	// Progress events
	EventXPGained            EventType = "progress.xp_gained"
	EventLevelUp             EventType = "progress.level_up"
	EventStreakUpdated       EventType = "streak.updated"
	EventAchievementUnlocked EventType = "achievement.unlocked"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the entity that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for logging.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string, at time.Time) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   at,
		AggregateId: aggregateID,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Graph Events
// ═══════════════════════════════════════════════════════════════════════════

// HobbyCreatedEvent is emitted when a hobby is added.
type HobbyCreatedEvent struct {
	BaseEvent
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Payload implements Event interface.
func (e HobbyCreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"name":     e.Name,
		"category": e.Category,
	}
}

// NewHobbyCreatedEvent creates a new HobbyCreatedEvent.
func NewHobbyCreatedEvent(hobbyID, name, category string, at time.Time) HobbyCreatedEvent {
	return HobbyCreatedEvent{
		BaseEvent: NewBaseEvent(EventHobbyCreated, hobbyID, at),
		Name:      name,
		Category:  category,
	}
}

// HobbyDeletedEvent is emitted when a hobby and everything it owns is removed.
type HobbyDeletedEvent struct {
	BaseEvent
	Name string `json:"name"`
}

// Payload implements Event interface.
func (e HobbyDeletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"name": e.Name,
	}
}

// NewHobbyDeletedEvent creates a new HobbyDeletedEvent.
func NewHobbyDeletedEvent(hobbyID, name string, at time.Time) HobbyDeletedEvent {
	return HobbyDeletedEvent{
		BaseEvent: NewBaseEvent(EventHobbyDeleted, hobbyID, at),
		Name:      name,
	}
}

// SessionLoggedEvent is emitted when a practice session is recorded.
type SessionLoggedEvent struct {
	BaseEvent
	SessionID string        `json:"session_id"`
	ProjectID string        `json:"project_id,omitempty"`
	Duration  time.Duration `json:"duration"`
	XPEarned  int           `json:"xp_earned"`
}

// Payload implements Event interface.
func (e SessionLoggedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id": e.SessionID,
		"project_id": e.ProjectID,
		"duration":   e.Duration.String(),
		"xp_earned":  e.XPEarned,
	}
}

// NewSessionLoggedEvent creates a new SessionLoggedEvent.
func NewSessionLoggedEvent(hobbyID, sessionID, projectID string, d time.Duration, xp int, at time.Time) SessionLoggedEvent {
	return SessionLoggedEvent{
		BaseEvent: NewBaseEvent(EventSessionLogged, hobbyID, at),
		SessionID: sessionID,
		ProjectID: projectID,
		Duration:  d,
		XPEarned:  xp,
	}
}

// TaskCompletedEvent is emitted when a task is toggled to complete.
type TaskCompletedEvent struct {
	BaseEvent
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
}

// Payload implements Event interface.
func (e TaskCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"task_id": e.TaskID,
		"title":   e.Title,
	}
}

// NewTaskCompletedEvent creates a new TaskCompletedEvent.
func NewTaskCompletedEvent(projectID, taskID, title string, at time.Time) TaskCompletedEvent {
	return TaskCompletedEvent{
		BaseEvent: NewBaseEvent(EventTaskCompleted, projectID, at),
		TaskID:    taskID,
		Title:     title,
	}
}

// ProjectCompletedEvent is emitted when a project is marked complete.
type ProjectCompletedEvent struct {
	BaseEvent
	HobbyID string `json:"hobby_id"`
	Name    string `json:"name"`
}

// Payload implements Event interface.
func (e ProjectCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"hobby_id": e.HobbyID,
		"name":     e.Name,
	}
}

// NewProjectCompletedEvent creates a new ProjectCompletedEvent.
func NewProjectCompletedEvent(projectID, hobbyID, name string, at time.Time) ProjectCompletedEvent {
	return ProjectCompletedEvent{
		BaseEvent: NewBaseEvent(EventProjectCompleted, projectID, at),
		HobbyID:   hobbyID,
		Name:      name,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Progress Events
// ═══════════════════════════════════════════════════════════════════════════

// XPGainedEvent is emitted when the profile gains XP.
type XPGainedEvent struct {
	BaseEvent
	Amount   int    `json:"amount"`
	NewTotal int    `json:"new_total"`
	Source   string `json:"source"` // "session" or "task_completion"
}

// Payload implements Event interface.
func (e XPGainedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"amount":    e.Amount,
		"new_total": e.NewTotal,
		"source":    e.Source,
	}
}

// NewXPGainedEvent creates a new XPGainedEvent.
func NewXPGainedEvent(profileID string, amount, newTotal int, source string, at time.Time) XPGainedEvent {
	return XPGainedEvent{
		BaseEvent: NewBaseEvent(EventXPGained, profileID, at),
		Amount:    amount,
		NewTotal:  newTotal,
		Source:    source,
	}
}

// LevelUpEvent is emitted when an XP award crosses one or more level thresholds.
type LevelUpEvent struct {
	BaseEvent
	OldLevel int `json:"old_level"`
	NewLevel int `json:"new_level"`
}

// Payload implements Event interface.
func (e LevelUpEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"old_level": e.OldLevel,
		"new_level": e.NewLevel,
	}
}

// NewLevelUpEvent creates a new LevelUpEvent.
func NewLevelUpEvent(profileID string, oldLevel, newLevel int, at time.Time) LevelUpEvent {
	return LevelUpEvent{
		BaseEvent: NewBaseEvent(EventLevelUp, profileID, at),
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
	}
}

// StreakUpdatedEvent is emitted when a hobby's current streak changes.
type StreakUpdatedEvent struct {
	BaseEvent
	OldStreak     int  `json:"old_streak"`
	NewStreak     int  `json:"new_streak"`
	LongestStreak int  `json:"longest_streak"`
	IsNewRecord   bool `json:"is_new_record"`
}

// Payload implements Event interface.
func (e StreakUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"old_streak":     e.OldStreak,
		"new_streak":     e.NewStreak,
		"longest_streak": e.LongestStreak,
		"is_new_record":  e.IsNewRecord,
	}
}

// NewStreakUpdatedEvent creates a new StreakUpdatedEvent.
func NewStreakUpdatedEvent(hobbyID string, oldStreak, newStreak, longest int, record bool, at time.Time) StreakUpdatedEvent {
	return StreakUpdatedEvent{
		BaseEvent:     NewBaseEvent(EventStreakUpdated, hobbyID, at),
		OldStreak:     oldStreak,
		NewStreak:     newStreak,
		LongestStreak: longest,
		IsNewRecord:   record,
	}
}

// AchievementUnlockedEvent is emitted for every newly unlocked achievement.
type AchievementUnlockedEvent struct {
	BaseEvent
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Payload implements Event interface.
func (e AchievementUnlockedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"key":   e.Key,
		"title": e.Title,
	}
}

// NewAchievementUnlockedEvent creates a new AchievementUnlockedEvent.
func NewAchievementUnlockedEvent(profileID, key, title string, at time.Time) AchievementUnlockedEvent {
	return AchievementUnlockedEvent{
		BaseEvent: NewBaseEvent(EventAchievementUnlocked, profileID, at),
		Key:       key,
		Title:     title,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Bus Interfaces
// ═══════════════════════════════════════════════════════════════════════════

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
