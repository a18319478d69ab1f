// Package sse streams per-identity change events to connected clients as Server-Sent Events.
package sse

import (
	"time"

	"github.com/studytrack/studytrack-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	EventGoalCreated   EventType = "goal.created"
	EventGoalUpdated   EventType = "goal.updated"
	EventGoalCompleted EventType = "goal.completed"
	EventGoalDeleted   EventType = "goal.deleted"

	EventSessionCreated EventType = "session.created"
	EventSessionDeleted EventType = "session.deleted"

	EventResourceCreated EventType = "resource.created"
	EventResourceUpdated EventType = "resource.updated"
	EventResourceDeleted EventType = "resource.deleted"

	EventProfileUpdated  EventType = "profile.updated"
	EventSettingsUpdated EventType = "settings.updated"

	// EventRoleChanged is delivered to the identity whose role changed.
	EventRoleChanged EventType = "role.changed"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// Identity scopes delivery to clients connected as that identity.
	// Empty means every client, which only heartbeats use.
	Identity string `json:"-"`
}

// GoalEventData is the payload for goal created, updated and completed events.
type GoalEventData struct {
	Goal *domain.Goal `json:"goal"`
}

// DeletedEventData is the payload for deletions keyed by title or ID.
type DeletedEventData struct {
	Key       string    `json:"key"`
	DeletedAt time.Time `json:"deleted_at"`
}

// SessionEventData is the payload for session created events.
type SessionEventData struct {
	Session *domain.StudySession `json:"session"`
}

// SessionsDeletedEventData is the payload for session deletions. Deleting by
// subject can remove several sessions at once.
type SessionsDeletedEventData struct {
	IDs       []string  `json:"ids,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Count     int       `json:"count"`
	DeletedAt time.Time `json:"deleted_at"`
}

// ResourceEventData is the payload for resource created and updated events.
type ResourceEventData struct {
	Resource *domain.Resource `json:"resource"`
}

// ProfileEventData is the payload for profile events.
type ProfileEventData struct {
	Profile *domain.Profile `json:"profile"`
}

// SettingsEventData is the payload for settings events.
type SettingsEventData struct {
	Settings *domain.UserSettings `json:"settings"`
}

// RoleChangedEventData tells an identity its role changed and who changed it.
type RoleChangedEventData struct {
	Role      domain.Role `json:"role"`
	ChangedBy string      `json:"changed_by"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

func newEvent(t EventType, identity string, data any) Event {
	return Event{
		Type:      t,
		Identity:  identity,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewGoalEvent creates a goal event of type t (created, updated or completed).
func NewGoalEvent(t EventType, identity string, goal *domain.Goal) Event {
	return newEvent(t, identity, GoalEventData{Goal: goal})
}

// NewGoalDeletedEvent creates a goal deletion event.
func NewGoalDeletedEvent(identity, title string) Event {
	return newEvent(EventGoalDeleted, identity, DeletedEventData{Key: title, DeletedAt: time.Now()})
}

// NewSessionCreatedEvent creates a session creation event.
func NewSessionCreatedEvent(identity string, session *domain.StudySession) Event {
	return newEvent(EventSessionCreated, identity, SessionEventData{Session: session})
}

// NewSessionsDeletedEvent creates a session deletion event for one ID or a whole subject.
func NewSessionsDeletedEvent(identity, subject string, ids []string, count int) Event {
	return newEvent(EventSessionDeleted, identity, SessionsDeletedEventData{
		IDs:       ids,
		Subject:   subject,
		Count:     count,
		DeletedAt: time.Now(),
	})
}

// NewResourceEvent creates a resource event of type t (created or updated).
func NewResourceEvent(t EventType, identity string, resource *domain.Resource) Event {
	return newEvent(t, identity, ResourceEventData{Resource: resource})
}

// NewResourceDeletedEvent creates a resource deletion event.
func NewResourceDeletedEvent(identity, title string) Event {
	return newEvent(EventResourceDeleted, identity, DeletedEventData{Key: title, DeletedAt: time.Now()})
}

// NewProfileUpdatedEvent creates a profile event.
func NewProfileUpdatedEvent(profile *domain.Profile) Event {
	return newEvent(EventProfileUpdated, profile.Identity, ProfileEventData{Profile: profile})
}

// NewSettingsUpdatedEvent creates a settings event.
func NewSettingsUpdatedEvent(settings *domain.UserSettings) Event {
	return newEvent(EventSettingsUpdated, settings.Identity, SettingsEventData{Settings: settings})
}

// NewRoleChangedEvent creates the event sent to target after changedBy assigned it role.
func NewRoleChangedEvent(target string, role domain.Role, changedBy string) Event {
	return newEvent(EventRoleChanged, target, RoleChangedEventData{Role: role, ChangedBy: changedBy})
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return newEvent(EventHeartbeat, "", HeartbeatEventData{ServerTime: time.Now()})
}
