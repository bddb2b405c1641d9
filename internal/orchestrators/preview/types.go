package preview

import (
	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	previewsession "github.com/KirkDiggler/rpg-story/internal/repositories/preview_session"
)

// Event types published on the bus
const (
	EventSceneEntered  = "preview.scene_entered"
	EventValuesChanged = "preview.values_changed"
	EventEnded         = "preview.ended"
)

// Context keys set on published events
const (
	EventKeySessionID = "session_id"
	EventKeySceneID   = "scene_id"
	EventKeyChanges   = "changes"
	EventKeyEnding    = "ending"
)

// StartSessionInput starts a preview. An empty SceneID starts at the
// story's start scene.
type StartSessionInput struct {
	StoryID string
	SceneID string
}

// SessionInput identifies a session for commands that take no arguments
type SessionInput struct {
	SessionID string
}

// SelectChoiceInput picks an option of the current choice
type SelectChoiceInput struct {
	SessionID string
	OptionID  string

	// PricePaid reports that the viewer paid the option's unlock price
	PricePaid bool
}

// ResolveInput reports the result of a QTE or dialogue task
type ResolveInput struct {
	SessionID string
	Success   bool
}

// SessionOutput is returned by every command that touches a session
type SessionOutput struct {
	Session *previewsession.Session
	View    playback.View

	// Changed holds per-value deltas caused by the command
	Changed map[string]int
}

// EndSessionOutput reports whether a session was removed
type EndSessionOutput struct {
	Deleted bool
}
