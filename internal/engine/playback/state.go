// Package playback walks a story one element at a time. A Player owns the
// traversal cursor and the running global values of a single playthrough;
// create one per preview session.
//
// Lock policy is not enforced here. Callers decide whether a locked option may
// be selected before calling SelectChoice.
package playback

import (
	"errors"

	"github.com/KirkDiggler/rpg-story/internal/engine/values"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
)

// Phase is the coarse position of the cursor
type Phase string

// Phases
const (
	PhaseInScene Phase = "in-scene"
	PhaseEnded   Phase = "ended"
)

// Ending classifies a terminal state
type Ending string

// Endings
const (
	EndingNone         Ending = ""
	EndingLinearNoNext Ending = "linear-no-next"
	EndingNormal       Ending = "normal-ending"
	EndingBad          Ending = "bad-ending"
)

// IntroIndex is the element index of a freshly entered scene; only the
// scene's location is shown.
const IntroIndex = -1

// Errors returned for commands that do not apply to the current state. The
// state is left unchanged whenever one is returned.
var (
	ErrNoScenes        = errors.New("story has no scenes")
	ErrUnknownScene    = errors.New("scene not found")
	ErrEnded           = errors.New("playthrough has ended")
	ErrNotAtChoice     = errors.New("current element is not a choice")
	ErrUnknownOption   = errors.New("option not found")
	ErrNotAtQTE        = errors.New("current element is not a qte")
	ErrNotAtTask       = errors.New("current element is not a dialogue task")
	ErrRevivalNotReady = errors.New("no revival available")
)

// State is the serializable cursor of a playthrough
type State struct {
	StoryID      string `json:"storyId"`
	SceneID      string `json:"sceneId"`
	ElementIndex int    `json:"elementIndex"`
	Phase        Phase  `json:"phase"`
	Ending       Ending `json:"ending,omitempty"`

	// LastElementShown is set once the scene has nothing left to present
	LastElementShown bool `json:"lastElementShown"`

	Values   values.Values `json:"values"`
	Revivals int           `json:"revivals"`

	// History lists entered scene ids in order, repeats included
	History []string `json:"history"`
}

// Clone returns a deep copy
func (s State) Clone() State {
	out := s
	out.Values = s.Values.Clone()
	out.History = append([]string(nil), s.History...)
	return out
}

// Ended reports whether the playthrough is in a terminal state
func (s State) Ended() bool {
	return s.Phase == PhaseEnded
}

// View is what a preview surface renders for the current state
type View struct {
	Scene        *story.Scene
	LocationName string

	// Element is nil during the scene intro and after the scene ends
	Element      story.Element
	ElementIndex int
	ElementCount int

	Ended            bool
	Ending           Ending
	RevivalAvailable bool

	Values values.Values
}
