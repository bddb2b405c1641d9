// Package story defines the authored interactive-story model: stories,
// scenes, typed scene elements and the global values they mutate.
//
// A Story owns every child collection. Relations between entities are id
// lookups, never embedded values, so a Story value is the single source of
// truth. Nothing in this package mutates a Story in place; editor helpers
// return a new Story sharing unchanged children.
package story

// SceneType classifies a scene for playback and graph styling
type SceneType string

// Scene types
const (
	SceneNormal    SceneType = "normal"
	SceneStart     SceneType = "start"
	SceneEnding    SceneType = "ending"
	SceneBadEnding SceneType = "bad-ending"
)

// CharacterRole describes a character's part in the story
type CharacterRole string

// Character roles. At most one character may be the protagonist.
const (
	RoleProtagonist CharacterRole = "protagonist"
	RoleSupporting  CharacterRole = "supporting"
	RoleAntagonist  CharacterRole = "antagonist"
)

// Operator is a comparison used by unlock conditions
type Operator string

// Unlock condition operators
const (
	OperatorGT  Operator = "gt"
	OperatorLT  Operator = "lt"
	OperatorEQ  Operator = "eq"
	OperatorGTE Operator = "gte"
	OperatorLTE Operator = "lte"
)

// Story is the root aggregate
type Story struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Author       string        `json:"author,omitempty"`
	Description  string        `json:"description,omitempty"`
	Scenes       []*Scene      `json:"scenes"`
	Characters   []*Character  `json:"characters,omitempty"`
	Locations    []*Location   `json:"locations,omitempty"`
	GlobalValues []*GlobalValue `json:"globalValues,omitempty"`
}

// Scene is a node in the narrative graph
type Scene struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Type       SceneType `json:"type"`
	LocationID string    `json:"locationId,omitempty"`
	Elements   Elements  `json:"elements"`

	// NextSceneID is the linear successor used once the last element is done
	NextSceneID string `json:"nextSceneId,omitempty"`

	// RevivalPointID is only meaningful for bad-ending scenes
	RevivalPointID string `json:"revivalPointId,omitempty"`

	// UnlockPrice is presentation-only metadata
	UnlockPrice int `json:"unlockPrice,omitempty"`
}

// Character is a speaking participant referenced by dialogue elements
type Character struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Role        CharacterRole `json:"role,omitempty"`
	Description string        `json:"description,omitempty"`
}

// Location is where a scene takes place
type Location struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GlobalValue is a named integer counter tracked across a playthrough.
// The running value of a playthrough lives in the playback state, never here.
type GlobalValue struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	InitialValue int    `json:"initialValue"`
}

// ValueChange is a signed delta applied when a branch is taken
type ValueChange struct {
	ValueID string `json:"valueId"`
	Change  int    `json:"change"`
}

// UnlockCondition is a predicate over a global value's current reading
type UnlockCondition struct {
	ValueID     string   `json:"valueId"`
	Operator    Operator `json:"operator"`
	TargetValue int      `json:"targetValue"`
}

// Outcome is the success or failure branch of a QTE or dialogue task
type Outcome struct {
	SceneID      string        `json:"sceneId,omitempty"`
	Transition   string        `json:"transition,omitempty"`
	ValueChanges []ValueChange `json:"valueChanges,omitempty"`
}

// IsZero reports whether the outcome carries nothing
func (o Outcome) IsZero() bool {
	return o.SceneID == "" && o.Transition == "" && len(o.ValueChanges) == 0
}

// ChoiceOption is one selectable branch of a choice element
type ChoiceOption struct {
	ID               string            `json:"id"`
	Text             string            `json:"text"`
	NextSceneID      string            `json:"nextSceneId,omitempty"`
	ValueChanges     []ValueChange     `json:"valueChanges,omitempty"`
	Locked           bool              `json:"locked,omitempty"`
	UnlockPrice      int               `json:"unlockPrice,omitempty"`
	UnlockConditions []UnlockCondition `json:"unlockConditions,omitempty"`
}

// HasUnlockPath reports whether a locked option can ever be opened
func (o *ChoiceOption) HasUnlockPath() bool {
	return !o.Locked || o.UnlockPrice > 0 || len(o.UnlockConditions) > 0
}
