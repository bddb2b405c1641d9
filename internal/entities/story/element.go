package story

import "encoding/json"

// ElementType is the discriminator of a scene element
type ElementType string

// Element types
const (
	ElementNarration    ElementType = "narration"
	ElementDialogue     ElementType = "dialogue"
	ElementThought      ElementType = "thought"
	ElementChoice       ElementType = "choice"
	ElementQTE          ElementType = "qte"
	ElementDialogueTask ElementType = "dialogueTask"
)

// QTEType selects which input sequence a QTE uses
type QTEType string

// QTE types
const (
	QTEAction QTEType = "action"
	QTECombo  QTEType = "combo"
	QTEUnlock QTEType = "unlock"
)

// Element is one beat of content within a scene. The set of implementations
// is closed to this package; switch on the concrete type to handle each one.
//
//	switch el := el.(type) {
//	case *story.Choice:
//	case *story.QTE:
//	}
type Element interface {
	ElementID() string
	ElementOrder() int
	Type() ElementType
	isElement()
}

// Base carries the fields every element has
type Base struct {
	ID    string
	Order int
}

// ElementID returns the element id, unique within its scene
func (b Base) ElementID() string { return b.ID }

// ElementOrder returns the presentation order key
func (b Base) ElementOrder() int { return b.Order }

// Narration is narrator text with an optional sound cue
type Narration struct {
	Base
	Text        string
	SoundEffect string
}

// Dialogue is a line spoken by a character
type Dialogue struct {
	Base
	CharacterID string
	Text        string
}

// Thought is a character's inner monologue
type Thought struct {
	Base
	CharacterID string
	Text        string
}

// Choice presents selectable options. The editor caps options at three but
// nothing here assumes a fixed count.
type Choice struct {
	Base
	Text    string
	Options []ChoiceOption
}

// Option returns the option with the given id
func (c *Choice) Option(id string) (*ChoiceOption, bool) {
	for i := range c.Options {
		if c.Options[i].ID == id {
			return &c.Options[i], true
		}
	}
	return nil, false
}

// QTE is a timed quick-reaction event. TimeLimit is advisory metadata for the
// presentation layer; nothing in the core enforces it.
type QTE struct {
	Base
	Description       string
	IntroText         string
	TimeLimit         int
	QTEType           QTEType
	KeySequence       string
	DoubleKey         bool
	DirectionSequence string
	UnlockPattern     []int
	Success           Outcome
	Failure           Outcome
}

// DialogueTask is a negotiation with a target character
type DialogueTask struct {
	Base
	Goal              string
	TargetCharacterID string
	Background        string
	OpeningLine       string
	CharacterIntro    string
	DialogueTopics    []string
	Success           Outcome
	Failure           Outcome
}

// UnknownElement keeps an element whose type this version does not know.
// It is carried through encoding untouched and ignored by traversal.
type UnknownElement struct {
	Base
	RawType string
	Raw     json.RawMessage
}

// Type implements Element
func (*Narration) Type() ElementType { return ElementNarration }

// Type implements Element
func (*Dialogue) Type() ElementType { return ElementDialogue }

// Type implements Element
func (*Thought) Type() ElementType { return ElementThought }

// Type implements Element
func (*Choice) Type() ElementType { return ElementChoice }

// Type implements Element
func (*QTE) Type() ElementType { return ElementQTE }

// Type implements Element
func (*DialogueTask) Type() ElementType { return ElementDialogueTask }

// Type implements Element
func (u *UnknownElement) Type() ElementType { return ElementType(u.RawType) }

func (*Narration) isElement()      {}
func (*Dialogue) isElement()       {}
func (*Thought) isElement()        {}
func (*Choice) isElement()         {}
func (*QTE) isElement()            {}
func (*DialogueTask) isElement()   {}
func (*UnknownElement) isElement() {}

// Outcomes returns the success and failure branches of a branching element
func Outcomes(el Element) (success, failure Outcome, ok bool) {
	switch el := el.(type) {
	case *QTE:
		return el.Success, el.Failure, true
	case *DialogueTask:
		return el.Success, el.Failure, true
	default:
		return Outcome{}, Outcome{}, false
	}
}

// Summary returns a short human-readable description of an element
func Summary(el Element) string {
	switch el := el.(type) {
	case *Narration:
		return el.Text
	case *Dialogue:
		return el.Text
	case *Thought:
		return el.Text
	case *Choice:
		return el.Text
	case *QTE:
		return el.Description
	case *DialogueTask:
		return el.Goal
	default:
		return ""
	}
}
