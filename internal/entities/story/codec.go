package story

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Elements is the ordered element list of a scene. It encodes as a JSON
// array of objects discriminated by "type".
type Elements []Element

// outcomeWire is the nested outcome shape
type outcomeWire struct {
	SceneID      string        `json:"sceneId,omitempty"`
	Transition   string        `json:"transition,omitempty"`
	ValueChanges []ValueChange `json:"valueChanges,omitempty"`
}

// elementWire is the flattened encoding shared by every element type
type elementWire struct {
	ID    string      `json:"id"`
	Type  ElementType `json:"type"`
	Order int         `json:"order"`

	Text        string `json:"text,omitempty"`
	SoundEffect string `json:"soundEffect,omitempty"`
	CharacterID string `json:"characterId,omitempty"`

	Options []ChoiceOption `json:"options,omitempty"`

	Description       string  `json:"description,omitempty"`
	IntroText         string  `json:"introText,omitempty"`
	TimeLimit         int     `json:"timeLimit,omitempty"`
	QTEType           QTEType `json:"qteType,omitempty"`
	KeySequence       string  `json:"keySequence,omitempty"`
	DoubleKey         bool    `json:"isDoubleChar,omitempty"`
	DirectionSequence string  `json:"directionSequence,omitempty"`
	UnlockPattern     []int   `json:"unlockPattern,omitempty"`

	Goal              string   `json:"goal,omitempty"`
	TargetCharacterID string   `json:"targetCharacterId,omitempty"`
	Background        string   `json:"background,omitempty"`
	OpeningLine       string   `json:"openingLine,omitempty"`
	CharacterIntro    string   `json:"characterIntro,omitempty"`
	DialogueTopics    []string `json:"dialogueTopics,omitempty"`

	Success *outcomeWire `json:"success,omitempty"`
	Failure *outcomeWire `json:"failure,omitempty"`

	// Legacy flat outcome encoding, read only
	SuccessSceneID      string        `json:"successSceneId,omitempty"`
	SuccessTransition   string        `json:"successTransition,omitempty"`
	SuccessValueChanges []ValueChange `json:"successValueChanges,omitempty"`
	FailureSceneID      string        `json:"failureSceneId,omitempty"`
	FailureTransition   string        `json:"failureTransition,omitempty"`
	FailureValueChanges []ValueChange `json:"failureValueChanges,omitempty"`
}

// resolveOutcome prefers the nested object and falls back to legacy fields
func resolveOutcome(nested *outcomeWire, sceneID, transition string, changes []ValueChange) Outcome {
	if nested != nil {
		return Outcome(*nested)
	}
	return Outcome{SceneID: sceneID, Transition: transition, ValueChanges: changes}
}

func outcomeToWire(o Outcome) *outcomeWire {
	if o.IsZero() {
		return nil
	}
	w := outcomeWire(o)
	return &w
}

func (w *elementWire) toElement(raw json.RawMessage) Element {
	base := Base{ID: w.ID, Order: w.Order}
	switch w.Type {
	case ElementNarration:
		return &Narration{Base: base, Text: w.Text, SoundEffect: w.SoundEffect}
	case ElementDialogue:
		return &Dialogue{Base: base, CharacterID: w.CharacterID, Text: w.Text}
	case ElementThought:
		return &Thought{Base: base, CharacterID: w.CharacterID, Text: w.Text}
	case ElementChoice:
		return &Choice{Base: base, Text: w.Text, Options: w.Options}
	case ElementQTE:
		return &QTE{
			Base:              base,
			Description:       w.Description,
			IntroText:         w.IntroText,
			TimeLimit:         w.TimeLimit,
			QTEType:           w.QTEType,
			KeySequence:       w.KeySequence,
			DoubleKey:         w.DoubleKey,
			DirectionSequence: w.DirectionSequence,
			UnlockPattern:     w.UnlockPattern,
			Success:           resolveOutcome(w.Success, w.SuccessSceneID, w.SuccessTransition, w.SuccessValueChanges),
			Failure:           resolveOutcome(w.Failure, w.FailureSceneID, w.FailureTransition, w.FailureValueChanges),
		}
	case ElementDialogueTask:
		return &DialogueTask{
			Base:              base,
			Goal:              w.Goal,
			TargetCharacterID: w.TargetCharacterID,
			Background:        w.Background,
			OpeningLine:       w.OpeningLine,
			CharacterIntro:    w.CharacterIntro,
			DialogueTopics:    w.DialogueTopics,
			Success:           resolveOutcome(w.Success, w.SuccessSceneID, w.SuccessTransition, w.SuccessValueChanges),
			Failure:           resolveOutcome(w.Failure, w.FailureSceneID, w.FailureTransition, w.FailureValueChanges),
		}
	default:
		kept := make(json.RawMessage, len(raw))
		copy(kept, raw)
		return &UnknownElement{Base: base, RawType: string(w.Type), Raw: kept}
	}
}

func elementToWire(el Element) elementWire {
	w := elementWire{ID: el.ElementID(), Type: el.Type(), Order: el.ElementOrder()}
	switch el := el.(type) {
	case *Narration:
		w.Text = el.Text
		w.SoundEffect = el.SoundEffect
	case *Dialogue:
		w.CharacterID = el.CharacterID
		w.Text = el.Text
	case *Thought:
		w.CharacterID = el.CharacterID
		w.Text = el.Text
	case *Choice:
		w.Text = el.Text
		w.Options = el.Options
	case *QTE:
		w.Description = el.Description
		w.IntroText = el.IntroText
		w.TimeLimit = el.TimeLimit
		w.QTEType = el.QTEType
		w.KeySequence = el.KeySequence
		w.DoubleKey = el.DoubleKey
		w.DirectionSequence = el.DirectionSequence
		w.UnlockPattern = el.UnlockPattern
		w.Success = outcomeToWire(el.Success)
		w.Failure = outcomeToWire(el.Failure)
	case *DialogueTask:
		w.Goal = el.Goal
		w.TargetCharacterID = el.TargetCharacterID
		w.Background = el.Background
		w.OpeningLine = el.OpeningLine
		w.CharacterIntro = el.CharacterIntro
		w.DialogueTopics = el.DialogueTopics
		w.Success = outcomeToWire(el.Success)
		w.Failure = outcomeToWire(el.Failure)
	}
	return w
}

// MarshalJSON implements json.Marshaler
func (e Elements) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(e))
	for i, el := range e {
		if el == nil {
			continue
		}
		data, err := MarshalElement(el)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, data)
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. Legacy flat outcome fields are
// folded into the nested outcome here so nothing downstream sees them.
func (e *Elements) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*e = nil
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	elements := make(Elements, 0, len(raws))
	for i, raw := range raws {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		var w elementWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		elements = append(elements, w.toElement(raw))
	}
	*e = elements
	return nil
}

// MarshalElement encodes a single element in its wire shape
func MarshalElement(el Element) ([]byte, error) {
	if el == nil {
		return []byte("null"), nil
	}
	if unknown, ok := el.(*UnknownElement); ok && len(unknown.Raw) > 0 {
		return marshalUnknown(unknown)
	}
	return json.Marshal(elementToWire(el))
}

// marshalUnknown keeps every field of the raw element but takes id, order
// and type from the current Base so edits survive encoding.
func marshalUnknown(u *UnknownElement) ([]byte, error) {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(u.Raw, &fields); err != nil {
		return nil, fmt.Errorf("unknown element %s: %w", u.ID, err)
	}
	for key, value := range map[string]interface{}{
		"id":    u.ID,
		"order": u.Order,
		"type":  u.RawType,
	} {
		data, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		fields[key] = data
	}
	return json.Marshal(fields)
}

// DecodeJSON parses a story from its JSON encoding
func DecodeJSON(data []byte) (*Story, error) {
	var s Story
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode story: %w", err)
	}
	return &s, nil
}

// EncodeJSON renders a story in its normalized JSON encoding
func EncodeJSON(s *Story) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// DecodeYAML parses a story written as YAML. The document is bridged through
// the JSON encoding so both formats share one set of field names.
func DecodeYAML(data []byte) (*Story, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode story yaml: %w", err)
	}

	bridged, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("decode story yaml: %w", err)
	}
	return DecodeJSON(bridged)
}

// EncodeYAML renders a story as YAML using the JSON field names
func EncodeYAML(s *Story) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}
