// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
)

// StoryBuilder provides a fluent interface for building test Story instances
type StoryBuilder struct {
	story *story.Story
}

// NewStoryBuilder creates a new builder with minimal defaults
func NewStoryBuilder() *StoryBuilder {
	return &StoryBuilder{
		story: &story.Story{
			ID:     "story-test-123",
			Title:  "Test Story",
			Author: "Test Author",
			Scenes: []*story.Scene{},
		},
	}
}

// WithID sets the story ID
func (b *StoryBuilder) WithID(id string) *StoryBuilder {
	b.story.ID = id
	return b
}

// WithTitle sets the title
func (b *StoryBuilder) WithTitle(title string) *StoryBuilder {
	b.story.Title = title
	return b
}

// WithValue adds a global value
func (b *StoryBuilder) WithValue(id, name string, initial int) *StoryBuilder {
	b.story.GlobalValues = append(b.story.GlobalValues, &story.GlobalValue{ID: id, Name: name, InitialValue: initial})
	return b
}

// WithCharacter adds a character
func (b *StoryBuilder) WithCharacter(id, name string, role story.CharacterRole) *StoryBuilder {
	b.story.Characters = append(b.story.Characters, &story.Character{ID: id, Name: name, Role: role})
	return b
}

// WithLocation adds a location
func (b *StoryBuilder) WithLocation(id, name string) *StoryBuilder {
	b.story.Locations = append(b.story.Locations, &story.Location{ID: id, Name: name})
	return b
}

// WithScene adds a scene built by a SceneBuilder
func (b *StoryBuilder) WithScene(sb *SceneBuilder) *StoryBuilder {
	b.story.Scenes = append(b.story.Scenes, sb.Build())
	return b
}

// Build returns the built story
func (b *StoryBuilder) Build() *story.Story {
	return b.story
}

// SceneBuilder builds a scene; elements get increasing orders as they are added
type SceneBuilder struct {
	scene *story.Scene
}

// NewSceneBuilder starts a scene of the given type
func NewSceneBuilder(id string, sceneType story.SceneType) *SceneBuilder {
	return &SceneBuilder{scene: &story.Scene{
		ID:       id,
		Title:    "Scene " + id,
		Type:     sceneType,
		Elements: story.Elements{},
	}}
}

// At sets the location
func (b *SceneBuilder) At(locationID string) *SceneBuilder {
	b.scene.LocationID = locationID
	return b
}

// Next sets the linear successor
func (b *SceneBuilder) Next(sceneID string) *SceneBuilder {
	b.scene.NextSceneID = sceneID
	return b
}

// RevivesAt sets the revival point
func (b *SceneBuilder) RevivesAt(sceneID string) *SceneBuilder {
	b.scene.RevivalPointID = sceneID
	return b
}

func (b *SceneBuilder) base(id string) story.Base {
	return story.Base{ID: id, Order: b.scene.NextOrder()}
}

// Narration appends a narration element
func (b *SceneBuilder) Narration(id, text string) *SceneBuilder {
	b.scene.Elements = append(b.scene.Elements, &story.Narration{Base: b.base(id), Text: text})
	return b
}

// Dialogue appends a dialogue line
func (b *SceneBuilder) Dialogue(id, characterID, text string) *SceneBuilder {
	b.scene.Elements = append(b.scene.Elements, &story.Dialogue{Base: b.base(id), CharacterID: characterID, Text: text})
	return b
}

// Choice appends a choice element
func (b *SceneBuilder) Choice(id, text string, options ...story.ChoiceOption) *SceneBuilder {
	b.scene.Elements = append(b.scene.Elements, &story.Choice{Base: b.base(id), Text: text, Options: options})
	return b
}

// QTE appends an action QTE with the given outcomes
func (b *SceneBuilder) QTE(id string, success, failure story.Outcome) *SceneBuilder {
	b.scene.Elements = append(b.scene.Elements, &story.QTE{
		Base:        b.base(id),
		Description: "React!",
		TimeLimit:   4,
		QTEType:     story.QTEAction,
		KeySequence: "ASD",
		Success:     success,
		Failure:     failure,
	})
	return b
}

// DialogueTask appends a dialogue task with the given outcomes
func (b *SceneBuilder) DialogueTask(id, targetCharacterID string, success, failure story.Outcome) *SceneBuilder {
	b.scene.Elements = append(b.scene.Elements, &story.DialogueTask{
		Base:              b.base(id),
		Goal:              "Persuade",
		TargetCharacterID: targetCharacterID,
		Success:           success,
		Failure:           failure,
	})
	return b
}

// Build returns the built scene
func (b *SceneBuilder) Build() *story.Scene {
	return b.scene
}
