package testutils

import (
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
	"github.com/KirkDiggler/rpg-story/internal/testutils/builders"
)

// Fixture ids shared across tests
const (
	TestStoryID   = "story-lighthouse"
	ValueCourage  = "courage"
	ValueTrust    = "trust"
	CharacterHero = "hero"
	CharacterKeep = "keeper"
)

// CreateTestStory returns a small story touching every element type:
//
//	shore --choice--> tower --qte--> lamp (ending) | cliff (bad ending, revives at shore)
//	shore --choice(locked)--> cellar --task--> lamp | cliff
func CreateTestStory() *story.Story {
	return builders.NewStoryBuilder().
		WithID(TestStoryID).
		WithTitle("The Lighthouse").
		WithValue(ValueCourage, "Courage", 1).
		WithValue(ValueTrust, "Trust", 0).
		WithCharacter(CharacterHero, "Mara", story.RoleProtagonist).
		WithCharacter(CharacterKeep, "The Keeper", story.RoleSupporting).
		WithLocation("coast", "Rocky Coast").
		WithScene(builders.NewSceneBuilder("shore", story.SceneStart).
			At("coast").
			Narration("n1", "Waves break against the rocks.").
			Dialogue("d1", CharacterHero, "The light is out.").
			Choice("c1", "Where to?",
				story.ChoiceOption{
					ID: "climb", Text: "Climb the tower", NextSceneID: "tower",
					ValueChanges: []story.ValueChange{{ValueID: ValueCourage, Change: 1}},
				},
				story.ChoiceOption{
					ID: "cellar", Text: "Search the cellar", NextSceneID: "cellar",
					Locked: true, UnlockPrice: 5,
					UnlockConditions: []story.UnlockCondition{
						{ValueID: ValueTrust, Operator: story.OperatorGTE, TargetValue: 2},
					},
				},
			)).
		WithScene(builders.NewSceneBuilder("tower", story.SceneNormal).
			QTE("q1",
				story.Outcome{SceneID: "lamp", ValueChanges: []story.ValueChange{{ValueID: ValueCourage, Change: 2}}},
				story.Outcome{SceneID: "cliff", ValueChanges: []story.ValueChange{{ValueID: ValueCourage, Change: -1}}},
			)).
		WithScene(builders.NewSceneBuilder("cellar", story.SceneNormal).
			DialogueTask("t1", CharacterKeep,
				story.Outcome{SceneID: "lamp", ValueChanges: []story.ValueChange{{ValueID: ValueTrust, Change: 1}}},
				story.Outcome{SceneID: "cliff"},
			)).
		WithScene(builders.NewSceneBuilder("lamp", story.SceneEnding).
			Narration("n2", "The beam sweeps the sea.")).
		WithScene(builders.NewSceneBuilder("cliff", story.SceneBadEnding).
			RevivesAt("shore").
			Narration("n3", "You slip.")).
		Build()
}
