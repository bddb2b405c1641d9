package rules

import (
	"fmt"

	"github.com/KirkDiggler/rpg-story/internal/engine/graph"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
	"github.com/KirkDiggler/rpg-story/internal/errors"
)

// WarningCode identifies a class of authoring problem
type WarningCode string

// Warning codes
const (
	WarnDanglingScene       WarningCode = "dangling_scene"
	WarnDanglingRevival     WarningCode = "dangling_revival_point"
	WarnDanglingCharacter   WarningCode = "dangling_character"
	WarnDanglingLocation    WarningCode = "dangling_location"
	WarnDanglingValue       WarningCode = "dangling_value"
	WarnLockedNoUnlockPath  WarningCode = "locked_option_unreachable"
	WarnBadEndingNoRevival  WarningCode = "bad_ending_without_revival"
	WarnMultipleProtagonist WarningCode = "multiple_protagonists"
	WarnDuplicateID         WarningCode = "duplicate_id"
	WarnDuplicateOrder      WarningCode = "duplicate_order"
	WarnDuplicateValueDelta WarningCode = "duplicate_value_change"
	WarnOptionCount         WarningCode = "option_count"
	WarnQTEBounds           WarningCode = "qte_bounds"
	WarnDialogueTopics      WarningCode = "dialogue_topics"
	WarnNoStartScene        WarningCode = "no_start_scene"
	WarnUnreachableScene    WarningCode = "unreachable_scene"
)

// Warning is a non-fatal authoring signal. Scenes flagged here still play.
type Warning struct {
	Code      WarningCode `json:"code"`
	SceneID   string      `json:"sceneId,omitempty"`
	ElementID string      `json:"elementId,omitempty"`
	Message   string      `json:"message"`
}

type linter struct {
	story    *story.Story
	warnings []Warning
}

func (l *linter) warn(code WarningCode, sceneID, elementID, format string, args ...interface{}) {
	l.warnings = append(l.warnings, Warning{
		Code:      code,
		SceneID:   sceneID,
		ElementID: elementID,
		Message:   fmt.Sprintf(format, args...),
	})
}

// Lint reports authoring problems in s. Warnings come out in story order.
func Lint(s *story.Story) []Warning {
	l := &linter{story: s, warnings: []Warning{}}
	if s == nil {
		return l.warnings
	}

	l.checkTopLevel()
	for _, scene := range s.Scenes {
		if scene != nil {
			l.checkScene(scene)
		}
	}
	l.checkReachability()

	return l.warnings
}

func (l *linter) checkTopLevel() {
	s := l.story

	sceneIDs := make([]string, 0, len(s.Scenes))
	for _, sc := range s.Scenes {
		if sc != nil {
			sceneIDs = append(sceneIDs, sc.ID)
		}
	}
	l.duplicates("scene", "", sceneIDs)

	valueIDs := make([]string, 0, len(s.GlobalValues))
	for _, gv := range s.GlobalValues {
		if gv != nil {
			valueIDs = append(valueIDs, gv.ID)
		}
	}
	l.duplicates("global value", "", valueIDs)

	characterIDs := make([]string, 0, len(s.Characters))
	protagonists := 0
	for _, c := range s.Characters {
		if c == nil {
			continue
		}
		characterIDs = append(characterIDs, c.ID)
		if c.Role == story.RoleProtagonist {
			protagonists++
		}
	}
	l.duplicates("character", "", characterIDs)
	if protagonists > 1 {
		l.warn(WarnMultipleProtagonist, "", "", "%d characters are marked protagonist", protagonists)
	}

	locationIDs := make([]string, 0, len(s.Locations))
	for _, loc := range s.Locations {
		if loc != nil {
			locationIDs = append(locationIDs, loc.ID)
		}
	}
	l.duplicates("location", "", locationIDs)

	if len(sceneIDs) > 0 {
		hasStart := false
		for _, sc := range s.Scenes {
			if sc != nil && sc.Type == story.SceneStart {
				hasStart = true
				break
			}
		}
		if !hasStart {
			l.warn(WarnNoStartScene, "", "", "no scene is typed start; playback begins at the first scene")
		}
	}
}

func (l *linter) duplicates(kind, sceneID string, ids []string) {
	seen := make(map[string]bool, len(ids))
	reported := make(map[string]bool)
	for _, id := range ids {
		if seen[id] && !reported[id] {
			l.warn(WarnDuplicateID, sceneID, "", "%s id %q is used more than once", kind, id)
			reported[id] = true
		}
		seen[id] = true
	}
}

func (l *linter) checkScene(scene *story.Scene) {
	s := l.story

	if scene.NextSceneID != "" && !s.HasScene(scene.NextSceneID) {
		l.warn(WarnDanglingScene, scene.ID, "", "next scene %q does not exist", scene.NextSceneID)
	}
	if scene.LocationID != "" {
		if _, ok := s.Location(scene.LocationID); !ok {
			l.warn(WarnDanglingLocation, scene.ID, "", "location %q does not exist", scene.LocationID)
		}
	}
	if scene.Type == story.SceneBadEnding {
		switch {
		case scene.RevivalPointID == "":
			l.warn(WarnBadEndingNoRevival, scene.ID, "", "bad ending has no revival point")
		case !s.HasScene(scene.RevivalPointID):
			l.warn(WarnDanglingRevival, scene.ID, "", "revival point %q does not exist", scene.RevivalPointID)
		}
	}

	elementIDs := make([]string, 0, len(scene.Elements))
	orders := make(map[int]string, len(scene.Elements))
	for _, el := range scene.Elements {
		if el == nil {
			continue
		}
		elementIDs = append(elementIDs, el.ElementID())
		if other, taken := orders[el.ElementOrder()]; taken {
			l.warn(WarnDuplicateOrder, scene.ID, el.ElementID(), "order %d is shared with element %q",
				el.ElementOrder(), other)
		} else {
			orders[el.ElementOrder()] = el.ElementID()
		}
		l.checkElement(scene, el)
	}
	l.duplicates("element", scene.ID, elementIDs)
}

func (l *linter) checkElement(scene *story.Scene, el story.Element) {
	id := el.ElementID()
	switch el := el.(type) {
	case *story.Dialogue:
		l.checkCharacter(scene.ID, id, el.CharacterID)
	case *story.Thought:
		l.checkCharacter(scene.ID, id, el.CharacterID)
	case *story.Choice:
		if len(el.Options) < story.MinChoiceOptions || len(el.Options) > story.MaxChoiceOptions {
			l.warn(WarnOptionCount, scene.ID, id, "choice has %d options, expected %d to %d",
				len(el.Options), story.MinChoiceOptions, story.MaxChoiceOptions)
		}
		for i := range el.Options {
			opt := &el.Options[i]
			l.checkSceneRef(scene.ID, id, "option "+opt.ID, opt.NextSceneID)
			l.checkChanges(scene.ID, id, opt.ValueChanges)
			for _, cond := range opt.UnlockConditions {
				l.checkValue(scene.ID, id, cond.ValueID)
			}
			if !opt.HasUnlockPath() {
				l.warn(WarnLockedNoUnlockPath, scene.ID, id, "option %q is locked with no price and no conditions", opt.ID)
			}
		}
	case *story.QTE:
		if err := ValidateQTE(el); err != nil {
			l.warn(WarnQTEBounds, scene.ID, id, "%s", errors.GetMessage(err))
		}
		l.checkOutcomes(scene.ID, id, el.Success, el.Failure)
	case *story.DialogueTask:
		l.checkCharacter(scene.ID, id, el.TargetCharacterID)
		if len(el.DialogueTopics) > MaxDialogueTopics {
			l.warn(WarnDialogueTopics, scene.ID, id, "%d dialogue topics, at most %d allowed",
				len(el.DialogueTopics), MaxDialogueTopics)
		}
		l.checkOutcomes(scene.ID, id, el.Success, el.Failure)
	}
}

func (l *linter) checkOutcomes(sceneID, elementID string, success, failure story.Outcome) {
	l.checkSceneRef(sceneID, elementID, "success", success.SceneID)
	l.checkChanges(sceneID, elementID, success.ValueChanges)
	l.checkSceneRef(sceneID, elementID, "failure", failure.SceneID)
	l.checkChanges(sceneID, elementID, failure.ValueChanges)
}

func (l *linter) checkSceneRef(sceneID, elementID, what, target string) {
	if target != "" && !l.story.HasScene(target) {
		l.warn(WarnDanglingScene, sceneID, elementID, "%s targets missing scene %q", what, target)
	}
}

func (l *linter) checkCharacter(sceneID, elementID, characterID string) {
	if characterID == "" {
		return
	}
	if _, ok := l.story.Character(characterID); !ok {
		l.warn(WarnDanglingCharacter, sceneID, elementID, "character %q does not exist", characterID)
	}
}

func (l *linter) checkValue(sceneID, elementID, valueID string) {
	if _, ok := l.story.GlobalValue(valueID); !ok {
		l.warn(WarnDanglingValue, sceneID, elementID, "global value %q does not exist", valueID)
	}
}

func (l *linter) checkChanges(sceneID, elementID string, changes []story.ValueChange) {
	seen := make(map[string]bool, len(changes))
	for _, c := range changes {
		l.checkValue(sceneID, elementID, c.ValueID)
		if seen[c.ValueID] {
			l.warn(WarnDuplicateValueDelta, sceneID, elementID,
				"value %q changes more than once; only the first change applies", c.ValueID)
		}
		seen[c.ValueID] = true
	}
}

func (l *linter) checkReachability() {
	g := graph.Derive(l.story)

	var roots []string
	for _, sc := range l.story.Scenes {
		if sc != nil && sc.Type == story.SceneStart {
			roots = append(roots, sc.ID)
		}
	}
	if len(roots) == 0 {
		if start, ok := l.story.StartScene(); ok {
			roots = append(roots, start.ID)
		}
	}

	reached := g.Reachable(roots...)
	reported := make(map[string]bool)
	for _, sc := range l.story.Scenes {
		if sc == nil || reached[sc.ID] || reported[sc.ID] {
			continue
		}
		reported[sc.ID] = true
		l.warn(WarnUnreachableScene, sc.ID, "", "scene is not reachable from a start scene")
	}
}
