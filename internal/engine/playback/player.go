package playback

import (
	"fmt"

	"github.com/KirkDiggler/rpg-story/internal/engine/values"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
)

// Player drives one playthrough. It is not safe for concurrent use.
type Player struct {
	story    *story.Story
	state    State
	elements []story.Element
}

// New starts a playthrough at startSceneID, or at the story's start scene
// when startSceneID is empty. Global values are seeded from the story.
func New(s *story.Story, startSceneID string) (*Player, error) {
	if s == nil {
		return nil, ErrNoScenes
	}

	if startSceneID == "" {
		start, ok := s.StartScene()
		if !ok {
			return nil, ErrNoScenes
		}
		startSceneID = start.ID
	}
	if !s.HasScene(startSceneID) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, startSceneID)
	}

	p := &Player{
		story: s,
		state: State{
			StoryID: s.ID,
			Values:  values.Initial(s),
		},
	}
	p.enter(startSceneID)
	return p, nil
}

// Restore resumes a playthrough from a saved state
func Restore(s *story.Story, st State) (*Player, error) {
	if s == nil {
		return nil, ErrNoScenes
	}
	scene, ok := s.Scene(st.SceneID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, st.SceneID)
	}

	p := &Player{story: s, state: st.Clone()}
	if p.state.Values == nil {
		p.state.Values = values.Initial(s)
	}
	p.elements = scene.SortedElements()
	if p.state.ElementIndex >= len(p.elements) {
		p.state.ElementIndex = len(p.elements) - 1
	}
	if p.state.ElementIndex < IntroIndex {
		p.state.ElementIndex = IntroIndex
	}
	return p, nil
}

// Story returns the story being played
func (p *Player) Story() *story.Story {
	return p.story
}

// State returns a copy of the cursor
func (p *Player) State() State {
	return p.state.Clone()
}

// Values returns a copy of the running global values
func (p *Player) Values() values.Values {
	return p.state.Values.Clone()
}

func (p *Player) scene() *story.Scene {
	scene, _ := p.story.Scene(p.state.SceneID)
	return scene
}

// Current returns the element on screen. It reports false during the scene
// intro and once the playthrough has ended.
func (p *Player) Current() (story.Element, bool) {
	if p.state.Ended() {
		return nil, false
	}
	i := p.state.ElementIndex
	if i < 0 || i >= len(p.elements) {
		return nil, false
	}
	return p.elements[i], true
}

// View summarizes the current state for rendering
func (p *Player) View() View {
	scene := p.scene()
	el, _ := p.Current()
	v := View{
		Scene:            scene,
		Element:          el,
		ElementIndex:     p.state.ElementIndex,
		ElementCount:     len(p.elements),
		Ended:            p.state.Ended(),
		Ending:           p.state.Ending,
		RevivalAvailable: p.revivalTarget() != "",
		Values:           p.state.Values.Clone(),
	}
	if scene != nil {
		v.LocationName = p.story.LocationName(scene.LocationID)
	}
	return v
}

// Enter jumps to a scene, keeping global values
func (p *Player) Enter(sceneID string) error {
	if !p.story.HasScene(sceneID) {
		return fmt.Errorf("%w: %s", ErrUnknownScene, sceneID)
	}
	p.enter(sceneID)
	return nil
}

func (p *Player) enter(sceneID string) {
	scene, _ := p.story.Scene(sceneID)
	p.elements = scene.SortedElements()
	p.state.SceneID = sceneID
	p.state.ElementIndex = IntroIndex
	p.state.Phase = PhaseInScene
	p.state.Ending = EndingNone
	p.state.LastElementShown = false
	p.state.History = append(p.state.History, sceneID)
}

// Advance moves to the next element, follows the scene's linear successor
// once the elements run out, or ends the playthrough.
func (p *Player) Advance() error {
	if p.state.Ended() {
		return ErrEnded
	}
	p.advance()
	return nil
}

func (p *Player) advance() {
	if p.state.ElementIndex+1 < len(p.elements) {
		p.state.ElementIndex++
		return
	}

	scene := p.scene()
	if scene != nil && p.story.HasScene(scene.NextSceneID) {
		p.enter(scene.NextSceneID)
		return
	}

	p.state.Phase = PhaseEnded
	p.state.LastElementShown = true
	p.state.Ending = classify(scene)
}

func classify(scene *story.Scene) Ending {
	if scene == nil {
		return EndingLinearNoNext
	}
	switch scene.Type {
	case story.SceneBadEnding:
		return EndingBad
	case story.SceneEnding:
		return EndingNormal
	default:
		return EndingLinearNoNext
	}
}

// follow applies changes, then enters target when it resolves and advances
// otherwise so an unset target never strands the player.
func (p *Player) follow(target string, changes []story.ValueChange) {
	p.state.Values = values.Apply(p.state.Values, changes)
	if p.story.HasScene(target) {
		p.enter(target)
		return
	}
	p.advance()
}

// SelectChoice takes an option of the current choice element
func (p *Player) SelectChoice(optionID string) error {
	if p.state.Ended() {
		return ErrEnded
	}
	el, _ := p.Current()
	choice, ok := el.(*story.Choice)
	if !ok {
		return ErrNotAtChoice
	}
	opt, ok := choice.Option(optionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOption, optionID)
	}
	p.follow(opt.NextSceneID, opt.ValueChanges)
	return nil
}

// ResolveQTE takes the success or failure branch of the current QTE
func (p *Player) ResolveQTE(success bool) error {
	if p.state.Ended() {
		return ErrEnded
	}
	el, _ := p.Current()
	qte, ok := el.(*story.QTE)
	if !ok {
		return ErrNotAtQTE
	}
	p.resolve(qte.Success, qte.Failure, success)
	return nil
}

// ResolveDialogueTask takes the success or failure branch of the current
// dialogue task
func (p *Player) ResolveDialogueTask(success bool) error {
	if p.state.Ended() {
		return ErrEnded
	}
	el, _ := p.Current()
	task, ok := el.(*story.DialogueTask)
	if !ok {
		return ErrNotAtTask
	}
	p.resolve(task.Success, task.Failure, success)
	return nil
}

func (p *Player) resolve(onSuccess, onFailure story.Outcome, success bool) {
	outcome := onFailure
	if success {
		outcome = onSuccess
	}
	p.follow(outcome.SceneID, outcome.ValueChanges)
}

func (p *Player) revivalTarget() string {
	if !p.state.Ended() || p.state.Ending != EndingBad {
		return ""
	}
	scene := p.scene()
	if scene == nil || !p.story.HasScene(scene.RevivalPointID) {
		return ""
	}
	return scene.RevivalPointID
}

// Revive restarts at the bad ending's revival point. Global values are kept.
func (p *Player) Revive() error {
	target := p.revivalTarget()
	if target == "" {
		return ErrRevivalNotReady
	}
	p.state.Revivals++
	p.enter(target)
	return nil
}
