package playback_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	"github.com/KirkDiggler/rpg-story/internal/engine/values"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
)

type PlayerTestSuite struct {
	suite.Suite
}

func TestPlayerSuite(t *testing.T) {
	suite.Run(t, new(PlayerTestSuite))
}

func linearStory() *story.Story {
	return &story.Story{
		ID: "story_linear",
		Scenes: []*story.Scene{
			{
				ID:   "A",
				Type: story.SceneNormal,
				Elements: story.Elements{
					&story.Choice{
						Base:    story.Base{ID: "c", Order: 2},
						Options: []story.ChoiceOption{{ID: "go", Text: "Go", NextSceneID: "B"}},
					},
					&story.Narration{Base: story.Base{ID: "n", Order: 1}, Text: "Hi"},
				},
			},
			{ID: "B", Type: story.SceneEnding},
		},
	}
}

func qteStory() *story.Story {
	return &story.Story{
		ID:           "story_qte",
		GlobalValues: []*story.GlobalValue{{ID: "v1", InitialValue: 5}},
		Scenes: []*story.Scene{
			{
				ID:   "A",
				Type: story.SceneStart,
				Elements: story.Elements{&story.QTE{
					Base:    story.Base{ID: "q"},
					Success: story.Outcome{SceneID: "B", ValueChanges: []story.ValueChange{{ValueID: "v1", Change: 1}}},
					Failure: story.Outcome{SceneID: "C", ValueChanges: []story.ValueChange{{ValueID: "v1", Change: -2}}},
				}},
			},
			{ID: "B", Type: story.SceneEnding},
			{ID: "C", Type: story.SceneBadEnding, RevivalPointID: "A"},
		},
	}
}

func (s *PlayerTestSuite) TestChoiceScenario() {
	p, err := playback.New(linearStory(), "A")
	s.Require().NoError(err)

	_, ok := p.Current()
	s.Assert().False(ok, "scene intro shows no element")

	s.Require().NoError(p.Advance())
	el, ok := p.Current()
	s.Require().True(ok)
	s.Assert().Equal("n", el.ElementID())

	s.Require().NoError(p.Advance())
	el, _ = p.Current()
	s.Assert().Equal("c", el.ElementID())

	s.Require().NoError(p.SelectChoice("go"))
	s.Assert().Equal("B", p.State().SceneID)
	s.Assert().Equal(playback.IntroIndex, p.State().ElementIndex)

	s.Require().NoError(p.Advance())
	st := p.State()
	s.Assert().True(st.Ended())
	s.Assert().True(st.LastElementShown)
	s.Assert().Equal(playback.EndingNormal, st.Ending)
	s.Assert().Equal([]string{"A", "B"}, st.History)
}

func (s *PlayerTestSuite) TestEmptySceneEndsOnFirstAdvance() {
	st := &story.Story{Scenes: []*story.Scene{{ID: "lonely", Type: story.SceneNormal}}}
	p, err := playback.New(st, "")
	s.Require().NoError(err)

	s.Require().NoError(p.Advance())
	s.Assert().Equal(playback.EndingLinearNoNext, p.State().Ending)
	s.Assert().ErrorIs(p.Advance(), playback.ErrEnded)
}

func (s *PlayerTestSuite) TestLinearNextCarriesNoChanges() {
	st := &story.Story{
		GlobalValues: []*story.GlobalValue{{ID: "v", InitialValue: 1}},
		Scenes: []*story.Scene{
			{ID: "a", NextSceneID: "b", Elements: story.Elements{&story.Narration{Base: story.Base{ID: "n"}}}},
			{ID: "b", NextSceneID: "ghost"},
		},
	}
	p, err := playback.New(st, "a")
	s.Require().NoError(err)

	s.Require().NoError(p.Advance())
	s.Require().NoError(p.Advance())
	s.Assert().Equal("b", p.State().SceneID)
	s.Assert().Equal(values.Values{"v": 1}, p.Values())

	s.Require().NoError(p.Advance())
	s.Assert().Equal(playback.EndingLinearNoNext, p.State().Ending, "dangling next is terminal")
}

func (s *PlayerTestSuite) TestQTEFailureThenSuccess() {
	p, err := playback.New(qteStory(), "")
	s.Require().NoError(err)
	s.Require().NoError(p.Advance())
	s.Require().NoError(p.ResolveQTE(false))
	s.Assert().Equal("C", p.State().SceneID)
	s.Assert().Equal(3, p.Values()["v1"])

	fresh, err := playback.New(qteStory(), "")
	s.Require().NoError(err)
	s.Require().NoError(fresh.Advance())
	s.Require().NoError(fresh.ResolveQTE(true))
	s.Assert().Equal("B", fresh.State().SceneID)
	s.Assert().Equal(6, fresh.Values()["v1"])
}

func (s *PlayerTestSuite) TestRevivalPreservesValues() {
	p, err := playback.New(qteStory(), "")
	s.Require().NoError(err)
	s.Require().NoError(p.Advance())
	s.Require().NoError(p.ResolveQTE(false))

	s.Assert().ErrorIs(p.Revive(), playback.ErrRevivalNotReady, "not yet terminal")

	s.Require().NoError(p.Advance())
	view := p.View()
	s.Assert().True(view.Ended)
	s.Assert().Equal(playback.EndingBad, view.Ending)
	s.Assert().True(view.RevivalAvailable)

	s.Require().NoError(p.Revive())
	st := p.State()
	s.Assert().Equal("A", st.SceneID)
	s.Assert().False(st.Ended())
	s.Assert().Equal(1, st.Revivals)
	s.Assert().Equal(3, st.Values["v1"])
}

func (s *PlayerTestSuite) TestUnsetTargetsBehaveLikeAdvance() {
	st := &story.Story{Scenes: []*story.Scene{
		{
			ID: "a",
			Elements: story.Elements{
				&story.Choice{Base: story.Base{ID: "c", Order: 0}, Options: []story.ChoiceOption{{ID: "stay"}, {ID: "lost", NextSceneID: "ghost"}}},
				&story.DialogueTask{Base: story.Base{ID: "t", Order: 1}},
			},
		},
	}}
	p, err := playback.New(st, "a")
	s.Require().NoError(err)

	s.Require().NoError(p.Advance())
	s.Require().NoError(p.SelectChoice("stay"))
	el, _ := p.Current()
	s.Assert().Equal("t", el.ElementID())

	s.Require().NoError(p.ResolveDialogueTask(true))
	s.Assert().True(p.State().Ended())

	q, err := playback.New(st, "a")
	s.Require().NoError(err)
	s.Require().NoError(q.Advance())
	s.Require().NoError(q.SelectChoice("lost"))
	el, _ = q.Current()
	s.Assert().Equal("t", el.ElementID(), "dangling target counts as unset")
}

func (s *PlayerTestSuite) TestInvalidCommandsLeaveStateUntouched() {
	p, err := playback.New(linearStory(), "A")
	s.Require().NoError(err)
	s.Require().NoError(p.Advance())
	before := p.State()

	s.Assert().ErrorIs(p.SelectChoice("go"), playback.ErrNotAtChoice)
	s.Assert().ErrorIs(p.ResolveQTE(true), playback.ErrNotAtQTE)
	s.Assert().ErrorIs(p.ResolveDialogueTask(true), playback.ErrNotAtTask)
	s.Assert().ErrorIs(p.Enter("ghost"), playback.ErrUnknownScene)

	s.Require().NoError(p.Advance())
	s.Assert().ErrorIs(p.SelectChoice("nope"), playback.ErrUnknownOption)

	s.Require().NoError(p.Enter("A"))
	s.Assert().NotEqual(before, p.State())
}

func (s *PlayerTestSuite) TestNewAndRestore() {
	_, err := playback.New(&story.Story{}, "")
	s.Assert().ErrorIs(err, playback.ErrNoScenes)

	_, err = playback.New(linearStory(), "ghost")
	s.Assert().ErrorIs(err, playback.ErrUnknownScene)

	p, err := playback.New(linearStory(), "")
	s.Require().NoError(err)
	s.Require().NoError(p.Advance())
	saved := p.State()

	restored, err := playback.Restore(linearStory(), saved)
	s.Require().NoError(err)
	el, ok := restored.Current()
	s.Require().True(ok)
	s.Assert().Equal("n", el.ElementID())

	saved.SceneID = "ghost"
	_, err = playback.Restore(linearStory(), saved)
	s.Assert().ErrorIs(err, playback.ErrUnknownScene)
}

func (s *PlayerTestSuite) TestStateIsACopy() {
	p, err := playback.New(qteStory(), "")
	s.Require().NoError(err)

	st := p.State()
	st.Values["v1"] = 100
	st.History[0] = "tampered"

	s.Assert().Equal(5, p.Values()["v1"])
	s.Assert().Equal("A", p.State().History[0])
}
