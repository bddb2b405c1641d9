package preview_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	"github.com/KirkDiggler/rpg-story/internal/errors"
	"github.com/KirkDiggler/rpg-story/internal/orchestrators/preview"
	"github.com/KirkDiggler/rpg-story/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-story/internal/pkg/idgen"
	previewsession "github.com/KirkDiggler/rpg-story/internal/repositories/preview_session"
	storyrepomock "github.com/KirkDiggler/rpg-story/internal/repositories/story/mock"
	"github.com/KirkDiggler/rpg-story/internal/testutils"
	"github.com/KirkDiggler/rpg-story/internal/testutils/mocks"
)

// recordingBus keeps published event types in order
type recordingBus struct {
	published []string
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) error {
	b.published = append(b.published, e.Type())
	return nil
}
func (b *recordingBus) Subscribe(_ string, _ events.Handler) string { return "sub-id" }
func (b *recordingBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "sub-id"
}
func (b *recordingBus) Unsubscribe(_ string) error { return nil }
func (b *recordingBus) Clear(_ string)             {}
func (b *recordingBus) ClearAll()                  {}

type OrchestratorTestSuite struct {
	suite.Suite

	ctrl      *gomock.Controller
	storyRepo *storyrepomock.MockRepository
	bus       *recordingBus
	sessions  previewsession.Repository
	clock     *clock.Fixed
	orch      preview.Service
	ctx       context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.storyRepo = storyrepomock.NewMockRepository(s.ctrl)
	s.bus = &recordingBus{}
	s.clock = clock.NewFixed(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	client, _ := testutils.CreateTestRedisClient(s.T())
	sessions, err := previewsession.NewRedisRepository(&previewsession.Config{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.sessions = sessions

	mocks.ExpectStoryLookups(s.storyRepo, testutils.CreateTestStory, 1)

	orch, err := preview.NewOrchestrator(&preview.Config{
		StoryRepo:   s.storyRepo,
		SessionRepo: sessions,
		IDGenerator: idgen.NewSequential(idgen.PrefixPreview),
		EventBus:    s.bus,
	})
	s.Require().NoError(err)
	s.orch = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) start() string {
	out, err := s.orch.StartSession(s.ctx, &preview.StartSessionInput{StoryID: testutils.TestStoryID})
	s.Require().NoError(err)
	return out.Session.ID
}

func (s *OrchestratorTestSuite) advance(sessionID string, n int) *preview.SessionOutput {
	var out *preview.SessionOutput
	for i := 0; i < n; i++ {
		var err error
		out, err = s.orch.Advance(s.ctx, &preview.SessionInput{SessionID: sessionID})
		s.Require().NoError(err)
	}
	return out
}

func (s *OrchestratorTestSuite) TestNewOrchestrator() {
	_, err := preview.NewOrchestrator(&preview.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "SessionRepo")
}

func (s *OrchestratorTestSuite) TestStartSession() {
	s.Run("defaults to start scene", func() {
		out, err := s.orch.StartSession(s.ctx, &preview.StartSessionInput{StoryID: testutils.TestStoryID})
		s.Require().NoError(err)
		s.Equal("preview_1", out.Session.ID)
		s.Equal(int64(1), out.Session.StoryVersion)
		s.Equal("shore", out.View.Scene.ID)
		s.Equal("Rocky Coast", out.View.LocationName)
		s.Nil(out.View.Element, "intro shows no element")
		s.Equal(1, out.View.Values[testutils.ValueCourage])
	})

	s.Run("explicit scene", func() {
		out, err := s.orch.StartSession(s.ctx, &preview.StartSessionInput{
			StoryID: testutils.TestStoryID,
			SceneID: "tower",
		})
		s.Require().NoError(err)
		s.Equal("tower", out.View.Scene.ID)
	})

	s.Run("unknown scene", func() {
		_, err := s.orch.StartSession(s.ctx, &preview.StartSessionInput{
			StoryID: testutils.TestStoryID,
			SceneID: "nowhere",
		})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("unknown story", func() {
		mocks.ExpectStoryNotFound(s.storyRepo, "missing")

		_, err := s.orch.StartSession(s.ctx, &preview.StartSessionInput{StoryID: "missing"})
		s.True(errors.IsNotFound(err))
	})
}

func (s *OrchestratorTestSuite) TestPlaythrough() {
	id := s.start()

	out := s.advance(id, 3)
	s.Equal("c1", out.View.Element.ElementID())

	s.Run("locked option is rejected", func() {
		_, err := s.orch.SelectChoice(s.ctx, &preview.SelectChoiceInput{SessionID: id, OptionID: "cellar"})
		s.Require().Error(err)
		s.True(errors.IsFailedPrecondition(err))
		s.Equal("cellar", errors.GetMeta(err)["option_id"])
	})

	s.Run("unknown option", func() {
		_, err := s.orch.SelectChoice(s.ctx, &preview.SelectChoiceInput{SessionID: id, OptionID: "swim"})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("qte command at a choice", func() {
		_, err := s.orch.ResolveQTE(s.ctx, &preview.ResolveInput{SessionID: id, Success: true})
		s.True(errors.IsFailedPrecondition(err))
	})

	out, err := s.orch.SelectChoice(s.ctx, &preview.SelectChoiceInput{SessionID: id, OptionID: "climb"})
	s.Require().NoError(err)
	s.Equal("tower", out.View.Scene.ID)
	s.Equal(map[string]int{testutils.ValueCourage: 1}, out.Changed)

	s.advance(id, 1)
	out, err = s.orch.ResolveQTE(s.ctx, &preview.ResolveInput{SessionID: id, Success: false})
	s.Require().NoError(err)
	s.Equal("cliff", out.View.Scene.ID)
	s.Equal(map[string]int{testutils.ValueCourage: -1}, out.Changed)

	out = s.advance(id, 2)
	s.True(out.View.Ended)
	s.Equal(playback.EndingBad, out.View.Ending)
	s.True(out.View.RevivalAvailable)

	_, err = s.orch.Advance(s.ctx, &preview.SessionInput{SessionID: id})
	s.True(errors.IsFailedPrecondition(err), "advance after the end")

	out, err = s.orch.Revive(s.ctx, &preview.SessionInput{SessionID: id})
	s.Require().NoError(err)
	s.Equal("shore", out.View.Scene.ID)
	s.Equal(1, out.Session.State.Revivals)
	s.Equal(1, out.View.Values[testutils.ValueCourage], "values survive revival")
	s.Equal([]string{"shore", "tower", "cliff", "shore"}, out.Session.State.History)

	s.Equal([]string{
		preview.EventSceneEntered,
		preview.EventSceneEntered, preview.EventValuesChanged,
		preview.EventSceneEntered, preview.EventValuesChanged,
		preview.EventEnded,
		preview.EventSceneEntered,
	}, s.bus.published)
}

func (s *OrchestratorTestSuite) TestSelectChoicePaidPrice() {
	id := s.start()
	s.advance(id, 3)

	out, err := s.orch.SelectChoice(s.ctx, &preview.SelectChoiceInput{
		SessionID: id,
		OptionID:  "cellar",
		PricePaid: true,
	})
	s.Require().NoError(err)
	s.Equal("cellar", out.View.Scene.ID)

	s.advance(id, 1)
	out, err = s.orch.ResolveDialogueTask(s.ctx, &preview.ResolveInput{SessionID: id, Success: true})
	s.Require().NoError(err)
	s.Equal("lamp", out.View.Scene.ID)
	s.Equal(map[string]int{testutils.ValueTrust: 1}, out.Changed)

	out = s.advance(id, 2)
	s.True(out.View.Ended)
	s.Equal(playback.EndingNormal, out.View.Ending)
	s.False(out.View.RevivalAvailable)
}

func (s *OrchestratorTestSuite) TestGetAndEndSession() {
	id := s.start()
	s.advance(id, 2)

	out, err := s.orch.GetSession(s.ctx, &preview.SessionInput{SessionID: id})
	s.Require().NoError(err)
	s.Equal(1, out.View.ElementIndex)
	s.Empty(out.Changed)

	ended, err := s.orch.EndSession(s.ctx, &preview.SessionInput{SessionID: id})
	s.Require().NoError(err)
	s.True(ended.Deleted)

	_, err = s.orch.GetSession(s.ctx, &preview.SessionInput{SessionID: id})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestExpiredSession() {
	id := s.start()
	s.clock.Advance(previewsession.DefaultTTL + time.Minute)

	_, err := s.orch.Advance(s.ctx, &preview.SessionInput{SessionID: id})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestRequiresSessionID() {
	_, err := s.orch.Advance(s.ctx, &preview.SessionInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orch.SelectChoice(s.ctx, &preview.SelectChoiceInput{SessionID: "preview_1"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orch.GetSession(s.ctx, &preview.SessionInput{SessionID: "story_1"})
	s.True(errors.IsInvalidArgument(err))
	s.Equal("story_1", errors.GetMeta(err)[errors.MetaSessionID])

	_, err = s.orch.EndSession(s.ctx, &preview.SessionInput{SessionID: "story_1"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestRemovedSceneRestartsAtStart() {
	id := s.start()
	s.Require().NotNil(s.advance(id, 2))

	got, err := s.sessions.Get(s.ctx, previewsession.GetInput{ID: id})
	s.Require().NoError(err)
	got.Session.State.SceneID = "demolished"
	got.Session.State.ElementIndex = 1
	_, err = s.sessions.Update(s.ctx, previewsession.UpdateInput{Session: got.Session})
	s.Require().NoError(err)

	out, err := s.orch.GetSession(s.ctx, &preview.SessionInput{SessionID: id})
	s.Require().NoError(err)
	s.Equal("shore", out.View.Scene.ID)
	s.Equal(playback.IntroIndex, out.View.ElementIndex)
	s.Equal("shore", out.Session.State.SceneID)

	out, err = s.orch.Advance(s.ctx, &preview.SessionInput{SessionID: id})
	s.Require().NoError(err)
	s.Equal("shore", out.View.Scene.ID)
	s.Equal(0, out.View.ElementIndex)
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
