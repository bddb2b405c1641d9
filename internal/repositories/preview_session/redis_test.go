package previewsession_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	"github.com/KirkDiggler/rpg-story/internal/engine/values"
	"github.com/KirkDiggler/rpg-story/internal/errors"
	"github.com/KirkDiggler/rpg-story/internal/pkg/clock"
	previewsession "github.com/KirkDiggler/rpg-story/internal/repositories/preview_session"
	"github.com/KirkDiggler/rpg-story/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	clock *clock.Fixed
	repo  previewsession.Repository
	ctx   context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.clock = clock.NewFixed(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	repo, err := previewsession.NewRedisRepository(&previewsession.Config{Client: client, Clock: s.clock})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) state() playback.State {
	return playback.State{
		StoryID:      testutils.TestStoryID,
		SceneID:      "shore",
		ElementIndex: playback.IntroIndex,
		Phase:        playback.PhaseInScene,
		Values:       values.Values{testutils.ValueCourage: 1},
		History:      []string{"shore"},
	}
}

func (s *RedisRepositoryTestSuite) TestConfigValidation() {
	_, err := previewsession.NewRedisRepository(&previewsession.Config{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	out, err := s.repo.Create(s.ctx, previewsession.CreateInput{
		ID:           "preview_1",
		StoryID:      testutils.TestStoryID,
		StoryVersion: 3,
		State:        s.state(),
	})
	s.Require().NoError(err)
	s.Assert().Equal(s.clock.Now().Add(previewsession.DefaultTTL), out.Session.ExpiresAt)

	s.Assert().True(s.mr.Exists("preview_session:preview_1"))
	s.Assert().Equal(previewsession.DefaultTTL, s.mr.TTL("preview_session:preview_1"))

	got, err := s.repo.Get(s.ctx, previewsession.GetInput{ID: "preview_1"})
	s.Require().NoError(err)
	s.Assert().Equal(int64(3), got.Session.StoryVersion)
	s.Assert().Equal(s.state(), got.Session.State)
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	_, err := s.repo.Create(s.ctx, previewsession.CreateInput{StoryID: "x"})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, previewsession.CreateInput{ID: "x"})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestExpiredSessionsAreNotFound() {
	_, err := s.repo.Create(s.ctx, previewsession.CreateInput{
		ID: "preview_1", StoryID: "s", State: s.state(), TTL: time.Minute,
	})
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, previewsession.GetInput{ID: "preview_1"})
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().False(s.mr.Exists("preview_session:preview_1"), "expired blob is cleaned up")
}

func (s *RedisRepositoryTestSuite) TestUpdateKeepsExpiry() {
	created, err := s.repo.Create(s.ctx, previewsession.CreateInput{
		ID: "preview_1", StoryID: "s", State: s.state(), TTL: time.Hour,
	})
	s.Require().NoError(err)

	s.clock.Advance(20 * time.Minute)
	session := created.Session
	session.State.ElementIndex = 1

	_, err = s.repo.Update(s.ctx, previewsession.UpdateInput{Session: session})
	s.Require().NoError(err)
	s.Assert().Equal(40*time.Minute, s.mr.TTL("preview_session:preview_1"))

	got, err := s.repo.Get(s.ctx, previewsession.GetInput{ID: "preview_1"})
	s.Require().NoError(err)
	s.Assert().Equal(1, got.Session.State.ElementIndex)

	s.clock.Advance(time.Hour)
	_, err = s.repo.Update(s.ctx, previewsession.UpdateInput{Session: session})
	s.Assert().True(errors.IsFailedPrecondition(err))
}

func (s *RedisRepositoryTestSuite) TestUpdateDoesNotResurrect() {
	created, err := s.repo.Create(s.ctx, previewsession.CreateInput{
		ID: "preview_1", StoryID: "s", State: s.state(), TTL: time.Hour,
	})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Hour)

	_, err = s.repo.Update(s.ctx, previewsession.UpdateInput{Session: created.Session})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, previewsession.CreateInput{ID: "preview_1", StoryID: "s", State: s.state()})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, previewsession.DeleteInput{ID: "preview_1"})
	s.Require().NoError(err)
	s.Assert().True(out.Deleted)

	out, err = s.repo.Delete(s.ctx, previewsession.DeleteInput{ID: "preview_1"})
	s.Require().NoError(err)
	s.Assert().False(out.Deleted)
}
