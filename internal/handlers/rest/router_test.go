package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-story/internal/engine/graph"
	"github.com/KirkDiggler/rpg-story/internal/engine/rules"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
	"github.com/KirkDiggler/rpg-story/internal/errors"
	"github.com/KirkDiggler/rpg-story/internal/handlers/rest"
	"github.com/KirkDiggler/rpg-story/internal/orchestrators/authoring"
	authoringmock "github.com/KirkDiggler/rpg-story/internal/orchestrators/authoring/mock"
	storyrepo "github.com/KirkDiggler/rpg-story/internal/repositories/story"
	"github.com/KirkDiggler/rpg-story/internal/testutils"
)

type RouterTestSuite struct {
	suite.Suite

	ctrl          *gomock.Controller
	mockAuthoring *authoringmock.MockService
	router        *gin.Engine
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockAuthoring = authoringmock.NewMockService(s.ctrl)

	router, err := rest.NewRouter(&rest.Config{AuthoringService: s.mockAuthoring, Mode: gin.TestMode})
	s.Require().NoError(err)
	s.router = router
}

func (s *RouterTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RouterTestSuite) do(method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) deriveFromInput() {
	s.mockAuthoring.EXPECT().
		DeriveGraph(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *authoring.DeriveGraphInput) (*authoring.DeriveGraphOutput, error) {
			return &authoring.DeriveGraphOutput{Graph: graph.Derive(input.Story)}, nil
		})
}

func (s *RouterTestSuite) TestNewRouterRequiresService() {
	_, err := rest.NewRouter(&rest.Config{})
	s.Error(err)
}

func (s *RouterTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *RouterTestSuite) TestStoryGraph() {
	s.mockAuthoring.EXPECT().
		DeriveGraph(gomock.Any(), &authoring.DeriveGraphInput{StoryID: testutils.TestStoryID}).
		Return(&authoring.DeriveGraphOutput{Graph: graph.Derive(testutils.CreateTestStory())}, nil)

	rec := s.do(http.MethodGet, "/v1/stories/"+testutils.TestStoryID+"/graph", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var got graph.Graph
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Len(got.Nodes, 5)
	s.NotEmpty(got.Edges)
}

func (s *RouterTestSuite) TestStoryGraphNotFound() {
	s.mockAuthoring.EXPECT().
		DeriveGraph(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("story not found"))

	rec := s.do(http.MethodGet, "/v1/stories/missing/graph", "", nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "NOT_FOUND")
}

func (s *RouterTestSuite) TestStoryLint() {
	s.mockAuthoring.EXPECT().
		LintStory(gomock.Any(), &authoring.LintStoryInput{StoryID: testutils.TestStoryID}).
		Return(&authoring.LintStoryOutput{Warnings: []rules.Warning{{Code: rules.WarnUnreachableScene, SceneID: "x", Message: "unreachable"}}}, nil)

	rec := s.do(http.MethodGet, "/v1/stories/"+testutils.TestStoryID+"/lint", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), string(rules.WarnUnreachableScene))
}

func (s *RouterTestSuite) TestPostedGraphJSON() {
	s.deriveFromInput()

	body, err := story.EncodeJSON(testutils.CreateTestStory())
	s.Require().NoError(err)

	rec := s.do(http.MethodPost, "/v1/graph", "application/json", body)
	s.Require().Equal(http.StatusOK, rec.Code)

	var got graph.Graph
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Len(got.Nodes, 5)
}

func (s *RouterTestSuite) TestPostedGraphYAML() {
	s.deriveFromInput()

	body := []byte(`
id: s1
title: Tiny
scenes:
  - id: a
    title: A
    type: start
    nextSceneId: b
    elements: []
  - id: b
    title: B
    type: ending
    elements: []
`)
	rec := s.do(http.MethodPost, "/v1/graph", "application/yaml", body)
	s.Require().Equal(http.StatusOK, rec.Code)

	var got graph.Graph
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Len(got.Nodes, 2)
	s.Require().Len(got.Edges, 1)
	s.Equal(graph.EdgeNext, got.Edges[0].Kind)
}

func (s *RouterTestSuite) TestPostedBodyTooLarge() {
	router, err := rest.NewRouter(&rest.Config{
		AuthoringService: s.mockAuthoring,
		Mode:             gin.TestMode,
		MaxBodyBytes:     32,
	})
	s.Require().NoError(err)

	body := []byte(`{"id":"story_big","title":"` + strings.Repeat("x", 64) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/graph", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "exceeds 32 bytes")
}

func (s *RouterTestSuite) TestPostedGraphMalformed() {
	rec := s.do(http.MethodPost, "/v1/graph", "application/json", []byte(`{"scenes": 3}`))
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/v1/graph", "application/json", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestPostedLint() {
	s.mockAuthoring.EXPECT().
		LintStory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *authoring.LintStoryInput) (*authoring.LintStoryOutput, error) {
			return &authoring.LintStoryOutput{Warnings: rules.Lint(input.Story)}, nil
		})

	rec := s.do(http.MethodPost, "/v1/lint", "application/json",
		[]byte(`{"id":"s1","title":"T","scenes":[{"id":"a","title":"A","type":"normal","elements":[]}]}`))
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), string(rules.WarnNoStartScene))
}

func (s *RouterTestSuite) TestListStories() {
	s.mockAuthoring.EXPECT().
		ListStories(gomock.Any(), gomock.Any()).
		Return(&authoring.ListStoriesOutput{Records: []*storyrepo.Record{
			{Story: testutils.CreateTestStory(), Version: 2},
		}}, nil)

	rec := s.do(http.MethodGet, "/v1/stories", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var got struct {
		Stories []struct {
			ID      string `json:"id"`
			Version int64  `json:"version"`
			Scenes  int    `json:"scenes"`
		} `json:"stories"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got.Stories, 1)
	s.Equal(testutils.TestStoryID, got.Stories[0].ID)
	s.Equal(5, got.Stories[0].Scenes)
}
