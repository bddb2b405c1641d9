package v1alpha1_test

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
	"github.com/KirkDiggler/rpg-story/internal/errors"
	"github.com/KirkDiggler/rpg-story/internal/handlers/story/v1alpha1"
	"github.com/KirkDiggler/rpg-story/internal/orchestrators/authoring"
	authoringmock "github.com/KirkDiggler/rpg-story/internal/orchestrators/authoring/mock"
	"github.com/KirkDiggler/rpg-story/internal/orchestrators/preview"
	previewmock "github.com/KirkDiggler/rpg-story/internal/orchestrators/preview/mock"
	previewsession "github.com/KirkDiggler/rpg-story/internal/repositories/preview_session"
	storyrepo "github.com/KirkDiggler/rpg-story/internal/repositories/story"
	"github.com/KirkDiggler/rpg-story/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite

	ctrl          *gomock.Controller
	mockAuthoring *authoringmock.MockService
	mockPreview   *previewmock.MockService
	client        *v1alpha1.Client
	server        *grpc.Server
	conn          *grpc.ClientConn
	ctx           context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockAuthoring = authoringmock.NewMockService(s.ctrl)
	s.mockPreview = previewmock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	storyHandler, err := v1alpha1.NewStoryHandler(&v1alpha1.StoryHandlerConfig{AuthoringService: s.mockAuthoring})
	s.Require().NoError(err)
	previewHandler, err := v1alpha1.NewPreviewHandler(&v1alpha1.PreviewHandlerConfig{PreviewService: s.mockPreview})
	s.Require().NoError(err)

	lis := bufconn.Listen(1 << 20)
	s.server = grpc.NewServer()
	v1alpha1.RegisterStoryServiceServer(s.server, storyHandler)
	v1alpha1.RegisterPreviewServiceServer(s.server, previewHandler)
	go func() {
		_ = s.server.Serve(lis)
	}()

	s.conn, err = grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.client = v1alpha1.NewClient(s.conn)
}

func (s *HandlerTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
	s.ctrl.Finish()
}

// toStruct converts any JSON-encodable value to a request payload
func (s *HandlerTestSuite) toStruct(v interface{}) *structpb.Struct {
	data, err := json.Marshal(v)
	s.Require().NoError(err)
	out := &structpb.Struct{}
	s.Require().NoError(protojson.Unmarshal(data, out))
	return out
}

// fromStruct decodes a response payload into v
func (s *HandlerTestSuite) fromStruct(in *structpb.Struct, v interface{}) {
	data, err := protojson.Marshal(in)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal(data, v))
}

func (s *HandlerTestSuite) record(st *story.Story) *storyrepo.Record {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &storyrepo.Record{Story: st, Version: 1, CreatedAt: now, UpdatedAt: now}
}

func (s *HandlerTestSuite) TestNewHandlers() {
	_, err := v1alpha1.NewStoryHandler(&v1alpha1.StoryHandlerConfig{})
	s.Error(err)
	_, err = v1alpha1.NewPreviewHandler(nil)
	s.Error(err)
}

func (s *HandlerTestSuite) TestCreateStory() {
	fixture := testutils.CreateTestStory()

	s.mockAuthoring.EXPECT().
		CreateStory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *authoring.CreateStoryInput) (*authoring.CreateStoryOutput, error) {
			s.Equal(fixture.Title, input.Story.Title)
			s.Len(input.Story.Scenes, len(fixture.Scenes))
			return &authoring.CreateStoryOutput{Record: s.record(input.Story)}, nil
		})

	resp, err := s.client.Call(s.ctx, v1alpha1.StoryServiceName, "CreateStory",
		s.toStruct(map[string]interface{}{"story": fixture}))
	s.Require().NoError(err)

	var got v1alpha1.StoryResponse
	s.fromStruct(resp, &got)
	s.Equal(testutils.TestStoryID, got.Record.Story.ID)
	s.Equal(int64(1), got.Record.Version)

	choice, ok := got.Record.Story.Scenes[0].Elements[2].(*story.Choice)
	s.Require().True(ok, "elements keep their concrete type across the wire")
	s.Len(choice.Options, 2)
}

func (s *HandlerTestSuite) TestCreateStoryRequiresStory() {
	_, err := s.client.Call(s.ctx, v1alpha1.StoryServiceName, "CreateStory", s.toStruct(map[string]interface{}{}))
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestGetStoryNotFound() {
	s.mockAuthoring.EXPECT().
		GetStory(gomock.Any(), &authoring.GetStoryInput{StoryID: "missing"}).
		Return(nil, errors.NotFound("story not found"))

	_, err := s.client.Call(s.ctx, v1alpha1.StoryServiceName, "GetStory",
		s.toStruct(map[string]interface{}{"storyId": "missing"}))
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *HandlerTestSuite) TestUpdateStoryPassesVersion() {
	fixture := testutils.CreateTestStory()

	s.mockAuthoring.EXPECT().
		UpdateStory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *authoring.UpdateStoryInput) (*authoring.UpdateStoryOutput, error) {
			s.Equal(int64(7), input.ExpectedVersion)
			return nil, errors.Aborted("version mismatch")
		})

	_, err := s.client.Call(s.ctx, v1alpha1.StoryServiceName, "UpdateStory",
		s.toStruct(map[string]interface{}{"story": fixture, "expectedVersion": 7}))
	s.Equal(codes.Aborted, status.Code(err))
}

func (s *HandlerTestSuite) TestDeriveGraphInline() {
	s.mockAuthoring.EXPECT().
		DeriveGraph(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *authoring.DeriveGraphInput) (*authoring.DeriveGraphOutput, error) {
			s.Require().NotNil(input.Story)
			s.Empty(input.StoryID)
			return &authoring.DeriveGraphOutput{}, nil
		})

	_, err := s.client.Call(s.ctx, v1alpha1.StoryServiceName, "DeriveGraph",
		s.toStruct(map[string]interface{}{"story": testutils.CreateTestStory()}))
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TestSimulateStory() {
	s.mockAuthoring.EXPECT().
		SimulateStory(gomock.Any(), &authoring.SimulateStoryInput{StoryID: testutils.TestStoryID, Runs: 2}).
		Return(&authoring.SimulateStoryOutput{
			Traces:  []*playback.Trace{{Ending: playback.EndingNormal}, {Ending: playback.EndingNormal}},
			Endings: map[playback.Ending]int{playback.EndingNormal: 2},
			Visits:  map[string]int{"shore": 2},
		}, nil)

	resp, err := s.client.Call(s.ctx, v1alpha1.StoryServiceName, "SimulateStory",
		s.toStruct(map[string]interface{}{"storyId": testutils.TestStoryID, "runs": 2}))
	s.Require().NoError(err)

	var got v1alpha1.SimulateResponse
	s.fromStruct(resp, &got)
	s.Equal(2, got.Runs)
	s.Equal(2, got.Endings[playback.EndingNormal])
}

func (s *HandlerTestSuite) TestStartSession() {
	fixture := testutils.CreateTestStory()
	shore, _ := fixture.Scene("shore")

	s.mockPreview.EXPECT().
		StartSession(gomock.Any(), &preview.StartSessionInput{StoryID: testutils.TestStoryID}).
		Return(&preview.SessionOutput{
			Session: &previewsession.Session{ID: "preview_1", StoryID: testutils.TestStoryID},
			View: playback.View{
				Scene:        shore,
				LocationName: "Rocky Coast",
				ElementIndex: playback.IntroIndex,
				ElementCount: 3,
				Values:       map[string]int{testutils.ValueCourage: 1},
			},
			Changed: map[string]int{},
		}, nil)

	resp, err := s.client.Call(s.ctx, v1alpha1.PreviewServiceName, "StartSession",
		s.toStruct(map[string]interface{}{"storyId": testutils.TestStoryID}))
	s.Require().NoError(err)

	var got v1alpha1.SessionResponse
	s.fromStruct(resp, &got)
	s.Equal("preview_1", got.Session.ID)
	s.Equal("shore", got.View.SceneID)
	s.Equal(story.SceneStart, got.View.SceneType)
	s.Equal(-1, got.View.ElementIndex)
	s.Equal("null", string(got.View.Element))
	s.Equal(1, got.View.Values[testutils.ValueCourage])
}

func (s *HandlerTestSuite) TestSelectChoiceLocked() {
	s.mockPreview.EXPECT().
		SelectChoice(gomock.Any(), &preview.SelectChoiceInput{SessionID: "preview_1", OptionID: "cellar"}).
		Return(nil, errors.FailedPrecondition("option cellar is locked").WithMeta("option_id", "cellar"))

	_, err := s.client.Call(s.ctx, v1alpha1.PreviewServiceName, "SelectChoice",
		s.toStruct(map[string]interface{}{"sessionId": "preview_1", "optionId": "cellar"}))
	s.Require().Error(err)
	s.Equal(codes.FailedPrecondition, status.Code(err))

	converted := errors.FromGRPCError(err)
	s.Equal("cellar", errors.GetMeta(converted)["option_id"])
}

func (s *HandlerTestSuite) TestPreviewRequiresSessionID() {
	for _, method := range []string{"GetSession", "Advance", "Revive", "EndSession", "ResolveQTE", "ResolveDialogueTask", "SelectChoice"} {
		_, err := s.client.Call(s.ctx, v1alpha1.PreviewServiceName, method, s.toStruct(map[string]interface{}{}))
		s.Equal(codes.InvalidArgument, status.Code(err), method)
	}
}

func (s *HandlerTestSuite) TestResolveQTE() {
	s.mockPreview.EXPECT().
		ResolveQTE(gomock.Any(), &preview.ResolveInput{SessionID: "preview_1", Success: true}).
		Return(&preview.SessionOutput{
			Session: &previewsession.Session{ID: "preview_1"},
			View:    playback.View{Ended: true, Ending: playback.EndingNormal},
			Changed: map[string]int{testutils.ValueCourage: 2},
		}, nil)

	resp, err := s.client.Call(s.ctx, v1alpha1.PreviewServiceName, "ResolveQTE",
		s.toStruct(map[string]interface{}{"sessionId": "preview_1", "success": true}))
	s.Require().NoError(err)

	var got v1alpha1.SessionResponse
	s.fromStruct(resp, &got)
	s.True(got.View.Ended)
	s.Equal(2, got.Changed[testutils.ValueCourage])
}
