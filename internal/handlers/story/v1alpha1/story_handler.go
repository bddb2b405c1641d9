// Package v1alpha1 exposes the story and preview services over gRPC
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-story/internal/errors"
	"github.com/KirkDiggler/rpg-story/internal/orchestrators/authoring"
)

// StoryHandlerConfig holds dependencies for the story handler
type StoryHandlerConfig struct {
	AuthoringService authoring.Service
}

// Validate ensures all required dependencies are present
func (c *StoryHandlerConfig) Validate() error {
	if c.AuthoringService == nil {
		return errors.InvalidArgument("authoring service is required")
	}
	return nil
}

// StoryHandler implements StoryServiceServer
type StoryHandler struct {
	authoring authoring.Service
}

// NewStoryHandler creates a new story handler with the given configuration
func NewStoryHandler(cfg *StoryHandlerConfig) (*StoryHandler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &StoryHandler{authoring: cfg.AuthoringService}, nil
}

var _ StoryServiceServer = (*StoryHandler)(nil)

// CreateStory stores a new story
func (h *StoryHandler) CreateStory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in StoryRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.Story == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("story is required"))
	}

	out, err := h.authoring.CreateStory(ctx, &authoring.CreateStoryInput{Story: in.Story})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(&StoryResponse{Record: toRecordResponse(out.Record), Warnings: out.Warnings})
}

// GetStory loads a story
func (h *StoryHandler) GetStory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in StoryIDRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.StoryID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("storyId is required"))
	}

	out, err := h.authoring.GetStory(ctx, &authoring.GetStoryInput{StoryID: in.StoryID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(&StoryResponse{Record: toRecordResponse(out.Record)})
}

// UpdateStory replaces a story
func (h *StoryHandler) UpdateStory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in StoryRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.Story == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("story is required"))
	}

	out, err := h.authoring.UpdateStory(ctx, &authoring.UpdateStoryInput{
		Story:           in.Story,
		ExpectedVersion: in.ExpectedVersion,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(&StoryResponse{Record: toRecordResponse(out.Record), Warnings: out.Warnings})
}

// DeleteStory removes a story
func (h *StoryHandler) DeleteStory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in StoryIDRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.StoryID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("storyId is required"))
	}

	if _, err := h.authoring.DeleteStory(ctx, &authoring.DeleteStoryInput{StoryID: in.StoryID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

// ListStories lists stored stories
func (h *StoryHandler) ListStories(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ListStoriesRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.authoring.ListStories(ctx, &authoring.ListStoriesInput{Limit: in.Limit})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	records := make([]*RecordResponse, 0, len(out.Records))
	for _, rec := range out.Records {
		records = append(records, toRecordResponse(rec))
	}
	return respond(&ListStoriesResponse{Records: records})
}

// DeriveGraph returns the presentation graph of a story
func (h *StoryHandler) DeriveGraph(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in AnalyzeRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.authoring.DeriveGraph(ctx, &authoring.DeriveGraphInput{StoryID: in.StoryID, Story: in.Story})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(&GraphResponse{Graph: out.Graph})
}

// LintStory returns authoring warnings for a story
func (h *StoryHandler) LintStory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in AnalyzeRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.authoring.LintStory(ctx, &authoring.LintStoryInput{StoryID: in.StoryID, Story: in.Story})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(&LintResponse{Warnings: out.Warnings})
}

// SimulateStory runs random playthroughs of a stored story
func (h *StoryHandler) SimulateStory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in SimulateRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.StoryID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("storyId is required"))
	}

	out, err := h.authoring.SimulateStory(ctx, &authoring.SimulateStoryInput{
		StoryID:      in.StoryID,
		Runs:         in.Runs,
		StartSceneID: in.StartSceneID,
		MaxSteps:     in.MaxSteps,
		MaxRevivals:  in.MaxRevivals,
		PayPrices:    in.PayPrices,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(toSimulateResponse(out))
}

// respond encodes v and converts any failure to a gRPC status
func respond(v interface{}) (*structpb.Struct, error) {
	out, err := encodeResponse(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}
