package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-story/internal/errors"
	"github.com/KirkDiggler/rpg-story/internal/orchestrators/preview"
)

// PreviewHandlerConfig holds dependencies for the preview handler
type PreviewHandlerConfig struct {
	PreviewService preview.Service
}

// Validate ensures all required dependencies are present
func (c *PreviewHandlerConfig) Validate() error {
	if c.PreviewService == nil {
		return errors.InvalidArgument("preview service is required")
	}
	return nil
}

// PreviewHandler implements PreviewServiceServer
type PreviewHandler struct {
	preview preview.Service
}

// NewPreviewHandler creates a new preview handler with the given configuration
func NewPreviewHandler(cfg *PreviewHandlerConfig) (*PreviewHandler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &PreviewHandler{preview: cfg.PreviewService}, nil
}

var _ PreviewServiceServer = (*PreviewHandler)(nil)

// StartSession begins a preview playthrough
func (h *PreviewHandler) StartSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in StartSessionRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.StoryID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("storyId is required"))
	}

	out, err := h.preview.StartSession(ctx, &preview.StartSessionInput{StoryID: in.StoryID, SceneID: in.SceneID})
	return sessionResponse(out, err)
}

// GetSession returns the current view
func (h *PreviewHandler) GetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := decodeSession(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	out, err := h.preview.GetSession(ctx, in)
	return sessionResponse(out, err)
}

// EndSession discards a session
func (h *PreviewHandler) EndSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := decodeSession(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	out, err := h.preview.EndSession(ctx, in)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(&EndSessionResponse{Deleted: out.Deleted})
}

// Advance moves past the current element
func (h *PreviewHandler) Advance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := decodeSession(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	out, err := h.preview.Advance(ctx, in)
	return sessionResponse(out, err)
}

// SelectChoice picks an option of the current choice
func (h *PreviewHandler) SelectChoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in SelectChoiceRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("sessionId is required"))
	}
	if in.OptionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("optionId is required"))
	}

	out, err := h.preview.SelectChoice(ctx, &preview.SelectChoiceInput{
		SessionID: in.SessionID,
		OptionID:  in.OptionID,
		PricePaid: in.PricePaid,
	})
	return sessionResponse(out, err)
}

// ResolveQTE reports the result of the current QTE
func (h *PreviewHandler) ResolveQTE(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := decodeResolve(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	out, err := h.preview.ResolveQTE(ctx, in)
	return sessionResponse(out, err)
}

// ResolveDialogueTask reports the result of the current dialogue task
func (h *PreviewHandler) ResolveDialogueTask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := decodeResolve(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	out, err := h.preview.ResolveDialogueTask(ctx, in)
	return sessionResponse(out, err)
}

// Revive restarts a bad ending at its revival point
func (h *PreviewHandler) Revive(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := decodeSession(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	out, err := h.preview.Revive(ctx, in)
	return sessionResponse(out, err)
}

func decodeSession(req *structpb.Struct) (*preview.SessionInput, error) {
	var in SessionRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}
	if in.SessionID == "" {
		return nil, errors.InvalidArgument("sessionId is required")
	}
	return &preview.SessionInput{SessionID: in.SessionID}, nil
}

func decodeResolve(req *structpb.Struct) (*preview.ResolveInput, error) {
	var in ResolveRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}
	if in.SessionID == "" {
		return nil, errors.InvalidArgument("sessionId is required")
	}
	return &preview.ResolveInput{SessionID: in.SessionID, Success: in.Success}, nil
}

func sessionResponse(out *preview.SessionOutput, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	resp, err := toSessionResponse(out)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode view"))
	}
	return respond(resp)
}
