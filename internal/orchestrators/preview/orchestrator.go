// Package preview runs preview playthroughs of stored stories. The playback
// cursor lives in the preview session repository between commands.
package preview

//go:generate mockgen -destination=mock/mock_service.go -package=previewmock github.com/KirkDiggler/rpg-story/internal/orchestrators/preview Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	"github.com/KirkDiggler/rpg-story/internal/engine/values"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
	"github.com/KirkDiggler/rpg-story/internal/errors"
	"github.com/KirkDiggler/rpg-story/internal/pkg/idgen"
	previewsession "github.com/KirkDiggler/rpg-story/internal/repositories/preview_session"
	storyrepo "github.com/KirkDiggler/rpg-story/internal/repositories/story"
)

// Service defines the interface for preview playthroughs
type Service interface {
	StartSession(ctx context.Context, input *StartSessionInput) (*SessionOutput, error)
	GetSession(ctx context.Context, input *SessionInput) (*SessionOutput, error)
	EndSession(ctx context.Context, input *SessionInput) (*EndSessionOutput, error)

	// Playback commands
	Advance(ctx context.Context, input *SessionInput) (*SessionOutput, error)
	SelectChoice(ctx context.Context, input *SelectChoiceInput) (*SessionOutput, error)
	ResolveQTE(ctx context.Context, input *ResolveInput) (*SessionOutput, error)
	ResolveDialogueTask(ctx context.Context, input *ResolveInput) (*SessionOutput, error)
	Revive(ctx context.Context, input *SessionInput) (*SessionOutput, error)
}

// Config holds the dependencies for the preview orchestrator
type Config struct {
	StoryRepo   storyrepo.Repository
	SessionRepo previewsession.Repository
	IDGenerator idgen.Generator

	// EventBus is optional; nothing is published without one
	EventBus events.EventBus

	// TTL defaults to the session repository default
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.StoryRepo == nil {
		vb.RequiredField("StoryRepo")
	}
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.TTL < 0 {
		vb.InvalidField("TTL", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	storyRepo   storyrepo.Repository
	sessionRepo previewsession.Repository
	idGen       idgen.Generator
	bus         events.EventBus
	ttl         time.Duration
}

// NewOrchestrator creates a new preview orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		storyRepo:   cfg.StoryRepo,
		sessionRepo: cfg.SessionRepo,
		idGen:       cfg.IDGenerator,
		bus:         cfg.EventBus,
		ttl:         cfg.TTL,
	}, nil
}

// convertPlaybackError maps state machine errors to service codes
func convertPlaybackError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, playback.ErrUnknownOption), errors.Is(err, playback.ErrUnknownScene):
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid playback command")
	case errors.Is(err, playback.ErrEnded),
		errors.Is(err, playback.ErrNotAtChoice),
		errors.Is(err, playback.ErrNotAtQTE),
		errors.Is(err, playback.ErrNotAtTask),
		errors.Is(err, playback.ErrRevivalNotReady),
		errors.Is(err, playback.ErrNoScenes):
		return errors.WrapWithCode(err, errors.CodeFailedPrecondition, "command does not apply to current state")
	default:
		return errors.WrapWithCode(err, errors.CodeInternal, "playback failed")
	}
}

// StartSession begins a playthrough at the requested or default scene
func (o *orchestrator) StartSession(ctx context.Context, input *StartSessionInput) (*SessionOutput, error) {
	if input == nil || input.StoryID == "" {
		return nil, errors.InvalidArgument("story ID is required")
	}

	got, err := o.storyRepo.Get(ctx, storyrepo.GetInput{ID: input.StoryID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get story")
	}
	record := got.Record

	player, err := playback.New(record.Story, input.SceneID)
	if err != nil {
		return nil, convertPlaybackError(err)
	}

	created, err := o.sessionRepo.Create(ctx, previewsession.CreateInput{
		ID:           o.idGen.Generate(),
		StoryID:      record.Story.ID,
		StoryVersion: record.Version,
		State:        player.State(),
		TTL:          o.ttl,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create preview session")
	}

	slog.Info("Preview session started",
		"session_id", created.Session.ID,
		"story_id", record.Story.ID,
		"scene_id", player.State().SceneID)

	o.publishSceneEntered(ctx, created.Session.ID, record.Story, player.State().SceneID)

	return &SessionOutput{
		Session: created.Session,
		View:    player.View(),
		Changed: map[string]int{},
	}, nil
}

// GetSession returns the current view of a session
func (o *orchestrator) GetSession(ctx context.Context, input *SessionInput) (*SessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	session, player, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &SessionOutput{Session: session, View: player.View(), Changed: map[string]int{}}, nil
}

// EndSession discards a session
func (o *orchestrator) EndSession(ctx context.Context, input *SessionInput) (*EndSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if err := requirePreviewID(input.SessionID); err != nil {
		return nil, err
	}

	deleted, err := o.sessionRepo.Delete(ctx, previewsession.DeleteInput{ID: input.SessionID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete preview session")
	}

	slog.Info("Preview session ended", "session_id", input.SessionID, "deleted", deleted.Deleted)
	return &EndSessionOutput{Deleted: deleted.Deleted}, nil
}

// Advance moves past the current element
func (o *orchestrator) Advance(ctx context.Context, input *SessionInput) (*SessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	return o.step(ctx, input.SessionID, func(p *playback.Player) error {
		return p.Advance()
	})
}

// SelectChoice takes an option after checking its lock
func (o *orchestrator) SelectChoice(ctx context.Context, input *SelectChoiceInput) (*SessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if input.OptionID == "" {
		return nil, errors.InvalidArgument("option ID is required")
	}

	return o.step(ctx, input.SessionID, func(p *playback.Player) error {
		el, _ := p.Current()
		if choice, ok := el.(*story.Choice); ok {
			if opt, ok := choice.Option(input.OptionID); ok && !values.OptionUnlocked(*opt, p.Values(), input.PricePaid) {
				return errors.FailedPreconditionf("option %s is locked", opt.ID).
					WithMeta("option_id", opt.ID).
					WithMeta("unlock_price", opt.UnlockPrice)
			}
		}
		return p.SelectChoice(input.OptionID)
	})
}

// ResolveQTE reports the result of the current QTE
func (o *orchestrator) ResolveQTE(ctx context.Context, input *ResolveInput) (*SessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	return o.step(ctx, input.SessionID, func(p *playback.Player) error {
		return p.ResolveQTE(input.Success)
	})
}

// ResolveDialogueTask reports the result of the current dialogue task
func (o *orchestrator) ResolveDialogueTask(ctx context.Context, input *ResolveInput) (*SessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	return o.step(ctx, input.SessionID, func(p *playback.Player) error {
		return p.ResolveDialogueTask(input.Success)
	})
}

// Revive restarts a bad ending at its revival point
func (o *orchestrator) Revive(ctx context.Context, input *SessionInput) (*SessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	return o.step(ctx, input.SessionID, func(p *playback.Player) error {
		return p.Revive()
	})
}

// load fetches a session and rebuilds its player against the stored story
func (o *orchestrator) load(ctx context.Context, sessionID string) (*previewsession.Session, *playback.Player, error) {
	if err := requirePreviewID(sessionID); err != nil {
		return nil, nil, err
	}

	got, err := o.sessionRepo.Get(ctx, previewsession.GetInput{ID: sessionID})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to get preview session")
	}
	session := got.Session

	storyOut, err := o.storyRepo.Get(ctx, storyrepo.GetInput{ID: session.StoryID})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to get story for preview session")
	}
	if storyOut.Record.Version != session.StoryVersion {
		slog.Warn("Story changed during preview",
			"session_id", session.ID,
			"story_id", session.StoryID,
			"session_version", session.StoryVersion,
			"story_version", storyOut.Record.Version)
	}

	player, err := playback.Restore(storyOut.Record.Story, session.State)
	if errors.Is(err, playback.ErrUnknownScene) {
		slog.Warn("Preview scene removed from story, restarting at start scene",
			"session_id", session.ID,
			"story_id", session.StoryID,
			"scene_id", session.State.SceneID)
		player, err = playback.New(storyOut.Record.Story, "")
		if err == nil {
			session.State = player.State()
		}
	}
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeFailedPrecondition, "preview session no longer matches story")
	}
	return session, player, nil
}

func requirePreviewID(sessionID string) error {
	if !idgen.HasPrefix(sessionID, idgen.PrefixPreview) {
		return errors.InvalidArgumentf("%s is not a preview session id", sessionID).
			WithMeta(errors.MetaSessionID, sessionID)
	}
	return nil
}

// step runs one command against a stored session and saves the result
func (o *orchestrator) step(ctx context.Context, sessionID string, command func(p *playback.Player) error) (*SessionOutput, error) {
	session, player, err := o.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	before := player.State()

	if err := command(player); err != nil {
		var coded *errors.Error
		if errors.As(err, &coded) {
			return nil, err
		}
		return nil, convertPlaybackError(err)
	}

	after := player.State()
	session.State = after
	updated, err := o.sessionRepo.Update(ctx, previewsession.UpdateInput{Session: session})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save preview session")
	}

	changed := values.Diff(before.Values, after.Values)
	o.publishStep(ctx, session.ID, player.Story(), before, after, changed)

	return &SessionOutput{Session: updated.Session, View: player.View(), Changed: changed}, nil
}
