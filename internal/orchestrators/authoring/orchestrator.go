// Package authoring implements the story authoring orchestrator: storage,
// graph derivation, linting and simulated playthroughs.
package authoring

//go:generate mockgen -destination=mock/mock_service.go -package=authoringmock github.com/KirkDiggler/rpg-story/internal/orchestrators/authoring Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-story/internal/engine/graph"
	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	"github.com/KirkDiggler/rpg-story/internal/engine/rules"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
	"github.com/KirkDiggler/rpg-story/internal/errors"
	"github.com/KirkDiggler/rpg-story/internal/pkg/idgen"
	storyrepo "github.com/KirkDiggler/rpg-story/internal/repositories/story"
)

const (
	// DefaultSimulationRuns is used when a simulation asks for no runs
	DefaultSimulationRuns = 20

	// MaxSimulationRuns caps one simulation request
	MaxSimulationRuns = 500
)

// Service defines the interface for story authoring operations
type Service interface {
	CreateStory(ctx context.Context, input *CreateStoryInput) (*CreateStoryOutput, error)
	GetStory(ctx context.Context, input *GetStoryInput) (*GetStoryOutput, error)
	UpdateStory(ctx context.Context, input *UpdateStoryInput) (*UpdateStoryOutput, error)
	DeleteStory(ctx context.Context, input *DeleteStoryInput) (*DeleteStoryOutput, error)
	ListStories(ctx context.Context, input *ListStoriesInput) (*ListStoriesOutput, error)

	// Read-only analysis
	DeriveGraph(ctx context.Context, input *DeriveGraphInput) (*DeriveGraphOutput, error)
	LintStory(ctx context.Context, input *LintStoryInput) (*LintStoryOutput, error)
	SimulateStory(ctx context.Context, input *SimulateStoryInput) (*SimulateStoryOutput, error)
}

// Config holds the dependencies for the authoring orchestrator
type Config struct {
	StoryRepo   storyrepo.Repository
	IDGenerator idgen.Generator

	// Roller drives simulations; defaults to dice.DefaultRoller
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.StoryRepo == nil {
		vb.RequiredField("StoryRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	storyRepo storyrepo.Repository
	idGen     idgen.Generator
	roller    dice.Roller
}

// NewOrchestrator creates a new authoring orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}

	return &orchestrator{
		storyRepo: cfg.StoryRepo,
		idGen:     cfg.IDGenerator,
		roller:    roller,
	}, nil
}

func validateStory(s *story.Story) error {
	vb := errors.NewValidationBuilder()
	if s == nil {
		vb.RequiredField("story")
		return vb.Build()
	}
	errors.ValidateRequired("title", s.Title, vb)
	return vb.Build()
}

// CreateStory stores a new story, generating its ID when absent
func (o *orchestrator) CreateStory(ctx context.Context, input *CreateStoryInput) (*CreateStoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateStory(input.Story); err != nil {
		return nil, err
	}

	s := *input.Story
	if s.ID == "" {
		s.ID = o.idGen.Generate()
	}

	created, err := o.storyRepo.Create(ctx, storyrepo.CreateInput{Story: &s})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create story")
	}

	warnings := rules.Lint(&s)
	slog.Info("Story created",
		"story_id", s.ID,
		"scenes", len(s.Scenes),
		"warnings", len(warnings))

	return &CreateStoryOutput{Record: created.Record, Warnings: warnings}, nil
}

// GetStory loads a stored story
func (o *orchestrator) GetStory(ctx context.Context, input *GetStoryInput) (*GetStoryOutput, error) {
	if input == nil || input.StoryID == "" {
		return nil, errors.InvalidArgument("story ID is required")
	}

	got, err := o.storyRepo.Get(ctx, storyrepo.GetInput{ID: input.StoryID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get story")
	}

	return &GetStoryOutput{Record: got.Record}, nil
}

// UpdateStory replaces a stored story
func (o *orchestrator) UpdateStory(ctx context.Context, input *UpdateStoryInput) (*UpdateStoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateStory(input.Story); err != nil {
		return nil, err
	}
	if input.Story.ID == "" {
		return nil, errors.InvalidArgument("story ID is required")
	}

	updated, err := o.storyRepo.Update(ctx, storyrepo.UpdateInput{
		Story:           input.Story,
		ExpectedVersion: input.ExpectedVersion,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update story")
	}

	warnings := rules.Lint(input.Story)
	slog.Info("Story updated",
		"story_id", input.Story.ID,
		"version", updated.Record.Version,
		"warnings", len(warnings))

	return &UpdateStoryOutput{Record: updated.Record, Warnings: warnings}, nil
}

// DeleteStory removes a stored story
func (o *orchestrator) DeleteStory(ctx context.Context, input *DeleteStoryInput) (*DeleteStoryOutput, error) {
	if input == nil || input.StoryID == "" {
		return nil, errors.InvalidArgument("story ID is required")
	}

	if _, err := o.storyRepo.Delete(ctx, storyrepo.DeleteInput{ID: input.StoryID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete story")
	}

	slog.Info("Story deleted", "story_id", input.StoryID)
	return &DeleteStoryOutput{}, nil
}

// ListStories lists stored stories
func (o *orchestrator) ListStories(ctx context.Context, input *ListStoriesInput) (*ListStoriesOutput, error) {
	limit := 0
	if input != nil {
		limit = input.Limit
	}
	if limit < 0 {
		return nil, errors.InvalidArgument("limit cannot be negative")
	}

	listed, err := o.storyRepo.List(ctx, storyrepo.ListInput{Limit: limit})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list stories")
	}

	return &ListStoriesOutput{Records: listed.Records}, nil
}

// resolve returns the inline story if given, otherwise loads storyID
func (o *orchestrator) resolve(ctx context.Context, storyID string, inline *story.Story) (*story.Story, error) {
	if inline != nil {
		return inline, nil
	}
	if storyID == "" {
		return nil, errors.InvalidArgument("story ID or story is required")
	}
	got, err := o.storyRepo.Get(ctx, storyrepo.GetInput{ID: storyID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get story")
	}
	return got.Record.Story, nil
}

// DeriveGraph builds the presentation graph
func (o *orchestrator) DeriveGraph(ctx context.Context, input *DeriveGraphInput) (*DeriveGraphOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	s, err := o.resolve(ctx, input.StoryID, input.Story)
	if err != nil {
		return nil, err
	}

	return &DeriveGraphOutput{Graph: graph.Derive(s)}, nil
}

// LintStory runs the advisory checks
func (o *orchestrator) LintStory(ctx context.Context, input *LintStoryInput) (*LintStoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	s, err := o.resolve(ctx, input.StoryID, input.Story)
	if err != nil {
		return nil, err
	}

	return &LintStoryOutput{Warnings: rules.Lint(s)}, nil
}

// SimulateStory plays a stored story several times with random decisions
func (o *orchestrator) SimulateStory(ctx context.Context, input *SimulateStoryInput) (*SimulateStoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	runs := input.Runs
	if runs == 0 {
		runs = DefaultSimulationRuns
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("runs", runs, 1, MaxSimulationRuns, vb)
	if input.MaxSteps < 0 {
		vb.Field("maxSteps", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	s, err := o.resolve(ctx, input.StoryID, nil)
	if err != nil {
		return nil, err
	}

	cfg := playback.SimulateConfig{
		StartSceneID: input.StartSceneID,
		Roller:       o.roller,
		MaxSteps:     input.MaxSteps,
		MaxRevivals:  input.MaxRevivals,
		PayPrices:    input.PayPrices,
	}

	out := &SimulateStoryOutput{
		Traces:  make([]*playback.Trace, 0, runs),
		Endings: make(map[playback.Ending]int),
		Visits:  make(map[string]int),
	}
	for i := 0; i < runs; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "simulation canceled")
		}

		trace, err := playback.Simulate(s, cfg)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeFailedPrecondition, "failed to simulate story")
		}
		out.Traces = append(out.Traces, trace)
		if trace.Truncated {
			out.Truncated++
		} else {
			out.Endings[trace.Ending]++
		}
		seen := make(map[string]bool, len(trace.Scenes))
		for _, id := range trace.Scenes {
			if !seen[id] {
				seen[id] = true
				out.Visits[id]++
			}
		}
	}

	slog.Info("Story simulated",
		"story_id", input.StoryID,
		"runs", runs,
		"truncated", out.Truncated)

	return out, nil
}
