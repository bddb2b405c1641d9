package authoring

import (
	"github.com/KirkDiggler/rpg-story/internal/engine/graph"
	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	"github.com/KirkDiggler/rpg-story/internal/engine/rules"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
	storyrepo "github.com/KirkDiggler/rpg-story/internal/repositories/story"
)

// CreateStoryInput contains the story to store. An empty ID is generated.
type CreateStoryInput struct {
	Story *story.Story
}

// CreateStoryOutput contains the stored record and its lint warnings
type CreateStoryOutput struct {
	Record   *storyrepo.Record
	Warnings []rules.Warning
}

// GetStoryInput identifies a story
type GetStoryInput struct {
	StoryID string
}

// GetStoryOutput contains the stored record
type GetStoryOutput struct {
	Record *storyrepo.Record
}

// UpdateStoryInput replaces a story. ExpectedVersion zero skips the
// concurrency check.
type UpdateStoryInput struct {
	Story           *story.Story
	ExpectedVersion int64
}

// UpdateStoryOutput contains the new record and its lint warnings
type UpdateStoryOutput struct {
	Record   *storyrepo.Record
	Warnings []rules.Warning
}

// DeleteStoryInput identifies a story
type DeleteStoryInput struct {
	StoryID string
}

// DeleteStoryOutput is empty
type DeleteStoryOutput struct{}

// ListStoriesInput controls listing
type ListStoriesInput struct {
	Limit int
}

// ListStoriesOutput contains stored records ordered by ID
type ListStoriesOutput struct {
	Records []*storyrepo.Record
}

// DeriveGraphInput names a stored story, or carries an unsaved one
type DeriveGraphInput struct {
	StoryID string
	Story   *story.Story
}

// DeriveGraphOutput contains the derived graph
type DeriveGraphOutput struct {
	Graph *graph.Graph
}

// LintStoryInput names a stored story, or carries an unsaved one
type LintStoryInput struct {
	StoryID string
	Story   *story.Story
}

// LintStoryOutput contains the warnings
type LintStoryOutput struct {
	Warnings []rules.Warning
}

// SimulateStoryInput runs random playthroughs of a stored story
type SimulateStoryInput struct {
	StoryID      string
	Runs         int
	StartSceneID string
	MaxSteps     int
	MaxRevivals  int
	PayPrices    bool
}

// SimulateStoryOutput aggregates the runs
type SimulateStoryOutput struct {
	Traces []*playback.Trace

	// Endings counts runs per ending; truncated runs count under Truncated
	Endings   map[playback.Ending]int
	Truncated int

	// Visits counts how many runs entered each scene at least once
	Visits map[string]int
}
