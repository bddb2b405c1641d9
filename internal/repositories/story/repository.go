// Package storyrepo provides persistence for authored stories
package storyrepo

//go:generate mockgen -destination=mock/mock_repository.go -package=storyrepomock github.com/KirkDiggler/rpg-story/internal/repositories/story Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-story/internal/entities/story"
)

// Record is a stored story with its bookkeeping. Version starts at 1 and
// increases on every update.
type Record struct {
	Story     *story.Story `json:"story"`
	Version   int64        `json:"version"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Repository defines the interface for story persistence
type Repository interface {
	// Create stores a new story
	// Returns errors.InvalidArgument for a nil story or empty ID
	// Returns errors.AlreadyExists if a story with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a story by ID
	// Returns errors.InvalidArgument for an empty ID
	// Returns errors.NotFound if the story doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces a story
	// Returns errors.NotFound if the story doesn't exist
	// Returns errors.Aborted if ExpectedVersion is set and stale
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a story
	// Returns errors.NotFound if the story doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns stored stories ordered by ID
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// CreateInput defines the input for creating a story
type CreateInput struct {
	Story *story.Story
}

// CreateOutput defines the output for creating a story
type CreateOutput struct {
	Record *Record
}

// GetInput defines the input for getting a story
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a story
type GetOutput struct {
	Record *Record
}

// UpdateInput defines the input for updating a story
type UpdateInput struct {
	Story *story.Story

	// ExpectedVersion guards against lost updates; zero skips the check
	ExpectedVersion int64
}

// UpdateOutput defines the output for updating a story
type UpdateOutput struct {
	Record *Record
}

// DeleteInput defines the input for deleting a story
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a story
type DeleteOutput struct{}

// ListInput defines the input for listing stories
type ListInput struct {
	// Limit caps the result; zero means no limit
	Limit int
}

// ListOutput defines the output for listing stories
type ListOutput struct {
	Records []*Record
}

const (
	errStoryNil     = "story cannot be nil"
	errStoryIDEmpty = "story ID cannot be empty"
)
