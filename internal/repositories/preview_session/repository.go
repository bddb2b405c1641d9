// Package previewsession stores the playback cursor of preview sessions
package previewsession

//go:generate mockgen -destination=mock/mock_repository.go -package=previewsessionmock github.com/KirkDiggler/rpg-story/internal/repositories/preview_session Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
)

// Session is one preview playthrough of a stored story
type Session struct {
	ID      string `json:"id"`
	StoryID string `json:"storyId"`

	// StoryVersion is the story version the session started on
	StoryVersion int64 `json:"storyVersion"`

	State playback.State `json:"state"`

	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Repository defines the interface for preview session persistence
type Repository interface {
	// Create stores a new session that expires after TTL
	// Returns errors.InvalidArgument for missing IDs
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a live session
	// Returns errors.NotFound if the session doesn't exist or has expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces the session state keeping its expiry
	// Returns errors.FailedPrecondition if the session has expired
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a session; deleting a missing session is not an error
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a session
type CreateInput struct {
	ID           string
	StoryID      string
	StoryVersion int64
	State        playback.State

	// TTL defaults to DefaultTTL when zero
	TTL time.Duration
}

// CreateOutput defines the output for creating a session
type CreateOutput struct {
	Session *Session
}

// GetInput defines the input for getting a session
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a session
type GetOutput struct {
	Session *Session
}

// UpdateInput defines the input for updating a session
type UpdateInput struct {
	Session *Session
}

// UpdateOutput defines the output for updating a session
type UpdateOutput struct {
	Session *Session
}

// DeleteInput defines the input for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a session
type DeleteOutput struct {
	Deleted bool
}
