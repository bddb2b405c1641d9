package previewsession

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-story/internal/errors"
	"github.com/KirkDiggler/rpg-story/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-story/internal/redis"
)

const (
	// Key pattern: preview_session:{session_id}
	sessionKeyPrefix = "preview_session:"

	// DefaultTTL bounds how long an idle preview lives
	DefaultTTL = 2 * time.Hour

	errSessionNil     = "session cannot be nil"
	errSessionIDEmpty = "session ID cannot be empty"
	errStoryIDEmpty   = "story ID cannot be empty"
	errSessionExpired = "session has already expired"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for preview sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Create stores a new session with the specified TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.StoryID == "" {
		return nil, errors.InvalidArgument(errStoryIDEmpty)
	}

	now := r.clock.Now().UTC()
	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	session := &Session{
		ID:           input.ID,
		StoryID:      input.StoryID,
		StoryVersion: input.StoryVersion,
		State:        input.State,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	if err := r.client.Set(ctx, sessionKey(input.ID), data, ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store session in Redis")
	}

	return &CreateOutput{Session: session}, nil
}

// Get retrieves a session, treating an expired one as missing
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	key := sessionKey(input.ID)
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.SessionNotFound(input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get session from Redis")
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	if r.clock.Now().After(session.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.SessionExpired(input.ID, session.ExpiresAt)
	}

	return &GetOutput{Session: &session}, nil
}

// Update replaces a session with the remaining TTL
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	session := input.Session
	if session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	now := r.clock.Now()
	if !now.Before(session.ExpiresAt) {
		return nil, errors.FailedPrecondition(errSessionExpired)
	}
	remaining := session.ExpiresAt.Sub(now)

	data, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	// SetXX only writes keys that still exist
	ok, err := r.client.SetXX(ctx, sessionKey(session.ID), data, remaining).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update session in Redis")
	}
	if !ok {
		return nil, errors.SessionNotFound(session.ID)
	}

	return &UpdateOutput{Session: session}, nil
}

// Delete removes a session
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	n, err := r.client.Del(ctx, sessionKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}
