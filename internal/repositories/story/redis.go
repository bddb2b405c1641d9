package storyrepo

import (
	"context"
	"encoding/json"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-story/internal/errors"
	"github.com/KirkDiggler/rpg-story/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-story/internal/redis"
)

const (
	storyKeyPrefix = "story:"
	storyIndexKey  = "story:index"
)

// RedisConfig contains configuration for the Redis story repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedis creates a new Redis-backed story repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func storyKey(id string) string {
	return storyKeyPrefix + id
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Story == nil {
		return nil, errors.InvalidArgument(errStoryNil)
	}
	if input.Story.ID == "" {
		return nil, errors.InvalidArgument(errStoryIDEmpty)
	}

	now := r.clock.Now().UTC()
	record := &Record{
		Story:     input.Story,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal story")
	}

	created, err := r.client.SetNX(ctx, storyKey(input.Story.ID), data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store story")
	}
	if !created {
		return nil, errors.StoryExists(input.Story.ID)
	}

	if err := r.client.SAdd(ctx, storyIndexKey, input.Story.ID).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to index story")
	}

	return &CreateOutput{Record: record}, nil
}

func (r *redisRepository) load(ctx context.Context, getter func(ctx context.Context, key string) *redis.StringCmd, id string) (*Record, error) {
	result, err := getter(ctx, storyKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.StoryNotFound(id)
		}
		return nil, errors.Wrapf(err, "failed to get story")
	}

	var record Record
	if err := json.Unmarshal([]byte(result), &record); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal story")
	}
	return &record, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errStoryIDEmpty)
	}

	record, err := r.load(ctx, r.client.Get, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Record: record}, nil
}

// Update runs inside WATCH so a concurrent writer aborts this one
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Story == nil {
		return nil, errors.InvalidArgument(errStoryNil)
	}
	if input.Story.ID == "" {
		return nil, errors.InvalidArgument(errStoryIDEmpty)
	}

	key := storyKey(input.Story.ID)
	var updated *Record

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		existing, err := r.load(ctx, tx.Get, input.Story.ID)
		if err != nil {
			return err
		}
		if input.ExpectedVersion != 0 && existing.Version != input.ExpectedVersion {
			return errors.StoryVersionConflict(input.Story.ID, existing.Version, input.ExpectedVersion)
		}

		record := &Record{
			Story:     input.Story,
			Version:   existing.Version + 1,
			CreatedAt: existing.CreatedAt,
			UpdatedAt: r.clock.Now().UTC(),
		}
		data, err := json.Marshal(record)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal story")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = record
		return nil
	}, key)

	if err != nil {
		if err == redis.TxFailedErr {
			return nil, errors.Abortedf("story %s was modified concurrently", input.Story.ID)
		}
		if _, ok := err.(*errors.Error); ok {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to update story")
	}

	return &UpdateOutput{Record: updated}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errStoryIDEmpty)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, storyKey(input.ID))
	pipe.SRem(ctx, storyIndexKey, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete story")
	}
	if del.Val() == 0 {
		return nil, errors.StoryNotFound(input.ID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, storyIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list story index")
	}
	sort.Strings(ids)
	if input.Limit > 0 && len(ids) > input.Limit {
		ids = ids[:input.Limit]
	}

	records := make([]*Record, 0, len(ids))
	if len(ids) == 0 {
		return &ListOutput{Records: records}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = storyKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load stories")
	}

	for i, raw := range values {
		s, ok := raw.(string)
		if !ok {
			// index entry without a blob; the story was deleted mid-list
			continue
		}
		var record Record
		if err := json.Unmarshal([]byte(s), &record); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal story %s", ids[i])
		}
		records = append(records, &record)
	}

	return &ListOutput{Records: records}, nil
}
