// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-story/internal/entities/story"
	"github.com/KirkDiggler/rpg-story/internal/errors"
	storyrepo "github.com/KirkDiggler/rpg-story/internal/repositories/story"
	storyrepomock "github.com/KirkDiggler/rpg-story/internal/repositories/story/mock"
)

// ExpectStoryLookups lets the repository serve the story built by build for
// any number of Get calls. build runs per call so callers never share state.
func ExpectStoryLookups(mockRepo *storyrepomock.MockRepository, build func() *story.Story, version int64) {
	id := build().ID
	mockRepo.EXPECT().
		Get(gomock.Any(), storyrepo.GetInput{ID: id}).
		DoAndReturn(func(_ context.Context, _ storyrepo.GetInput) (*storyrepo.GetOutput, error) {
			return &storyrepo.GetOutput{Record: &storyrepo.Record{
				Story:   build(),
				Version: version,
			}}, nil
		}).
		AnyTimes()
}

// ExpectStoryNotFound makes the next Get for id fail with NotFound
func ExpectStoryNotFound(mockRepo *storyrepomock.MockRepository, id string) {
	mockRepo.EXPECT().
		Get(gomock.Any(), storyrepo.GetInput{ID: id}).
		Return(nil, errors.NotFoundf("story %s not found", id))
}
