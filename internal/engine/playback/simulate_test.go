package playback_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
)

// scriptedRoller returns rolls in order and repeats the last one
type scriptedRoller struct {
	rolls []int
	err   error
}

func (r *scriptedRoller) Roll(_ int) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n := r.rolls[0]
	if len(r.rolls) > 1 {
		r.rolls = r.rolls[1:]
	}
	return n, nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		n, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func TestSimulateFollowsRolls(t *testing.T) {
	trace, err := playback.Simulate(qteStory(), playback.SimulateConfig{
		Roller: &scriptedRoller{rolls: []int{1}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, trace.Scenes)
	assert.Equal(t, playback.EndingNormal, trace.Ending)
	assert.Equal(t, 6, trace.Values["v1"])
	assert.False(t, trace.Truncated)
}

func TestSimulateRevivesUntilLimit(t *testing.T) {
	trace, err := playback.Simulate(qteStory(), playback.SimulateConfig{
		Roller:      &scriptedRoller{rolls: []int{2}},
		MaxRevivals: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "C", "A", "C", "A", "C"}, trace.Scenes)
	assert.Equal(t, 2, trace.Revivals)
	assert.Equal(t, playback.EndingBad, trace.Ending)
	assert.Equal(t, 5-6, trace.Values["v1"])
	assert.False(t, trace.Truncated)
}

func TestSimulateHonoursLocks(t *testing.T) {
	st := &story.Story{Scenes: []*story.Scene{
		{ID: "a", Elements: story.Elements{&story.Choice{
			Base: story.Base{ID: "c"},
			Options: []story.ChoiceOption{
				{ID: "vault", NextSceneID: "rich", Locked: true, UnlockPrice: 5},
				{ID: "walk", NextSceneID: "home"},
			},
		}}},
		{ID: "rich", Type: story.SceneEnding},
		{ID: "home", Type: story.SceneEnding},
	}}

	trace, err := playback.Simulate(st, playback.SimulateConfig{Roller: &scriptedRoller{rolls: []int{1}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "home"}, trace.Scenes)

	trace, err = playback.Simulate(st, playback.SimulateConfig{Roller: &scriptedRoller{rolls: []int{1}}, PayPrices: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "rich"}, trace.Scenes)
}

func TestSimulateTruncatesLoops(t *testing.T) {
	st := &story.Story{Scenes: []*story.Scene{
		{ID: "a", NextSceneID: "b"},
		{ID: "b", NextSceneID: "a"},
	}}

	trace, err := playback.Simulate(st, playback.SimulateConfig{MaxSteps: 10})
	require.NoError(t, err)
	assert.True(t, trace.Truncated)
	assert.Equal(t, 10, trace.Steps)
}

func TestSimulateSurfacesRollerErrors(t *testing.T) {
	_, err := playback.Simulate(qteStory(), playback.SimulateConfig{
		Roller: &scriptedRoller{err: errors.New("boom")},
	})
	assert.Error(t, err)

	_, err = playback.Simulate(&story.Story{}, playback.SimulateConfig{})
	assert.ErrorIs(t, err, playback.ErrNoScenes)
}
