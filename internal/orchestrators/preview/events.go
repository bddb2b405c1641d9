package preview

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
)

func (o *orchestrator) publish(ctx context.Context, event events.Event) {
	if o.bus == nil {
		return
	}
	if err := o.bus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish preview event",
			"event_type", event.Type(),
			"error", err)
	}
}

func (o *orchestrator) publishSceneEntered(ctx context.Context, sessionID string, s *story.Story, sceneID string) {
	if o.bus == nil {
		return
	}
	scene, ok := s.Scene(sceneID)
	if !ok {
		return
	}
	event := events.NewGameEvent(EventSceneEntered, s, scene)
	event.Context().Set(EventKeySessionID, sessionID)
	event.Context().Set(EventKeySceneID, sceneID)
	o.publish(ctx, event)
}

// publishStep emits one event per scene entered, then value and ending events
func (o *orchestrator) publishStep(ctx context.Context, sessionID string, s *story.Story, before, after playback.State, changed map[string]int) {
	if o.bus == nil {
		return
	}

	if len(after.History) > len(before.History) {
		for _, sceneID := range after.History[len(before.History):] {
			o.publishSceneEntered(ctx, sessionID, s, sceneID)
		}
	}

	if len(changed) > 0 {
		event := events.NewGameEvent(EventValuesChanged, s, nil)
		event.Context().Set(EventKeySessionID, sessionID)
		event.Context().Set(EventKeyChanges, changed)
		o.publish(ctx, event)
	}

	if after.Ended() && !before.Ended() {
		var target core.Entity
		if scene, ok := s.Scene(after.SceneID); ok {
			target = scene
		}
		event := events.NewGameEvent(EventEnded, s, target)
		event.Context().Set(EventKeySessionID, sessionID)
		event.Context().Set(EventKeySceneID, after.SceneID)
		event.Context().Set(EventKeyEnding, string(after.Ending))
		o.publish(ctx, event)
	}
}
