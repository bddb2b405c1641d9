package story

import "github.com/KirkDiggler/rpg-toolkit/core"

// Entity types reported through core.Entity
const (
	EntityTypeStory = "story"
	EntityTypeScene = "scene"
)

// GetID returns the story id
func (s *Story) GetID() string { return s.ID }

// GetType returns the entity type for rpg-toolkit
func (s *Story) GetType() string { return EntityTypeStory }

// GetID returns the scene id
func (sc *Scene) GetID() string { return sc.ID }

// GetType returns the entity type for rpg-toolkit
func (sc *Scene) GetType() string { return EntityTypeScene }

// Compile-time check that stories and scenes can act as event sources
var (
	_ core.Entity = (*Story)(nil)
	_ core.Entity = (*Scene)(nil)
)
