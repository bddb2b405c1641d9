package story

// Editor option limits. The cap is an editor policy; stories decoded from
// elsewhere may carry more options and remain legal.
const (
	MaxChoiceOptions = 3
	MinChoiceOptions = 1
)

// The helpers below are copy-on-write: they return a new Story whose changed
// collection is a fresh slice, and leave the argument untouched. When an edit
// would break a structural rule the input is returned as is so callers can
// detect the rejection by identity.

func (s *Story) shallow() *Story {
	clone := *s
	return &clone
}

// UpsertScene replaces the scene with the same id or appends it
func UpsertScene(s *Story, scene *Scene) *Story {
	if scene == nil || scene.ID == "" {
		return s
	}
	out := s.shallow()
	out.Scenes = make([]*Scene, 0, len(s.Scenes)+1)
	replaced := false
	for _, existing := range s.Scenes {
		if existing != nil && existing.ID == scene.ID && !replaced {
			out.Scenes = append(out.Scenes, scene)
			replaced = true
			continue
		}
		out.Scenes = append(out.Scenes, existing)
	}
	if !replaced {
		out.Scenes = append(out.Scenes, scene)
	}
	return out
}

// RemoveScene filters the scene out. References to it elsewhere are left in
// place and resolve as unset.
func RemoveScene(s *Story, id string) *Story {
	if !s.HasScene(id) {
		return s
	}
	out := s.shallow()
	out.Scenes = make([]*Scene, 0, len(s.Scenes))
	for _, existing := range s.Scenes {
		if existing != nil && existing.ID == id {
			continue
		}
		out.Scenes = append(out.Scenes, existing)
	}
	return out
}

// updateScene applies fn to a copy of the scene and stores the result. fn
// returns false to reject the edit.
func updateScene(s *Story, sceneID string, fn func(sc *Scene) bool) *Story {
	scene, ok := s.Scene(sceneID)
	if !ok {
		return s
	}
	clone := *scene
	if !fn(&clone) {
		return s
	}
	return UpsertScene(s, &clone)
}

// UpsertElement replaces the element with the same id in a scene or appends it
func UpsertElement(s *Story, sceneID string, el Element) *Story {
	if el == nil || el.ElementID() == "" {
		return s
	}
	return updateScene(s, sceneID, func(sc *Scene) bool {
		elements := make(Elements, 0, len(sc.Elements)+1)
		replaced := false
		for _, existing := range sc.Elements {
			if existing != nil && existing.ElementID() == el.ElementID() && !replaced {
				elements = append(elements, el)
				replaced = true
				continue
			}
			elements = append(elements, existing)
		}
		if !replaced {
			elements = append(elements, el)
		}
		sc.Elements = elements
		return true
	})
}

// RemoveElement filters an element out of a scene
func RemoveElement(s *Story, sceneID, elementID string) *Story {
	return updateScene(s, sceneID, func(sc *Scene) bool {
		if _, _, ok := sc.Element(elementID); !ok {
			return false
		}
		elements := make(Elements, 0, len(sc.Elements))
		for _, existing := range sc.Elements {
			if existing != nil && existing.ElementID() == elementID {
				continue
			}
			elements = append(elements, existing)
		}
		sc.Elements = elements
		return true
	})
}

// updateChoice applies fn to a copy of a choice element
func updateChoice(s *Story, sceneID, elementID string, fn func(c *Choice) bool) *Story {
	scene, ok := s.Scene(sceneID)
	if !ok {
		return s
	}
	el, _, ok := scene.Element(elementID)
	if !ok {
		return s
	}
	choice, ok := el.(*Choice)
	if !ok {
		return s
	}
	clone := *choice
	clone.Options = append([]ChoiceOption(nil), choice.Options...)
	if !fn(&clone) {
		return s
	}
	return UpsertElement(s, sceneID, &clone)
}

// AddChoiceOption appends an option unless the choice is already at the
// editor cap or the option id is taken.
func AddChoiceOption(s *Story, sceneID, elementID string, option ChoiceOption) *Story {
	if option.ID == "" {
		return s
	}
	return updateChoice(s, sceneID, elementID, func(c *Choice) bool {
		if len(c.Options) >= MaxChoiceOptions {
			return false
		}
		if _, exists := c.Option(option.ID); exists {
			return false
		}
		c.Options = append(c.Options, option)
		return true
	})
}

// UpdateChoiceOption replaces an existing option by id
func UpdateChoiceOption(s *Story, sceneID, elementID string, option ChoiceOption) *Story {
	return updateChoice(s, sceneID, elementID, func(c *Choice) bool {
		for i := range c.Options {
			if c.Options[i].ID == option.ID {
				c.Options[i] = option
				return true
			}
		}
		return false
	})
}

// RemoveChoiceOption removes an option; the last remaining option can not be
// removed.
func RemoveChoiceOption(s *Story, sceneID, elementID, optionID string) *Story {
	return updateChoice(s, sceneID, elementID, func(c *Choice) bool {
		if len(c.Options) <= MinChoiceOptions {
			return false
		}
		kept := c.Options[:0:0]
		for _, opt := range c.Options {
			if opt.ID != optionID {
				kept = append(kept, opt)
			}
		}
		if len(kept) == len(c.Options) {
			return false
		}
		c.Options = kept
		return true
	})
}

// UpsertGlobalValue replaces or appends a global value definition
func UpsertGlobalValue(s *Story, value *GlobalValue) *Story {
	if value == nil || value.ID == "" {
		return s
	}
	out := s.shallow()
	out.GlobalValues = make([]*GlobalValue, 0, len(s.GlobalValues)+1)
	replaced := false
	for _, existing := range s.GlobalValues {
		if existing != nil && existing.ID == value.ID && !replaced {
			out.GlobalValues = append(out.GlobalValues, value)
			replaced = true
			continue
		}
		out.GlobalValues = append(out.GlobalValues, existing)
	}
	if !replaced {
		out.GlobalValues = append(out.GlobalValues, value)
	}
	return out
}

// RemoveGlobalValue filters a global value out. Value changes and conditions
// that reference it become no-ops.
func RemoveGlobalValue(s *Story, id string) *Story {
	if _, ok := s.GlobalValue(id); !ok {
		return s
	}
	out := s.shallow()
	out.GlobalValues = make([]*GlobalValue, 0, len(s.GlobalValues))
	for _, existing := range s.GlobalValues {
		if existing != nil && existing.ID == id {
			continue
		}
		out.GlobalValues = append(out.GlobalValues, existing)
	}
	return out
}

// UpsertCharacter replaces or appends a character. A second protagonist is
// rejected.
func UpsertCharacter(s *Story, character *Character) *Story {
	if character == nil || character.ID == "" {
		return s
	}
	if character.Role == RoleProtagonist {
		if current, ok := s.Protagonist(); ok && current.ID != character.ID {
			return s
		}
	}
	out := s.shallow()
	out.Characters = make([]*Character, 0, len(s.Characters)+1)
	replaced := false
	for _, existing := range s.Characters {
		if existing != nil && existing.ID == character.ID && !replaced {
			out.Characters = append(out.Characters, character)
			replaced = true
			continue
		}
		out.Characters = append(out.Characters, existing)
	}
	if !replaced {
		out.Characters = append(out.Characters, character)
	}
	return out
}

// UpsertLocation replaces or appends a location
func UpsertLocation(s *Story, location *Location) *Story {
	if location == nil || location.ID == "" {
		return s
	}
	out := s.shallow()
	out.Locations = make([]*Location, 0, len(s.Locations)+1)
	replaced := false
	for _, existing := range s.Locations {
		if existing != nil && existing.ID == location.ID && !replaced {
			out.Locations = append(out.Locations, location)
			replaced = true
			continue
		}
		out.Locations = append(out.Locations, existing)
	}
	if !replaced {
		out.Locations = append(out.Locations, location)
	}
	return out
}
