package story

import "sort"

// Scene returns the scene with the given id
func (s *Story) Scene(id string) (*Scene, bool) {
	if id == "" {
		return nil, false
	}
	for _, scene := range s.Scenes {
		if scene != nil && scene.ID == id {
			return scene, true
		}
	}
	return nil, false
}

// HasScene reports whether id names an existing scene
func (s *Story) HasScene(id string) bool {
	_, ok := s.Scene(id)
	return ok
}

// Character returns the character with the given id
func (s *Story) Character(id string) (*Character, bool) {
	if id == "" {
		return nil, false
	}
	for _, c := range s.Characters {
		if c != nil && c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Location returns the location with the given id
func (s *Story) Location(id string) (*Location, bool) {
	if id == "" {
		return nil, false
	}
	for _, l := range s.Locations {
		if l != nil && l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// GlobalValue returns the global value with the given id
func (s *Story) GlobalValue(id string) (*GlobalValue, bool) {
	if id == "" {
		return nil, false
	}
	for _, v := range s.GlobalValues {
		if v != nil && v.ID == id {
			return v, true
		}
	}
	return nil, false
}

// Protagonist returns the first character with the protagonist role
func (s *Story) Protagonist() (*Character, bool) {
	for _, c := range s.Characters {
		if c != nil && c.Role == RoleProtagonist {
			return c, true
		}
	}
	return nil, false
}

// LocationName resolves a location id to its display name, or "" if unset
// or dangling.
func (s *Story) LocationName(id string) string {
	if l, ok := s.Location(id); ok {
		return l.Name
	}
	return ""
}

// StartScene picks the entry point of a playthrough: the first scene typed
// start, otherwise the first scene.
func (s *Story) StartScene() (*Scene, bool) {
	var first *Scene
	for _, scene := range s.Scenes {
		if scene == nil {
			continue
		}
		if first == nil {
			first = scene
		}
		if scene.Type == SceneStart {
			return scene, true
		}
	}
	return first, first != nil
}

// SortedElements returns the scene's elements in presentation order. The sort
// is stable so equal orders keep their array position. Nil entries are
// dropped.
func (sc *Scene) SortedElements() []Element {
	out := make([]Element, 0, len(sc.Elements))
	for _, el := range sc.Elements {
		if el != nil {
			out = append(out, el)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ElementOrder() < out[j].ElementOrder()
	})
	return out
}

// Element returns the element with the given id
func (sc *Scene) Element(id string) (Element, int, bool) {
	for i, el := range sc.Elements {
		if el != nil && el.ElementID() == id {
			return el, i, true
		}
	}
	return nil, -1, false
}

// NextOrder returns an order key larger than any element in the scene
func (sc *Scene) NextOrder() int {
	next := 0
	for _, el := range sc.Elements {
		if el != nil && el.ElementOrder() >= next {
			next = el.ElementOrder() + 1
		}
	}
	return next
}
