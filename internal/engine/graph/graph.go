// Package graph derives a presentation graph from a story. Derivation is pure
// and total: malformed references become dangling edges rather than errors,
// and ids depend only on the story's content so repeated derivations diff
// cleanly.
package graph

import (
	"fmt"

	"github.com/KirkDiggler/rpg-story/internal/entities/story"
)

// EdgeKind classifies why an edge exists
type EdgeKind string

// Edge kinds
const (
	EdgeNext    EdgeKind = "next"
	EdgeRevival EdgeKind = "revival"
	EdgeChoice  EdgeKind = "choice"
	EdgeSuccess EdgeKind = "success"
	EdgeFailure EdgeKind = "failure"
)

// Grid spacing for the cosmetic default layout
const (
	gridColumns  = 4
	gridSpacingX = 280
	gridSpacingY = 200
)

// Graph is the derived node and edge set
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Position is a cosmetic layout hint
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ElementSummary is a one-line description of a scene element
type ElementSummary struct {
	ID      string            `json:"id"`
	Type    story.ElementType `json:"type"`
	Order   int               `json:"order"`
	Summary string            `json:"summary,omitempty"`
}

// NodeData is the presentation payload of a scene node
type NodeData struct {
	Title          string           `json:"title"`
	SceneType      story.SceneType  `json:"sceneType"`
	LocationName   string           `json:"locationName,omitempty"`
	Elements       []ElementSummary `json:"elements"`
	NextSceneID    string           `json:"nextSceneId,omitempty"`
	RevivalPointID string           `json:"revivalPointId,omitempty"`
	UnlockPrice    int              `json:"unlockPrice,omitempty"`
}

// Node is one scene
type Node struct {
	ID       string   `json:"id"`
	Data     NodeData `json:"data"`
	Position Position `json:"position"`
}

// Edge is a directed transition between scenes
type Edge struct {
	ID        string   `json:"id"`
	Source    string   `json:"source"`
	Target    string   `json:"target"`
	Kind      EdgeKind `json:"kind"`
	Label     string   `json:"label"`
	IsRevival bool     `json:"isRevival,omitempty"`

	// Dangling marks an edge whose target is not a node in this graph
	Dangling bool `json:"dangling,omitempty"`
}

// Derive builds the graph for s. Per scene, edges are emitted in a fixed
// order: linear next, revival, choice options, then success and failure for
// each QTE or dialogue task.
func Derive(s *story.Story) *Graph {
	g := &Graph{Nodes: []Node{}, Edges: []Edge{}}
	if s == nil {
		return g
	}

	known := make(map[string]bool, len(s.Scenes))
	for _, scene := range s.Scenes {
		if scene != nil && scene.ID != "" {
			known[scene.ID] = true
		}
	}

	for i, scene := range s.Scenes {
		if scene == nil {
			continue
		}
		g.Nodes = append(g.Nodes, Node{
			ID:       scene.ID,
			Data:     nodeData(s, scene),
			Position: gridPosition(i),
		})
		g.Edges = append(g.Edges, sceneEdges(scene)...)
	}

	for i := range g.Edges {
		g.Edges[i].Dangling = !known[g.Edges[i].Target]
	}
	uniquifyEdgeIDs(g.Edges)

	return g
}

func nodeData(s *story.Story, scene *story.Scene) NodeData {
	data := NodeData{
		Title:          scene.Title,
		SceneType:      scene.Type,
		LocationName:   s.LocationName(scene.LocationID),
		Elements:       make([]ElementSummary, 0, len(scene.Elements)),
		NextSceneID:    scene.NextSceneID,
		RevivalPointID: scene.RevivalPointID,
		UnlockPrice:    scene.UnlockPrice,
	}
	for _, el := range scene.SortedElements() {
		data.Elements = append(data.Elements, ElementSummary{
			ID:      el.ElementID(),
			Type:    el.Type(),
			Order:   el.ElementOrder(),
			Summary: story.Summary(el),
		})
	}
	return data
}

func gridPosition(i int) Position {
	return Position{
		X: (i % gridColumns) * gridSpacingX,
		Y: (i / gridColumns) * gridSpacingY,
	}
}

func sceneEdges(scene *story.Scene) []Edge {
	var edges []Edge

	if scene.NextSceneID != "" {
		edges = append(edges, Edge{
			ID:     fmt.Sprintf("next:%s->%s", scene.ID, scene.NextSceneID),
			Source: scene.ID,
			Target: scene.NextSceneID,
			Kind:   EdgeNext,
			Label:  "Next",
		})
	}

	if scene.Type == story.SceneBadEnding && scene.RevivalPointID != "" {
		edges = append(edges, Edge{
			ID:        fmt.Sprintf("revival:%s->%s", scene.ID, scene.RevivalPointID),
			Source:    scene.ID,
			Target:    scene.RevivalPointID,
			Kind:      EdgeRevival,
			Label:     "Revival",
			IsRevival: true,
		})
	}

	for idx, el := range scene.Elements {
		choice, ok := el.(*story.Choice)
		if !ok {
			continue
		}
		for optIdx, opt := range choice.Options {
			if opt.NextSceneID == "" {
				continue
			}
			edges = append(edges, Edge{
				ID:     fmt.Sprintf("choice:%s:%d:%d->%s", scene.ID, idx, optIdx, opt.NextSceneID),
				Source: scene.ID,
				Target: opt.NextSceneID,
				Kind:   EdgeChoice,
				Label:  opt.Text,
			})
		}
	}

	for idx, el := range scene.Elements {
		success, failure, ok := story.Outcomes(el)
		if !ok {
			continue
		}
		if success.SceneID != "" {
			edges = append(edges, Edge{
				ID:     fmt.Sprintf("success:%s:%d->%s", scene.ID, idx, success.SceneID),
				Source: scene.ID,
				Target: success.SceneID,
				Kind:   EdgeSuccess,
				Label:  "Success",
			})
		}
		if failure.SceneID != "" {
			edges = append(edges, Edge{
				ID:     fmt.Sprintf("failure:%s:%d->%s", scene.ID, idx, failure.SceneID),
				Source: scene.ID,
				Target: failure.SceneID,
				Kind:   EdgeFailure,
				Label:  "Failure",
			})
		}
	}

	return edges
}

// uniquifyEdgeIDs suffixes repeats with #2, #3 in emission order. Repeats only
// happen when scene ids themselves collide.
func uniquifyEdgeIDs(edges []Edge) {
	seen := make(map[string]int, len(edges))
	taken := make(map[string]bool, len(edges))
	for i := range edges {
		taken[edges[i].ID] = true
	}
	for i := range edges {
		id := edges[i].ID
		seen[id]++
		if seen[id] == 1 {
			continue
		}
		n := seen[id]
		candidate := fmt.Sprintf("%s#%d", id, n)
		for taken[candidate] {
			n++
			candidate = fmt.Sprintf("%s#%d", id, n)
		}
		seen[id] = n
		taken[candidate] = true
		edges[i].ID = candidate
	}
}

// Node returns the node with the given id
func (g *Graph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// Outgoing returns the edges leaving a node, in emission order
func (g *Graph) Outgoing(id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// Reachable returns the set of node ids reachable from the given roots over
// non-dangling edges. Roots that are not nodes are ignored.
func (g *Graph) Reachable(roots ...string) map[string]bool {
	adjacency := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		if !e.Dangling {
			adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		}
	}

	visited := make(map[string]bool, len(g.Nodes))
	queue := make([]string, 0, len(roots))
	for _, r := range roots {
		if _, ok := g.Node(r); ok && !visited[r] {
			visited[r] = true
			queue = append(queue, r)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}
