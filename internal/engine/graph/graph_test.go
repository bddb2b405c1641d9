package graph_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-story/internal/engine/graph"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
)

type GraphTestSuite struct {
	suite.Suite
}

func TestGraphSuite(t *testing.T) {
	suite.Run(t, new(GraphTestSuite))
}

func edgeIDs(g *graph.Graph) []string {
	ids := make([]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		ids = append(ids, e.ID)
	}
	return ids
}

func (s *GraphTestSuite) branchingStory() *story.Story {
	return &story.Story{
		Locations: []*story.Location{{ID: "dock", Name: "The Dock"}},
		Scenes: []*story.Scene{
			{
				ID:          "a",
				Title:       "Start",
				Type:        story.SceneStart,
				LocationID:  "dock",
				NextSceneID: "b",
				Elements: story.Elements{
					&story.QTE{
						Base:    story.Base{ID: "q", Order: 5},
						Success: story.Outcome{SceneID: "b"},
						Failure: story.Outcome{SceneID: "dead"},
					},
					&story.Choice{
						Base: story.Base{ID: "c", Order: 1},
						Options: []story.ChoiceOption{
							{ID: "o1", Text: "Left", NextSceneID: "b"},
							{ID: "o2", Text: "Stay"},
						},
					},
					&story.UnknownElement{Base: story.Base{ID: "x", Order: 9}, RawType: "minigame"},
				},
			},
			{ID: "b", Title: "End", Type: story.SceneEnding},
			{ID: "dead", Title: "Dead", Type: story.SceneBadEnding, RevivalPointID: "a"},
		},
	}
}

func (s *GraphTestSuite) TestEdgeOrderAndIDs() {
	g := graph.Derive(s.branchingStory())

	s.Assert().Equal([]string{
		"next:a->b",
		"choice:a:1:0->b",
		"success:a:0->b",
		"failure:a:0->dead",
		"revival:dead->a",
	}, edgeIDs(g))

	revival := g.Edges[4]
	s.Assert().True(revival.IsRevival)
	s.Assert().Equal(graph.EdgeRevival, revival.Kind)
	s.Assert().Equal("Revival", revival.Label)
	s.Assert().Equal("Left", g.Edges[1].Label)
}

func (s *GraphTestSuite) TestNodeData() {
	g := graph.Derive(s.branchingStory())
	s.Require().Len(g.Nodes, 3)

	node, ok := g.Node("a")
	s.Require().True(ok)
	s.Assert().Equal("The Dock", node.Data.LocationName)
	s.Assert().Equal(story.SceneStart, node.Data.SceneType)
	s.Require().Len(node.Data.Elements, 3)
	s.Assert().Equal("c", node.Data.Elements[0].ID, "summaries follow presentation order")
	s.Assert().Equal(story.ElementType("minigame"), node.Data.Elements[2].Type)

	dead, _ := g.Node("dead")
	s.Assert().Equal("a", dead.Data.RevivalPointID)
	s.Assert().NotEqual(node.Position, dead.Position)
}

func (s *GraphTestSuite) TestDeterministic() {
	st := s.branchingStory()
	s.Assert().Equal(graph.Derive(st), graph.Derive(st))
}

func (s *GraphTestSuite) TestSharedTargetsGetDistinctIDs() {
	st := &story.Story{Scenes: []*story.Scene{
		{ID: "a", Elements: story.Elements{&story.Choice{
			Base: story.Base{ID: "c"},
			Options: []story.ChoiceOption{
				{ID: "1", NextSceneID: "b"},
				{ID: "2", NextSceneID: "b"},
				{ID: "3", NextSceneID: "b"},
			},
		}}},
		{ID: "b"},
	}}

	ids := edgeIDs(graph.Derive(st))
	s.Require().Len(ids, 3)
	s.Assert().ElementsMatch([]string{"choice:a:0:0->b", "choice:a:0:1->b", "choice:a:0:2->b"}, ids)
}

func (s *GraphTestSuite) TestDuplicateSceneIDsStillYieldUniqueEdgeIDs() {
	st := &story.Story{Scenes: []*story.Scene{
		{ID: "a", NextSceneID: "b"},
		{ID: "a", NextSceneID: "b"},
		{ID: "a", NextSceneID: "b"},
		{ID: "b"},
	}}

	s.Assert().Equal([]string{"next:a->b", "next:a->b#2", "next:a->b#3"}, edgeIDs(graph.Derive(st)))
}

func (s *GraphTestSuite) TestDanglingTargetsAreFlagged() {
	st := &story.Story{Scenes: []*story.Scene{
		{ID: "a", NextSceneID: "nowhere"},
		{ID: "b", Type: story.SceneNormal, RevivalPointID: "a"},
	}}

	g := graph.Derive(st)
	s.Require().Len(g.Edges, 1, "revival only applies to bad endings")
	s.Assert().True(g.Edges[0].Dangling)
}

func (s *GraphTestSuite) TestEmptyInputs() {
	g := graph.Derive(nil)
	s.Assert().Empty(g.Nodes)
	s.Assert().Empty(g.Edges)

	g = graph.Derive(&story.Story{})
	s.Assert().NotNil(g.Edges)
}

func (s *GraphTestSuite) TestReachable() {
	g := graph.Derive(&story.Story{Scenes: []*story.Scene{
		{ID: "a", NextSceneID: "b"},
		{ID: "b", NextSceneID: "ghost"},
		{ID: "island"},
	}})

	reached := g.Reachable("a", "missing")
	s.Assert().Equal(map[string]bool{"a": true, "b": true}, reached)
	s.Assert().Len(g.Outgoing("a"), 1)
}
