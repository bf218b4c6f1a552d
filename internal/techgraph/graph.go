// Package techgraph projects the book/technology catalog into the node and
// edge lists drawn by the graph page.
package techgraph

import "strconv"

const (
	GroupCategory              = "Category"
	GroupTechnology            = "Technology"
	GroupTechnologyHighlighted = "TechnologyHighlighted"
	GroupBook                  = "Book"
	GroupBookHighlighted       = "BookHighlighted"

	ShapeDiamond = "diamond"
	ShapeDot     = "dot"
	ShapeBox     = "box"
)

type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group string `json:"group"`
	Title string `json:"title"`
	Shape string `json:"shape"`
}

type Edge struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

func (g Graph) IsEmpty() bool {
	return len(g.Nodes) == 0 && len(g.Edges) == 0
}

// Node ids are namespaced by kind so books, technologies and categories that
// share a raw key never collide.
func CategoryNodeID(category string) string { return "c_" + category }
func TechNodeID(id int) string              { return "t_" + strconv.Itoa(id) }
func BookNodeID(id int) string              { return "b_" + strconv.Itoa(id) }

func edgeID(from, to string) string { return from + "->" + to }
