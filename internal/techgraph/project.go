package techgraph

import (
	"sort"
	"strings"

	"github.com/yungbote/techverse/internal/domain/catalog"
)

// Project renders the whole catalog: one node per category, technology and
// book. Technologies matching f are highlighted, as are books linked to them.
// While f is active only book edges into highlighted technologies are kept.
// The result depends only on ds and f.
func Project(ds catalog.Dataset, f Filter) Graph {
	p := newProjection()

	for _, category := range Categories(ds.Techs) {
		p.addNode(Node{
			ID:    CategoryNodeID(category),
			Label: category,
			Group: GroupCategory,
			Title: category,
			Shape: ShapeDiamond,
		})
	}

	highlighted := make(map[int]bool)
	for _, t := range ds.Techs {
		id := TechNodeID(t.ID)
		if p.hasNode(id) {
			continue
		}
		group := GroupTechnology
		if f.Matches(t) {
			group = GroupTechnologyHighlighted
			highlighted[t.ID] = true
		}
		p.addNode(Node{
			ID:    id,
			Label: t.Name,
			Group: group,
			Title: techTitle(t),
			Shape: ShapeDot,
		})
		p.addEdge(id, CategoryNodeID(t.Category))
	}

	linkedToHighlight := make(map[int]bool)
	for _, l := range ds.Links {
		if highlighted[l.TechID] {
			linkedToHighlight[l.BookID] = true
		}
	}

	for _, b := range ds.Books {
		id := BookNodeID(b.ID)
		if p.hasNode(id) {
			continue
		}
		group := GroupBook
		if linkedToHighlight[b.ID] {
			group = GroupBookHighlighted
		}
		p.addNode(Node{
			ID:    id,
			Label: b.Title,
			Group: group,
			Title: bookTitle(b),
			Shape: ShapeBox,
		})
	}

	for _, l := range ds.Links {
		if f.Active() && !highlighted[l.TechID] {
			continue
		}
		p.addEdge(BookNodeID(l.BookID), TechNodeID(l.TechID))
	}

	return p.graph
}

// Categories returns the distinct technology categories in sorted order. The
// empty string is a category like any other.
func Categories(techs []catalog.Tech) []string {
	seen := make(map[string]bool, len(techs))
	out := make([]string, 0)
	for _, t := range techs {
		if seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}

type projection struct {
	graph Graph
	nodes map[string]bool
	edges map[string]bool
}

func newProjection() *projection {
	return &projection{
		graph: Graph{Nodes: []Node{}, Edges: []Edge{}},
		nodes: make(map[string]bool),
		edges: make(map[string]bool),
	}
}

func (p *projection) hasNode(id string) bool { return p.nodes[id] }

func (p *projection) addNode(n Node) {
	if p.nodes[n.ID] {
		return
	}
	p.nodes[n.ID] = true
	p.graph.Nodes = append(p.graph.Nodes, n)
}

// addEdge drops edges whose endpoints are not both in the node set, so links
// naming unknown books or technologies never dangle.
func (p *projection) addEdge(from, to string) {
	if !p.nodes[from] || !p.nodes[to] {
		return
	}
	id := edgeID(from, to)
	if p.edges[id] {
		return
	}
	p.edges[id] = true
	p.graph.Edges = append(p.graph.Edges, Edge{ID: id, From: from, To: to})
}

func techTitle(t catalog.Tech) string {
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteString(" — ")
	b.WriteString(t.Category)
	if t.Subcategory != "" {
		b.WriteString(" / ")
		b.WriteString(t.Subcategory)
	}
	if t.Description != "" {
		b.WriteString(": ")
		b.WriteString(t.Description)
	}
	return b.String()
}

func bookTitle(b catalog.Book) string {
	title := b.Title + " by " + b.Author
	if b.Series != "" {
		title += " (" + b.Series + ")"
	}
	return title
}
