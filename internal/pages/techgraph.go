package pages

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yungbote/techverse/internal/domain/catalog"
	"github.com/yungbote/techverse/internal/techgraph"
)

const (
	PlaceholderLoading = "Loading data..."
	PlaceholderNoData  = "No graph data available."
)

type TechOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TechGraphPage is the graph view state. Every mutation ends in recompute,
// so Graph always reflects the current dataset and filter.
type TechGraphPage struct {
	dataset catalog.Dataset
	loaded  bool
	filter  techgraph.Filter
	graph   techgraph.Graph

	onProject func(techgraph.Graph)
}

func NewTechGraphPage() *TechGraphPage {
	p := &TechGraphPage{}
	p.recompute()
	return p
}

// OnProject registers a hook called with every freshly computed graph.
func (p *TechGraphPage) OnProject(fn func(techgraph.Graph)) {
	p.onProject = fn
}

func (p *TechGraphPage) DatasetLoaded(ds catalog.Dataset) {
	p.dataset = ds
	p.loaded = true
	p.recompute()
}

func (p *TechGraphPage) SelectTechnology(id int) {
	p.filter = p.filter.SelectTechnology(id)
	p.recompute()
}

func (p *TechGraphPage) SelectCategory(category string) {
	p.filter = p.filter.SelectCategory(category)
	p.recompute()
}

func (p *TechGraphPage) ClearFilter() {
	p.filter = p.filter.Clear()
	p.recompute()
}

// ApplyQuery sets the filter from the technology/category query parameters.
// A parseable technology id wins. A nil category means no category was
// sent; any present value, including "", is a category name.
func (p *TechGraphPage) ApplyQuery(technology string, category *string) {
	if id, err := strconv.Atoi(strings.TrimSpace(technology)); err == nil {
		p.SelectTechnology(id)
		return
	}
	if category != nil {
		p.SelectCategory(*category)
		return
	}
	p.ClearFilter()
}

func (p *TechGraphPage) recompute() {
	p.graph = techgraph.Project(p.dataset, p.filter)
	if p.onProject != nil {
		p.onProject(p.graph)
	}
}

func (p *TechGraphPage) Graph() techgraph.Graph { return p.graph }

func (p *TechGraphPage) Filter() techgraph.Filter { return p.filter }

// TechOptions lists technologies by name for the filter select.
func (p *TechGraphPage) TechOptions() []TechOption {
	out := make([]TechOption, 0, len(p.dataset.Techs))
	for _, t := range p.dataset.Techs {
		out = append(out, TechOption{ID: t.ID, Name: t.Name})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (p *TechGraphPage) Categories() []string {
	return techgraph.Categories(p.dataset.Techs)
}

// Placeholder is the message shown instead of the graph, or "" when there
// is something to draw.
func (p *TechGraphPage) Placeholder() string {
	switch {
	case !p.loaded:
		return PlaceholderLoading
	case p.dataset.IsEmpty() || p.graph.IsEmpty():
		return PlaceholderNoData
	}
	return ""
}

// NoTechnology and NoCategory mark the placeholder options as selected.
func (p *TechGraphPage) NoTechnology() bool { return p.filter.Technology == nil }

func (p *TechGraphPage) NoCategory() bool { return p.filter.Category == nil }

func (p *TechGraphPage) TechnologySelected(id int) bool {
	return p.filter.Technology != nil && *p.filter.Technology == id
}

func (p *TechGraphPage) CategorySelected(c string) bool {
	return p.filter.Category != nil && *p.filter.Category == c
}
