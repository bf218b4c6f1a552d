package techgraph

import "github.com/yungbote/techverse/internal/domain/catalog"

// Filter is the single-select highlight state of the graph page. At most one
// of Technology and Category is set.
type Filter struct {
	Technology *int    `json:"technology,omitempty"`
	Category   *string `json:"category,omitempty"`
}

func (f Filter) SelectTechnology(id int) Filter {
	return Filter{Technology: &id}
}

func (f Filter) SelectCategory(category string) Filter {
	return Filter{Category: &category}
}

func (f Filter) Clear() Filter {
	return Filter{}
}

func (f Filter) Active() bool {
	return f.Technology != nil || f.Category != nil
}

func (f Filter) Matches(t catalog.Tech) bool {
	switch {
	case f.Technology != nil:
		return t.ID == *f.Technology
	case f.Category != nil:
		return t.Category == *f.Category
	default:
		return false
	}
}

func (f Filter) Equal(o Filter) bool {
	return equalPtr(f.Technology, o.Technology) && equalPtr(f.Category, o.Category)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
