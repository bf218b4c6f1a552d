// Package catalog holds the read-only reference records shown on the
// technology graph page.
package catalog

type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Series string `json:"series"`
}

type Tech struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`
}

type BookTechLink struct {
	BookID int `json:"book_id"`
	TechID int `json:"tech_id"`
}

// Dataset is the joined input of the graph page. A zero Dataset means no data
// could be loaded.
type Dataset struct {
	Books []Book         `json:"books"`
	Techs []Tech         `json:"techs"`
	Links []BookTechLink `json:"links"`
}

func (d Dataset) IsEmpty() bool {
	return len(d.Books) == 0 && len(d.Techs) == 0 && len(d.Links) == 0
}
