package datasets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yungbote/techverse/internal/domain/catalog"
)

const (
	BooksFile = "books.csv"
	TechsFile = "technologies.csv"
	LinksFile = "book_tech_links.csv"
)

// row gives field access by header name for one CSV record.
type row struct {
	line   int
	cols   map[string]int
	fields []string
}

func (r row) str(col string) string {
	return strings.TrimSpace(r.fields[r.cols[col]])
}

func (r row) atoi(col string) (int, error) {
	v, err := strconv.Atoi(r.str(col))
	if err != nil {
		return 0, fmt.Errorf("line %d: column %q: %w", r.line, col, err)
	}
	return v, nil
}

// readRecords decodes a headed CSV stream, requiring every column in required
// to be present in the header. Column order in the file does not matter.
func readRecords[T any](r io.Reader, required []string, build func(row) (T, error)) ([]T, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	out := []T{}
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := build(row{line: line, cols: cols, fields: fields})
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func ParseBooks(r io.Reader) ([]catalog.Book, error) {
	return readRecords(r, []string{"id", "title", "author", "series"}, func(rw row) (catalog.Book, error) {
		id, err := rw.atoi("id")
		if err != nil {
			return catalog.Book{}, err
		}
		return catalog.Book{
			ID:     id,
			Title:  rw.str("title"),
			Author: rw.str("author"),
			Series: rw.str("series"),
		}, nil
	})
}

func ParseTechs(r io.Reader) ([]catalog.Tech, error) {
	return readRecords(r, []string{"id", "name", "category", "subcategory", "description"}, func(rw row) (catalog.Tech, error) {
		id, err := rw.atoi("id")
		if err != nil {
			return catalog.Tech{}, err
		}
		return catalog.Tech{
			ID:          id,
			Name:        rw.str("name"),
			Category:    rw.str("category"),
			Subcategory: rw.str("subcategory"),
			Description: rw.str("description"),
		}, nil
	})
}

func ParseLinks(r io.Reader) ([]catalog.BookTechLink, error) {
	return readRecords(r, []string{"book_id", "tech_id"}, func(rw row) (catalog.BookTechLink, error) {
		bookID, err := rw.atoi("book_id")
		if err != nil {
			return catalog.BookTechLink{}, err
		}
		techID, err := rw.atoi("tech_id")
		if err != nil {
			return catalog.BookTechLink{}, err
		}
		return catalog.BookTechLink{BookID: bookID, TechID: techID}, nil
	})
}
