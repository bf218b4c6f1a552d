package graph

import (
	"context"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/techverse/internal/domain/catalog"
	"github.com/yungbote/techverse/internal/platform/logger"
	"github.com/yungbote/techverse/internal/platform/neo4jdb"
)

// CatalogStats counts what a mirror run wrote.
type CatalogStats struct {
	Books      int
	Techs      int
	Categories int
	Features   int
}

type catalogRecords struct {
	books      []map[string]any
	techs      []map[string]any
	categories []map[string]any
	features   []map[string]any
}

func (r catalogRecords) stats() CatalogStats {
	return CatalogStats{
		Books:      len(r.books),
		Techs:      len(r.techs),
		Categories: len(r.categories),
		Features:   len(r.features),
	}
}

// buildCatalogRecords flattens ds into query parameters. Duplicate ids keep
// the first row and links to unknown books or technologies are dropped, the
// same rules the page projection applies.
func buildCatalogRecords(ds catalog.Dataset, now time.Time) catalogRecords {
	syncedAt := now.UTC().Format(time.RFC3339Nano)
	var out catalogRecords

	books := make(map[int]bool, len(ds.Books))
	for _, b := range ds.Books {
		if books[b.ID] {
			continue
		}
		books[b.ID] = true
		out.books = append(out.books, map[string]any{
			"id":        int64(b.ID),
			"title":     b.Title,
			"author":    b.Author,
			"series":    b.Series,
			"synced_at": syncedAt,
		})
	}

	techs := make(map[int]bool, len(ds.Techs))
	categories := map[string]bool{}
	for _, t := range ds.Techs {
		if techs[t.ID] {
			continue
		}
		techs[t.ID] = true
		out.techs = append(out.techs, map[string]any{
			"id":          int64(t.ID),
			"name":        t.Name,
			"category":    t.Category,
			"subcategory": t.Subcategory,
			"description": t.Description,
			"synced_at":   syncedAt,
		})
		if !categories[t.Category] {
			categories[t.Category] = true
			out.categories = append(out.categories, map[string]any{
				"name":      t.Category,
				"synced_at": syncedAt,
			})
		}
	}

	seen := map[[2]int]bool{}
	for _, l := range ds.Links {
		key := [2]int{l.BookID, l.TechID}
		if seen[key] || !books[l.BookID] || !techs[l.TechID] {
			continue
		}
		seen[key] = true
		out.features = append(out.features, map[string]any{
			"book_id":   int64(l.BookID),
			"tech_id":   int64(l.TechID),
			"synced_at": syncedAt,
		})
	}
	return out
}

// UpsertCatalogGraph mirrors the dataset into Neo4j as
// (Book)-[:FEATURES]->(Technology)-[:IN_CATEGORY]->(Category).
// A nil client is a no-op.
func UpsertCatalogGraph(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, ds catalog.Dataset) (CatalogStats, error) {
	if client == nil || client.Driver == nil {
		return CatalogStats{}, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	recs := buildCatalogRecords(ds, time.Now())

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	// Best-effort schema init.
	{
		stmts := []string{
			`CREATE CONSTRAINT book_id_unique IF NOT EXISTS FOR (b:Book) REQUIRE b.id IS UNIQUE`,
			`CREATE CONSTRAINT technology_id_unique IF NOT EXISTS FOR (t:Technology) REQUIRE t.id IS UNIQUE`,
			`CREATE CONSTRAINT category_name_unique IF NOT EXISTS FOR (c:Category) REQUIRE c.name IS UNIQUE`,
		}
		for _, q := range stmts {
			if res, err := session.Run(ctx, q, nil); err != nil {
				if log != nil {
					log.Warn("neo4j schema init failed (continuing)", "error", err)
				}
			} else {
				_, _ = res.Consume(ctx)
			}
		}
	}

	steps := []struct {
		query string
		param string
		rows  []map[string]any
	}{
		{`
UNWIND $books AS b
MERGE (n:Book {id: b.id})
SET n += b
`, "books", recs.books},
		{`
UNWIND $categories AS c
MERGE (n:Category {name: c.name})
SET n.synced_at = c.synced_at
`, "categories", recs.categories},
		{`
UNWIND $techs AS t
MERGE (n:Technology {id: t.id})
SET n += t
WITH n, t
MATCH (c:Category {name: t.category})
MERGE (n)-[e:IN_CATEGORY]->(c)
SET e.synced_at = t.synced_at
`, "techs", recs.techs},
		{`
UNWIND $rels AS r
MATCH (b:Book {id: r.book_id})
MATCH (t:Technology {id: r.tech_id})
MERGE (b)-[e:FEATURES]->(t)
SET e.synced_at = r.synced_at
`, "rels", recs.features},
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, step := range steps {
			if len(step.rows) == 0 {
				continue
			}
			res, err := tx.Run(ctx, strings.TrimSpace(step.query), map[string]any{step.param: step.rows})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return CatalogStats{}, err
	}

	stats := recs.stats()
	if log != nil {
		log.Info("Catalog graph mirrored", "books", stats.Books, "techs", stats.Techs, "categories", stats.Categories, "features", stats.Features)
	}
	return stats, nil
}
