package app

import (
	"context"
	"fmt"

	"github.com/yungbote/techverse/internal/data/graph"
	"github.com/yungbote/techverse/internal/data/repos"
	"github.com/yungbote/techverse/internal/datasets"
	"github.com/yungbote/techverse/internal/platform/neo4jdb"
	"github.com/yungbote/techverse/internal/services"
)

// Migrate applies the schema and exits.
func Migrate(ctx context.Context, cfg Config) error {
	log, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	svc, err := OpenDatabase(log, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Ping(ctx); err != nil {
		return err
	}
	log.Info("Database migrations completed")
	return nil
}

// Seed migrates, then inserts the sample items. Without force the insert
// only happens into an empty table.
func Seed(ctx context.Context, cfg Config, force bool) (int, error) {
	log, err := NewLogger(cfg)
	if err != nil {
		return 0, err
	}
	defer log.Sync()

	svc, err := OpenDatabase(log, cfg)
	if err != nil {
		return 0, err
	}
	defer svc.Close()

	items := services.NewItemService(svc.DB(), log, repos.NewItemRepo(svc.DB(), log))
	if force {
		return items.ForceSeed(ctx)
	}
	return items.SeedIfEmpty(ctx)
}

// ExportGraph loads the dataset and mirrors it into Neo4j.
func ExportGraph(ctx context.Context, cfg Config) (graph.CatalogStats, error) {
	log, err := NewLogger(cfg)
	if err != nil {
		return graph.CatalogStats{}, err
	}
	defer log.Sync()

	if cfg.Neo4j.URI == "" {
		return graph.CatalogStats{}, fmt.Errorf("NEO4J_URI is required to export the graph")
	}

	src, _, err := resolveDatasetSource(ctx, log, cfg)
	if err != nil {
		return graph.CatalogStats{}, err
	}
	defer closeSource(src)

	ds := datasets.NewLoader(src, log, nil).Load(ctx)
	if ds.IsEmpty() {
		return graph.CatalogStats{}, fmt.Errorf("no dataset could be loaded from %s", src)
	}

	client, err := neo4jdb.New(ctx, log, cfg.Neo4j)
	if err != nil {
		return graph.CatalogStats{}, err
	}
	defer client.Close(context.Background())

	return graph.UpsertCatalogGraph(ctx, client, log, ds)
}
