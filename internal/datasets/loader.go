package datasets

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/techverse/internal/domain/catalog"
	"github.com/yungbote/techverse/internal/observability"
	"github.com/yungbote/techverse/internal/platform/logger"
)

type Loader struct {
	src     Source
	log     *logger.Logger
	metrics *observability.Metrics
}

func NewLoader(src Source, log *logger.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		src:     src,
		log:     log.With("service", "DatasetLoader", "source", src.String()),
		metrics: metrics,
	}
}

// Load fetches the three dataset files concurrently. It never fails: a
// missing or malformed file is logged and the whole dataset comes back empty.
func (l *Loader) Load(ctx context.Context) catalog.Dataset {
	start := time.Now()
	ds, err := l.load(ctx)
	if err != nil {
		l.log.Warn("Dataset unavailable, serving empty graph", "error", err)
		l.metrics.ObserveDatasetLoad(l.src.Kind(), false, 0, 0, 0)
		return catalog.Dataset{}
	}
	l.metrics.ObserveDatasetLoad(l.src.Kind(), true, len(ds.Books), len(ds.Techs), len(ds.Links))
	l.log.Info("Dataset loaded",
		"books", len(ds.Books),
		"technologies", len(ds.Techs),
		"links", len(ds.Links),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return ds
}

func (l *Loader) load(ctx context.Context) (catalog.Dataset, error) {
	var ds catalog.Dataset
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		ds.Books, err = fetch(gctx, l.src, BooksFile, ParseBooks)
		return err
	})
	g.Go(func() (err error) {
		ds.Techs, err = fetch(gctx, l.src, TechsFile, ParseTechs)
		return err
	})
	g.Go(func() (err error) {
		ds.Links, err = fetch(gctx, l.src, LinksFile, ParseLinks)
		return err
	})

	if err := g.Wait(); err != nil {
		return catalog.Dataset{}, err
	}
	return ds, nil
}

func fetch[T any](ctx context.Context, src Source, name string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	out, err := parse(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return out, nil
}
