package services

import (
	"context"
	"sync"

	"github.com/yungbote/techverse/internal/domain/catalog"
	"github.com/yungbote/techverse/internal/platform/logger"
)

type DatasetLoader interface {
	Load(ctx context.Context) catalog.Dataset
}

// TechGraphService owns the read-only technology dataset. It is loaded once
// and then shared by every request; Reload swaps it atomically.
type TechGraphService interface {
	Reload(ctx context.Context) catalog.Dataset
	Dataset() (catalog.Dataset, bool)
}

type techGraphService struct {
	log    *logger.Logger
	loader DatasetLoader

	mu     sync.RWMutex
	ds     catalog.Dataset
	loaded bool
}

func NewTechGraphService(log *logger.Logger, loader DatasetLoader) TechGraphService {
	return &techGraphService{
		log:    log.With("service", "TechGraphService"),
		loader: loader,
	}
}

func (s *techGraphService) Reload(ctx context.Context) catalog.Dataset {
	ds := s.loader.Load(ctx)

	s.mu.Lock()
	s.ds = ds
	s.loaded = true
	s.mu.Unlock()

	s.log.Debug("Dataset ready", "empty", ds.IsEmpty())
	return ds
}

// Dataset returns the current dataset and whether a load has finished.
func (s *techGraphService) Dataset() (catalog.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds, s.loaded
}
