package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/yungbote/techverse/internal/data/repos"
	types "github.com/yungbote/techverse/internal/domain"
	"github.com/yungbote/techverse/internal/observability"
	"github.com/yungbote/techverse/internal/platform/ctxutil"
	"github.com/yungbote/techverse/internal/platform/logger"
	"github.com/yungbote/techverse/internal/realtime"
)

// SeedTexts is the fixed sample set written by the seed commands.
var SeedTexts = []string{"Buy groceries", "Read a book", "Learn Go"}

type ItemService interface {
	List(ctx context.Context) ([]*types.Item, error)
	Add(ctx context.Context, text string) (*types.Item, error)
	Delete(ctx context.Context, id int64) error
	SeedIfEmpty(ctx context.Context) (int, error)
	ForceSeed(ctx context.Context) (int, error)
}

type itemService struct {
	db       *gorm.DB
	log      *logger.Logger
	itemRepo repos.ItemRepo
	emit     SSEEmitter
	metrics  *observability.Metrics
	now      func() time.Time
}

type ItemServiceOption func(*itemService)

// WithClock overrides the clock used to stamp new items.
func WithClock(now func() time.Time) ItemServiceOption {
	return func(s *itemService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithEmitter(emit SSEEmitter) ItemServiceOption {
	return func(s *itemService) { s.emit = emit }
}

func WithMetrics(m *observability.Metrics) ItemServiceOption {
	return func(s *itemService) { s.metrics = m }
}

func NewItemService(db *gorm.DB, log *logger.Logger, itemRepo repos.ItemRepo, opts ...ItemServiceOption) ItemService {
	s := &itemService{
		db:       db,
		log:      log.With("service", "ItemService"),
		itemRepo: itemRepo,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *itemService) List(ctx context.Context) ([]*types.Item, error) {
	items, err := s.itemRepo.ListNewestFirst(ctx, nil)
	if err != nil {
		s.log.Error("List items failed", append(ctxutil.LogFields(ctx), "error", err)...)
		s.metrics.ObserveItemOp("list", "storage_error")
		return nil, storageErr("failed to fetch items", err)
	}
	s.metrics.ObserveItemOp("list", "ok")
	return items, nil
}

func (s *itemService) Add(ctx context.Context, text string) (*types.Item, error) {
	clean, err := ValidateItemText(text)
	if err != nil {
		s.log.Debug("Rejected item text", append(ctxutil.LogFields(ctx), "reason", err.Error())...)
		s.metrics.ObserveItemOp("add", "validation")
		return nil, err
	}

	item := &types.Item{Text: clean, CreatedAt: s.now().UTC()}
	created, err := s.itemRepo.Create(ctx, nil, []*types.Item{item})
	if err != nil {
		s.log.Error("Add item failed", append(ctxutil.LogFields(ctx), "error", err)...)
		s.metrics.ObserveItemOp("add", "storage_error")
		return nil, storageErr("failed to add item", err)
	}

	s.metrics.ObserveItemOp("add", "ok")
	s.log.Info("Item added", append(ctxutil.LogFields(ctx), "item_id", created[0].ID)...)
	s.publishChanged(ctx, "add", created[0].ID)
	return created[0], nil
}

func (s *itemService) Delete(ctx context.Context, id int64) error {
	affected, err := s.itemRepo.DeleteByID(ctx, nil, id)
	if err != nil {
		s.log.Error("Delete item failed", append(ctxutil.LogFields(ctx), "item_id", id, "error", err)...)
		s.metrics.ObserveItemOp("delete", "storage_error")
		return storageErr("failed to delete item", err)
	}
	if affected == 0 {
		s.metrics.ObserveItemOp("delete", "not_found")
		return ErrItemNotFound
	}

	s.metrics.ObserveItemOp("delete", "ok")
	s.log.Info("Item deleted", append(ctxutil.LogFields(ctx), "item_id", id)...)
	s.publishChanged(ctx, "delete", id)
	return nil
}

func (s *itemService) SeedIfEmpty(ctx context.Context) (int, error) {
	n, err := s.itemRepo.Count(ctx, nil)
	if err != nil {
		return 0, storageErr("failed to count items", err)
	}
	if n > 0 {
		s.log.Info("Items table not empty, skipping seed", "count", n)
		return 0, nil
	}
	return s.seed(ctx), nil
}

func (s *itemService) ForceSeed(ctx context.Context) (int, error) {
	return s.seed(ctx), nil
}

// seed inserts each sample on its own so one failing row does not stop the rest.
func (s *itemService) seed(ctx context.Context) int {
	inserted := 0
	for _, text := range SeedTexts {
		item := &types.Item{Text: text, CreatedAt: s.now().UTC()}
		if _, err := s.itemRepo.Create(ctx, nil, []*types.Item{item}); err != nil {
			s.log.Error("Seed item failed", "text", text, "error", err)
			continue
		}
		inserted++
		s.log.Info("Seeded item", "item_id", item.ID, "text", text)
	}
	if inserted > 0 {
		s.publishChanged(ctx, "seed", 0)
	}
	return inserted
}

func (s *itemService) publishChanged(ctx context.Context, op string, id int64) {
	if s.emit == nil {
		return
	}
	data := map[string]any{"op": op}
	if id != 0 {
		data["id"] = id
	}
	s.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.ChannelItems,
		Event:   realtime.SSEEventItemsChanged,
		Data:    data,
	})
}

// ValidateItemText returns the trimmed text. The length limit applies to the
// text as submitted, emptiness to the trimmed text.
func ValidateItemText(text string) (string, error) {
	if utf8.RuneCountInString(text) > types.MaxItemTextLength {
		return "", &ValidationError{Field: "text", Message: "Item text too long (max 100 characters)"}
	}
	clean := strings.TrimSpace(text)
	if clean == "" {
		return "", &ValidationError{Field: "text", Message: "Item text cannot be empty"}
	}
	return clean, nil
}

// IsStorageError reports whether err came from the database layer.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}
