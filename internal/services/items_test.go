package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/techverse/internal/data/repos"
	"github.com/yungbote/techverse/internal/data/repos/testutil"
	types "github.com/yungbote/techverse/internal/domain"
	"github.com/yungbote/techverse/internal/realtime"
)

type recordingEmitter struct {
	mu   sync.Mutex
	msgs []realtime.SSEMessage
}

func (e *recordingEmitter) Emit(_ context.Context, msg realtime.SSEMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.msgs = append(e.msgs, msg)
}

func (e *recordingEmitter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.msgs)
}

// stepClock advances one second per call so every insert gets a distinct time.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestItemService(t *testing.T, opts ...ItemServiceOption) (ItemService, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return NewItemService(db, log, repos.NewItemRepo(db, log), opts...), db
}

func TestItemServiceAddThenList(t *testing.T) {
	svc, _ := newTestItemService(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	created, err := svc.Add(ctx, "Read a book")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "Read a book", list[0].Text)
	assert.False(t, list[0].CreatedAt.Before(before), "created_at %v before %v", list[0].CreatedAt, before)
}

func TestItemServiceAddTrimsText(t *testing.T) {
	svc, _ := newTestItemService(t)

	created, err := svc.Add(context.Background(), "  Learn Go \n")
	require.NoError(t, err)
	assert.Equal(t, "Learn Go", created.Text)
}

func TestItemServiceAddValidation(t *testing.T) {
	svc, _ := newTestItemService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "empty", text: "", wantErr: true},
		{name: "whitespace", text: "   ", wantErr: true},
		{name: "too long", text: strings.Repeat("a", 101), wantErr: true},
		{name: "exactly max", text: strings.Repeat("a", 100)},
		{name: "multibyte at max", text: strings.Repeat("é", 100)},
		{name: "multibyte over max", text: strings.Repeat("é", 101), wantErr: true},
		{name: "leading space over max", text: " " + strings.Repeat("x", 100), wantErr: true},
		{name: "trailing newline over max", text: strings.Repeat("x", 100) + "\n", wantErr: true},
		{name: "whitespace over max", text: strings.Repeat(" ", 101), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tc.text)
			if !tc.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "text", verr.Field)
		})
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestItemServiceListNewestFirst(t *testing.T) {
	clock := &stepClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc, _ := newTestItemService(t, WithClock(clock.Now))
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		_, err := svc.Add(ctx, text)
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Text)
	assert.Equal(t, "second", list[1].Text)
	assert.Equal(t, "first", list[2].Text)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt))
	}
}

func TestItemServiceDelete(t *testing.T) {
	svc, _ := newTestItemService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, "Buy groceries")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemServiceDeleteUnknownID(t *testing.T) {
	svc, _ := newTestItemService(t)

	err := svc.Delete(context.Background(), 424242)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemServicePublishesChanges(t *testing.T) {
	emit := &recordingEmitter{}
	svc, _ := newTestItemService(t, WithEmitter(emit))
	ctx := context.Background()

	created, err := svc.Add(ctx, "one")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "")
	require.Error(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))
	require.Error(t, svc.Delete(ctx, created.ID))

	require.Equal(t, 2, emit.count())
	for _, msg := range emit.msgs {
		assert.Equal(t, realtime.ChannelItems, msg.Channel)
		assert.Equal(t, realtime.SSEEventItemsChanged, msg.Event)
	}
}

func TestItemServiceSeedIfEmpty(t *testing.T) {
	svc, _ := newTestItemService(t)
	ctx := context.Background()

	n, err := svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SeedTexts), n)

	n, err = svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = svc.ForceSeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SeedTexts), n)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2*len(SeedTexts))
}

type failingItemRepo struct {
	repos.ItemRepo
	createErr error
	failText  string
}

func (r *failingItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.Item) ([]*types.Item, error) {
	if r.failText == "" || (len(items) == 1 && items[0].Text == r.failText) {
		return nil, r.createErr
	}
	return r.ItemRepo.Create(ctx, tx, items)
}

func (r *failingItemRepo) ListNewestFirst(ctx context.Context, tx *gorm.DB) ([]*types.Item, error) {
	if r.failText == "" {
		return nil, r.createErr
	}
	return r.ItemRepo.ListNewestFirst(ctx, tx)
}

func TestItemServiceStorageFailures(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	cause := errors.New("disk on fire")
	svc := NewItemService(db, log, &failingItemRepo{ItemRepo: repos.NewItemRepo(db, log), createErr: cause})
	ctx := context.Background()

	_, err := svc.Add(ctx, "ok text")
	require.Error(t, err)
	assert.True(t, IsStorageError(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, errors.Is(err, ErrValidation))
	var serr *StorageError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "failed to add item", serr.Message)

	_, err = svc.List(ctx)
	require.Error(t, err)
	assert.True(t, IsStorageError(err))
}

func TestItemServiceSeedContinuesPastFailures(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := &failingItemRepo{ItemRepo: repos.NewItemRepo(db, log), createErr: errors.New("boom"), failText: "Read a book"}
	svc := NewItemService(db, log, repo)
	ctx := context.Background()

	n, err := svc.ForceSeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SeedTexts)-1, n)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(SeedTexts)-1)
}
