package pages

import (
	"context"
	"errors"

	types "github.com/yungbote/techverse/internal/domain"
	"github.com/yungbote/techverse/internal/services"
)

// HomePage is the item manager view state: the current list plus the last
// error shown inline under the form.
type HomePage struct {
	items services.ItemService

	Items []*types.Item
	Error string
}

func NewHomePage(items services.ItemService) *HomePage {
	return &HomePage{items: items, Items: []*types.Item{}}
}

func (p *HomePage) Load(ctx context.Context) error {
	list, err := p.items.List(ctx)
	if err != nil {
		p.Error = UserMessage(err)
		return err
	}
	p.Items = list
	return nil
}

// Add stores text and re-fetches the list on success.
func (p *HomePage) Add(ctx context.Context, text string) error {
	if _, err := p.items.Add(ctx, text); err != nil {
		p.Error = UserMessage(err)
		return err
	}
	p.Error = ""
	return p.Load(ctx)
}

// Delete removes the item and re-fetches the list on success.
func (p *HomePage) Delete(ctx context.Context, id int64) error {
	if err := p.items.Delete(ctx, id); err != nil {
		p.Error = UserMessage(err)
		return err
	}
	p.Error = ""
	return p.Load(ctx)
}

func (p *HomePage) Empty() bool { return len(p.Items) == 0 }

// UserMessage is the text shown to the user for an item operation failure.
// Storage causes are never included.
func UserMessage(err error) string {
	var verr *services.ValidationError
	var serr *services.StorageError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, services.ErrItemNotFound):
		return "Item not found"
	case errors.As(err, &serr):
		return serr.Message
	}
	return "Something went wrong"
}
