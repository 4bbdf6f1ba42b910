package repository

import (
	"context"

	"github.com/guruapp/backend/domain"
)

// ItemRepository is the listing store. New items always start unpaid and
// inactive regardless of caller input. SetPaidAndActive forces paid=true when
// activating and leaves paid untouched when deactivating.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	ListActive(ctx context.Context) ([]domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	SetPaidAndActive(ctx context.Context, id string, active bool) (*domain.Item, error)
}
