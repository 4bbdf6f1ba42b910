package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guruapp/backend/domain"
	"github.com/guruapp/backend/repository"
)

type ItemStore struct {
	mu    sync.RWMutex
	items map[string]domain.Item
}

func NewItemStore() *ItemStore {
	return &ItemStore{items: make(map[string]domain.Item)}
}

func (s *ItemStore) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, domain.ErrInvalidPayload
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	// New listings always start unpaid and inactive.
	item.Paid = false
	item.Active = false
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	s.items[item.ID] = *item
	return item, nil
}

func (s *ItemStore) GetByID(_ context.Context, id string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

func (s *ItemStore) ListActive(ctx context.Context) ([]domain.Item, error) {
	return s.list(func(item domain.Item) bool { return item.Active })
}

func (s *ItemStore) List(ctx context.Context) ([]domain.Item, error) {
	return s.list(func(domain.Item) bool { return true })
}

func (s *ItemStore) SetPaidAndActive(_ context.Context, id string, active bool) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	item.Active = active
	if active {
		item.Paid = true
	}
	item.UpdatedAt = time.Now()
	s.items[id] = item
	return &item, nil
}

func (s *ItemStore) list(keep func(domain.Item) bool) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		if keep(item) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

var _ repository.ItemRepository = (*ItemStore)(nil)
