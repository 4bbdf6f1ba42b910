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

type PaymentStore struct {
	mu       sync.Mutex
	payments map[string]domain.Payment
}

func NewPaymentStore() *PaymentStore {
	return &PaymentStore{payments: make(map[string]domain.Payment)}
}

func (s *PaymentStore) Create(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if payment == nil {
		return nil, domain.ErrInvalidPayload
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	// Claims always enter the ledger pending; caller-supplied status is ignored.
	payment.Status = domain.PaymentPending
	payment.DecidedAt = nil
	payment.CreatedAt = time.Now()

	s.payments[payment.ID] = *payment
	return payment, nil
}

func (s *PaymentStore) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return &payment, nil
}

func (s *PaymentStore) List(_ context.Context) ([]domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payments := make([]domain.Payment, 0, len(s.payments))
	for _, payment := range s.payments {
		payments = append(payments, payment)
	}
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].CreatedAt.Equal(payments[j].CreatedAt) {
			return payments[i].CreatedAt.After(payments[j].CreatedAt)
		}
		return payments[i].ID < payments[j].ID
	})
	return payments, nil
}

// Decide transitions a pending claim to its terminal status. The check and
// the write happen under one lock, so of two concurrent decisions on the
// same claim exactly one succeeds.
func (s *PaymentStore) Decide(_ context.Context, id string, verified bool) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	if payment.Status != domain.PaymentPending {
		return nil, domain.ErrPaymentDecided
	}

	if verified {
		payment.Status = domain.PaymentVerified
	} else {
		payment.Status = domain.PaymentRejected
	}
	now := time.Now()
	payment.DecidedAt = &now

	s.payments[id] = payment
	return &payment, nil
}

var _ repository.PaymentRepository = (*PaymentStore)(nil)
