package repository

import (
	"context"

	"github.com/guruapp/backend/domain"
)

// PaymentRepository is the payment ledger. New claims always start pending.
// Decide transitions a claim out of pending exactly once: a second decision
// on the same claim fails with domain.ErrPaymentDecided, which is also the
// mutual-exclusion boundary for concurrent decisions on one claim.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	Decide(ctx context.Context, id string, verified bool) (*domain.Payment, error)
}
