package repository

import (
	"context"

	"github.com/guruapp/backend/domain"
)

// UserRepository is the identity store. Buyers are auto-approved at creation;
// sellers gain approval only through SetApproval.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetApproval(ctx context.Context, id string, approved bool) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
