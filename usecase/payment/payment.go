package payment

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/guruapp/backend/domain"
	"github.com/guruapp/backend/repository"
)

type UseCase struct {
	payments repository.PaymentRepository
	users    repository.UserRepository
	items    repository.ItemRepository
	logger   *zap.Logger
}

func New(
	payments repository.PaymentRepository,
	users repository.UserRepository,
	items repository.ItemRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		payments: payments,
		users:    users,
		items:    items,
		logger:   logger,
	}
}

type SubmitInput struct {
	UserID          string
	ItemID          string
	Amount          float64
	TillNumber      string
	TransactionCode string
	Kind            string
}

// Submit records a manual till-payment claim. The claimant must exist, and
// listing-fee claims must reference an item owned by the claimant so the
// verification cascade knows what to activate. Claims always start pending.
func (uc *UseCase) Submit(ctx context.Context, input SubmitInput) (*domain.Payment, error) {
	if input.Kind == "" {
		input.Kind = domain.PaymentKindListingFee
	}
	if !domain.ValidPaymentKind(input.Kind) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown payment kind")
	}
	if input.Amount <= 0 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "amount must be positive")
	}
	input.TillNumber = strings.TrimSpace(input.TillNumber)
	input.TransactionCode = strings.TrimSpace(input.TransactionCode)
	if input.TillNumber == "" || input.TransactionCode == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "till number and transaction code are required")
	}

	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Kind == domain.PaymentKindListingFee {
		if input.ItemID == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "listing fee claims require an item id")
		}
		item, err := uc.items.GetByID(ctx, input.ItemID)
		if err != nil {
			return nil, err
		}
		if item.OwnerID != user.ID {
			return nil, domain.NewError(domain.ErrCodeInvalid, "item does not belong to the claimant")
		}
	}

	claim := &domain.Payment{
		UserID:          user.ID,
		ItemID:          input.ItemID,
		Amount:          input.Amount,
		TillNumber:      input.TillNumber,
		TransactionCode: input.TransactionCode,
		Kind:            input.Kind,
	}
	return uc.payments.Create(ctx, claim)
}

// ListAll returns every claim, newest first, for admin review.
func (uc *UseCase) ListAll(ctx context.Context) ([]domain.Payment, error) {
	return uc.payments.List(ctx)
}
