package verification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/guruapp/backend/domain"
	"github.com/guruapp/backend/internal/infrastructure/audit"
	"github.com/guruapp/backend/repository"
	"github.com/guruapp/backend/usecase"
)

// Workflow applies admin decisions to payment claims and cascades the side
// effects of a verified listing fee: the claimant seller becomes approved and
// the referenced listing goes live.
type Workflow struct {
	payments repository.PaymentRepository
	users    repository.UserRepository
	items    repository.ItemRepository
	trail    usecase.AuditRecorder
	logger   *zap.Logger
}

func New(
	payments repository.PaymentRepository,
	users repository.UserRepository,
	items repository.ItemRepository,
	trail usecase.AuditRecorder,
	logger *zap.Logger,
) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		payments: payments,
		users:    users,
		items:    items,
		trail:    trail,
		logger:   logger,
	}
}

// Decide settles a pending claim. The ledger transition runs first and is
// single-shot: an unknown claim fails with not-found, a terminal claim with
// already-decided, and in both cases no other store is touched.
//
// The cascade runs only after a successful verification of a listing-fee
// claim. Cascade failures are logged and swallowed: the claim's own status
// stays authoritative even when a downstream effect could not be applied.
func (w *Workflow) Decide(ctx context.Context, claimID string, verified bool) (*domain.Payment, error) {
	claim, err := w.payments.Decide(ctx, claimID, verified)
	if err != nil {
		return nil, err
	}

	action := audit.ActionPaymentRejected
	if verified {
		action = audit.ActionPaymentVerified
	}
	w.record(ctx, action, audit.EntityPayment, claim.ID, fmt.Sprintf("kind=%s", claim.Kind))

	if claim.Status == domain.PaymentVerified && claim.Kind == domain.PaymentKindListingFee {
		w.cascade(ctx, claim)
	}
	return claim, nil
}

func (w *Workflow) cascade(ctx context.Context, claim *domain.Payment) {
	owner, err := w.users.GetByID(ctx, claim.UserID)
	if err != nil {
		w.logger.Warn("cascade skipped: claimant not resolvable",
			zap.String("payment_id", claim.ID),
			zap.String("user_id", claim.UserID),
			zap.Error(err))
		return
	}

	if owner.IsSeller() && !owner.Approved {
		if _, err := w.users.SetApproval(ctx, owner.ID, true); err != nil {
			w.logger.Warn("cascade: seller approval failed",
				zap.String("payment_id", claim.ID),
				zap.String("user_id", owner.ID),
				zap.Error(err))
		} else {
			w.record(ctx, audit.ActionSellerApproved, audit.EntityUser, owner.ID,
				fmt.Sprintf("payment=%s", claim.ID))
		}
	}

	if claim.ItemID == "" {
		return
	}
	if _, err := w.items.SetPaidAndActive(ctx, claim.ItemID, true); err != nil {
		w.logger.Warn("cascade: item activation failed",
			zap.String("payment_id", claim.ID),
			zap.String("item_id", claim.ItemID),
			zap.Error(err))
		return
	}
	w.record(ctx, audit.ActionItemActivated, audit.EntityItem, claim.ItemID,
		fmt.Sprintf("payment=%s", claim.ID))
}

func (w *Workflow) record(ctx context.Context, action, entity, entityID, detail string) {
	if w.trail == nil {
		return
	}
	if err := w.trail.Record(ctx, action, entity, entityID, detail); err != nil {
		w.logger.Warn("audit record failed", zap.String("action", action), zap.Error(err))
	}
}
