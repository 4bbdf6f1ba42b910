package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guruapp/backend/domain"
	"github.com/guruapp/backend/repository"
)

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository returns a Postgres-backed implementation of PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) repository.PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if payment == nil {
		return nil, domain.ErrInvalidPayload
	}
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}

	// Claims always enter the ledger pending; caller-supplied status is ignored.
	const query = `
	INSERT INTO payments (id, user_id, item_id, amount, till_number, transaction_code, kind, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
	RETURNING status, created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		payment.ID,
		payment.UserID,
		nullString(payment.ItemID),
		payment.Amount,
		payment.TillNumber,
		payment.TransactionCode,
		payment.Kind,
	).Scan(&payment.Status, &payment.CreatedAt); err != nil {
		return nil, err
	}
	payment.DecidedAt = nil
	return payment, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	const query = selectPayments + ` WHERE id = $1`
	return scanPayment(r.pool.QueryRow(ctx, query, id))
}

func (r *paymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	const query = selectPayments + ` ORDER BY created_at DESC, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) Decide(ctx context.Context, id string, verified bool) (*domain.Payment, error) {
	status := domain.PaymentRejected
	if verified {
		status = domain.PaymentVerified
	}

	// The pending guard makes the transition single-shot: of two concurrent
	// decisions on the same claim, exactly one matches a pending row.
	const query = `
	UPDATE payments
	SET status = $2,
		decided_at = NOW()
	WHERE id = $1 AND status = 'pending'
	RETURNING id, user_id, item_id, amount, till_number, transaction_code, kind, status, created_at, decided_at
	`
	payment, err := scanPayment(r.pool.QueryRow(ctx, query, id, status))
	if err == nil {
		return payment, nil
	}
	if !errors.Is(err, domain.ErrPaymentNotFound) {
		return nil, err
	}

	// No pending row matched: distinguish a missing claim from a terminal one.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, domain.ErrPaymentDecided
}

const selectPayments = `
	SELECT id, user_id, item_id, amount, till_number, transaction_code, kind, status, created_at, decided_at
	FROM payments`

func scanPayment(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Payment, error) {
	var payment domain.Payment
	var itemID *string
	if err := row.Scan(
		&payment.ID,
		&payment.UserID,
		&itemID,
		&payment.Amount,
		&payment.TillNumber,
		&payment.TransactionCode,
		&payment.Kind,
		&payment.Status,
		&payment.CreatedAt,
		&payment.DecidedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	if itemID != nil {
		payment.ItemID = *itemID
	}
	return &payment, nil
}
