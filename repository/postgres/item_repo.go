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

type itemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository returns a Postgres-backed implementation of ItemRepository.
func NewItemRepository(pool *pgxpool.Pool) repository.ItemRepository {
	return &itemRepository{pool: pool}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, domain.ErrInvalidPayload
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	// New listings always start unpaid and inactive.
	const query = `
	INSERT INTO items (id, owner_id, title, description, price, kind, file_path, image_path, paid, active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, FALSE)
	RETURNING paid, active, created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		item.ID,
		item.OwnerID,
		item.Title,
		item.Description,
		item.Price,
		item.Kind,
		nullString(item.FilePath),
		nullString(item.ImagePath),
	).Scan(&item.Paid, &item.Active, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	const query = selectItems + ` WHERE id = $1`
	return scanItem(r.pool.QueryRow(ctx, query, id))
}

func (r *itemRepository) ListActive(ctx context.Context) ([]domain.Item, error) {
	const query = selectItems + ` WHERE active ORDER BY created_at DESC, id`
	return r.queryItems(ctx, query)
}

func (r *itemRepository) List(ctx context.Context) ([]domain.Item, error) {
	const query = selectItems + ` ORDER BY created_at DESC, id`
	return r.queryItems(ctx, query)
}

func (r *itemRepository) SetPaidAndActive(ctx context.Context, id string, active bool) (*domain.Item, error) {
	// Activation implies paid; deactivation never revokes paid.
	const query = `
	UPDATE items
	SET active = $2,
		paid = CASE WHEN $2 THEN TRUE ELSE paid END,
		updated_at = NOW()
	WHERE id = $1
	RETURNING id, owner_id, title, description, price, kind, file_path, image_path, paid, active, created_at, updated_at
	`
	return scanItem(r.pool.QueryRow(ctx, query, id, active))
}

const selectItems = `
	SELECT id, owner_id, title, description, price, kind, file_path, image_path, paid, active, created_at, updated_at
	FROM items`

func (r *itemRepository) queryItems(ctx context.Context, query string) ([]domain.Item, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func scanItem(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Item, error) {
	var item domain.Item
	var filePath, imagePath *string
	if err := row.Scan(
		&item.ID,
		&item.OwnerID,
		&item.Title,
		&item.Description,
		&item.Price,
		&item.Kind,
		&filePath,
		&imagePath,
		&item.Paid,
		&item.Active,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	if filePath != nil {
		item.FilePath = *filePath
	}
	if imagePath != nil {
		item.ImagePath = *imagePath
	}
	return &item, nil
}
