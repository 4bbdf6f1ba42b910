package listing

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/guruapp/backend/domain"
	"github.com/guruapp/backend/internal/infrastructure/audit"
	"github.com/guruapp/backend/internal/infrastructure/storage"
	"github.com/guruapp/backend/repository"
	"github.com/guruapp/backend/usecase"
)

type UseCase struct {
	users  repository.UserRepository
	items  repository.ItemRepository
	files  storage.FileStore
	trail  usecase.AuditRecorder
	logger *zap.Logger
}

func New(
	users repository.UserRepository,
	items repository.ItemRepository,
	files storage.FileStore,
	trail usecase.AuditRecorder,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		items:  items,
		files:  files,
		trail:  trail,
		logger: logger,
	}
}

// Upload is an optional file attached to a listing submission.
type Upload struct {
	Name    string
	Content io.Reader
}

type CreateInput struct {
	OwnerID     string
	Title       string
	Description string
	Price       float64
	Kind        string
	File        *Upload
	Image       *Upload
}

// Create validates the owner (must exist, be a seller, be approved) and
// stores a new listing. Listings always start unpaid and inactive no matter
// what the caller sends.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*domain.Item, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if input.Price < 0 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "price must be non-negative")
	}
	if input.Kind == "" {
		input.Kind = domain.KindDigital
	}
	if !domain.ValidKind(input.Kind) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown product kind")
	}

	owner, err := uc.users.GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsSeller() {
		return nil, domain.ErrNotSeller
	}
	if !owner.CanList() {
		return nil, domain.ErrSellerNotApproved
	}

	filePath, err := uc.store(input.File)
	if err != nil {
		return nil, err
	}
	imagePath, err := uc.store(input.Image)
	if err != nil {
		return nil, err
	}

	item := &domain.Item{
		OwnerID:     owner.ID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Kind:        input.Kind,
		FilePath:    filePath,
		ImagePath:   imagePath,
	}
	return uc.items.Create(ctx, item)
}

// ListActive returns the listings visible to buyers.
func (uc *UseCase) ListActive(ctx context.Context) ([]domain.Item, error) {
	return uc.items.ListActive(ctx)
}

// Get returns a listing by id.
func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Item, error) {
	return uc.items.GetByID(ctx, id)
}

// ListAll returns every listing for admin review.
func (uc *UseCase) ListAll(ctx context.Context) ([]domain.Item, error) {
	return uc.items.List(ctx)
}

// Activate flips a listing's visibility on behalf of an admin. Activation
// forces paid=true; deactivation leaves paid untouched.
func (uc *UseCase) Activate(ctx context.Context, id string, active bool) (*domain.Item, error) {
	item, err := uc.items.SetPaidAndActive(ctx, id, active)
	if err != nil {
		return nil, err
	}

	action := audit.ActionItemActivated
	if !active {
		action = audit.ActionItemDeactivated
	}
	uc.record(ctx, action, item.ID)

	return item, nil
}

// OpenFile returns a reader for a stored listing file or image.
func (uc *UseCase) OpenFile(name string) (io.ReadCloser, error) {
	if uc.files == nil {
		return nil, domain.ErrFileNotFound
	}
	return uc.files.Open(name)
}

func (uc *UseCase) store(upload *Upload) (string, error) {
	if upload == nil {
		return "", nil
	}
	if uc.files == nil {
		return "", domain.NewError(domain.ErrCodeInternal, "file storage unavailable")
	}
	name, err := uc.files.Save(upload.Name, upload.Content)
	if err != nil {
		return "", fmt.Errorf("storing upload: %w", err)
	}
	return name, nil
}

func (uc *UseCase) record(ctx context.Context, action, entityID string) {
	if uc.trail == nil {
		return
	}
	if err := uc.trail.Record(ctx, action, audit.EntityItem, entityID, ""); err != nil {
		uc.logger.Warn("audit record failed", zap.String("action", action), zap.Error(err))
	}
}
