package account

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/guruapp/backend/domain"
	"github.com/guruapp/backend/internal/infrastructure/audit"
	"github.com/guruapp/backend/pkg/password"
	"github.com/guruapp/backend/repository"
	"github.com/guruapp/backend/usecase"
)

// TokenConfig carries JWT signing settings for login tokens.
type TokenConfig struct {
	Secret     string
	Issuer     string
	SessionTTL time.Duration
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   password.Hasher
	trail    usecase.AuditRecorder
	tokens   TokenConfig
	logger   *zap.Logger
}

func New(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	hasher password.Hasher,
	trail usecase.AuditRecorder,
	tokens TokenConfig,
	logger *zap.Logger,
) *UseCase {
	if tokens.SessionTTL <= 0 {
		tokens.SessionTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		trail:    trail,
		tokens:   tokens,
		logger:   logger,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register creates a user. Buyers are approved immediately; sellers start
// unapproved and become listable only via admin approval or a verified
// listing-fee payment.
func (uc *UseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Role == "" {
		input.Role = domain.RoleBuyer
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "name, email and password are required")
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown role")
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Approved:     input.Role == domain.RoleBuyer,
	}
	return uc.users.Create(ctx, user)
}

// LoginResult carries the authenticated user plus the issued credentials.
type LoginResult struct {
	User    *domain.User    `json:"user"`
	Token   string          `json:"token"`
	Session *domain.Session `json:"session"`
}

// Login verifies credentials and issues a JWT plus a Redis-backed session.
// Unknown email and wrong password are indistinguishable to the caller.
func (uc *UseCase) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !uc.hasher.Verify(pass, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.tokens.SessionTTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := uc.signToken(user, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token, Session: session}, nil
}

// Profile returns the user behind an authenticated request.
func (uc *UseCase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// ListUsers returns every registered user, newest first, for admin review.
func (uc *UseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	return uc.users.List(ctx)
}

// Approve sets a user's approval flag on behalf of an admin.
func (uc *UseCase) Approve(ctx context.Context, userID string, approved bool) (*domain.User, error) {
	user, err := uc.users.SetApproval(ctx, userID, approved)
	if err != nil {
		return nil, err
	}

	action := audit.ActionUserApproved
	if !approved {
		action = audit.ActionUserRevoked
	}
	uc.record(ctx, action, user.ID)

	return user, nil
}

func (uc *UseCase) signToken(user *domain.User, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"iss":     uc.tokens.Issuer,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.tokens.Secret))
}

func (uc *UseCase) record(ctx context.Context, action, entityID string) {
	if uc.trail == nil {
		return
	}
	if err := uc.trail.Record(ctx, action, audit.EntityUser, entityID, ""); err != nil {
		uc.logger.Warn("audit record failed", zap.String("action", action), zap.Error(err))
	}
}
