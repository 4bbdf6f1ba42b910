package listing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guruapp/backend/domain"
	"github.com/guruapp/backend/repository/memory"
)

func newUseCase(t *testing.T) (*UseCase, *memory.UserStore, *memory.ItemStore) {
	t.Helper()
	users := memory.NewUserStore()
	items := memory.NewItemStore()
	return New(users, items, nil, nil, nil), users, items
}

func seedUser(t *testing.T, users *memory.UserStore, role string, approved bool) *domain.User {
	t.Helper()
	user, err := users.Create(context.Background(), &domain.User{
		Name:  "U",
		Email: role + "-" + t.Name() + "@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	if approved {
		user, err = users.SetApproval(context.Background(), user.ID, true)
		require.NoError(t, err)
	}
	return user
}

func TestCreateStartsUnpaidAndInactive(t *testing.T) {
	uc, users, _ := newUseCase(t)
	seller := seedUser(t, users, domain.RoleSeller, true)

	item, err := uc.Create(context.Background(), CreateInput{
		OwnerID: seller.ID,
		Title:   "Widget",
		Price:   100,
		Kind:    domain.KindPhysical,
	})
	require.NoError(t, err)
	assert.False(t, item.Paid)
	assert.False(t, item.Active)
}

func TestCreateUnknownOwner(t *testing.T) {
	uc, _, _ := newUseCase(t)

	_, err := uc.Create(context.Background(), CreateInput{
		OwnerID: "nope",
		Title:   "Widget",
		Kind:    domain.KindDigital,
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreateRejectsBuyers(t *testing.T) {
	uc, users, _ := newUseCase(t)
	buyer := seedUser(t, users, domain.RoleBuyer, true)

	_, err := uc.Create(context.Background(), CreateInput{
		OwnerID: buyer.ID,
		Title:   "Widget",
		Kind:    domain.KindDigital,
	})
	require.ErrorIs(t, err, domain.ErrNotSeller)
}

func TestCreateRejectsUnapprovedSellers(t *testing.T) {
	uc, users, _ := newUseCase(t)
	seller := seedUser(t, users, domain.RoleSeller, false)

	_, err := uc.Create(context.Background(), CreateInput{
		OwnerID: seller.ID,
		Title:   "Widget",
		Kind:    domain.KindDigital,
	})
	require.ErrorIs(t, err, domain.ErrSellerNotApproved)
}

func TestCreateValidation(t *testing.T) {
	uc, users, _ := newUseCase(t)
	seller := seedUser(t, users, domain.RoleSeller, true)
	ctx := context.Background()

	_, err := uc.Create(ctx, CreateInput{OwnerID: seller.ID, Title: "", Kind: domain.KindDigital})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid), "empty title")

	_, err = uc.Create(ctx, CreateInput{OwnerID: seller.ID, Title: "W", Price: -1, Kind: domain.KindDigital})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid), "negative price")

	_, err = uc.Create(ctx, CreateInput{OwnerID: seller.ID, Title: "W", Kind: "hologram"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid), "unknown kind")
}

func TestListActiveFiltersInactive(t *testing.T) {
	uc, users, items := newUseCase(t)
	seller := seedUser(t, users, domain.RoleSeller, true)
	ctx := context.Background()

	hidden, err := uc.Create(ctx, CreateInput{OwnerID: seller.ID, Title: "Hidden", Kind: domain.KindDigital})
	require.NoError(t, err)
	visible, err := uc.Create(ctx, CreateInput{OwnerID: seller.ID, Title: "Visible", Kind: domain.KindDigital})
	require.NoError(t, err)

	_, err = items.SetPaidAndActive(ctx, visible.ID, true)
	require.NoError(t, err)

	active, err := uc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, visible.ID, active[0].ID)
	assert.NotEqual(t, hidden.ID, active[0].ID)
}

func TestActivateForcesPaidDeactivateKeepsIt(t *testing.T) {
	uc, users, _ := newUseCase(t)
	seller := seedUser(t, users, domain.RoleSeller, true)
	ctx := context.Background()

	item, err := uc.Create(ctx, CreateInput{OwnerID: seller.ID, Title: "W", Kind: domain.KindService})
	require.NoError(t, err)

	activated, err := uc.Activate(ctx, item.ID, true)
	require.NoError(t, err)
	assert.True(t, activated.Active)
	assert.True(t, activated.Paid)

	deactivated, err := uc.Activate(ctx, item.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)
	assert.True(t, deactivated.Paid, "deactivation must not revoke paid")

	reactivated, err := uc.Activate(ctx, item.ID, true)
	require.NoError(t, err)
	assert.True(t, reactivated.Active)
	assert.True(t, reactivated.Paid)
}

func TestActivateUnknownItem(t *testing.T) {
	uc, _, _ := newUseCase(t)

	_, err := uc.Activate(context.Background(), "nope", true)
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}
