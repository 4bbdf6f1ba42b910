package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guruapp/backend/domain"
	"github.com/guruapp/backend/repository/memory"
)

type fixture struct {
	uc    *UseCase
	users *memory.UserStore
	items *memory.ItemStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := memory.NewUserStore()
	items := memory.NewItemStore()
	payments := memory.NewPaymentStore()
	return &fixture{
		uc:    New(payments, users, items, nil),
		users: users,
		items: items,
	}
}

func (f *fixture) seedSellerWithItem(t *testing.T) (*domain.User, *domain.Item) {
	t.Helper()
	ctx := context.Background()
	seller, err := f.users.Create(ctx, &domain.User{
		Name:  "Seller",
		Email: "seller-" + t.Name() + "@example.com",
		Role:  domain.RoleSeller,
	})
	require.NoError(t, err)
	item, err := f.items.Create(ctx, &domain.Item{OwnerID: seller.ID, Title: "W", Kind: domain.KindDigital})
	require.NoError(t, err)
	return seller, item
}

func TestSubmitStartsPending(t *testing.T) {
	f := newFixture(t)
	seller, item := f.seedSellerWithItem(t)

	claim, err := f.uc.Submit(context.Background(), SubmitInput{
		UserID:          seller.ID,
		ItemID:          item.ID,
		Amount:          500,
		TillNumber:      "TILL1",
		TransactionCode: "ABC123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, claim.Status)
	assert.Equal(t, domain.PaymentKindListingFee, claim.Kind, "kind defaults to listing_fee")
	assert.Nil(t, claim.DecidedAt)
}

func TestSubmitUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Submit(context.Background(), SubmitInput{
		UserID:          "nope",
		Amount:          500,
		TillNumber:      "TILL1",
		TransactionCode: "ABC123",
		Kind:            domain.PaymentKindSubscription,
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSubmitListingFeeRequiresItem(t *testing.T) {
	f := newFixture(t)
	seller, _ := f.seedSellerWithItem(t)

	_, err := f.uc.Submit(context.Background(), SubmitInput{
		UserID:          seller.ID,
		Amount:          500,
		TillNumber:      "TILL1",
		TransactionCode: "ABC123",
		Kind:            domain.PaymentKindListingFee,
	})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestSubmitListingFeeRejectsForeignItem(t *testing.T) {
	f := newFixture(t)
	_, item := f.seedSellerWithItem(t)
	ctx := context.Background()

	stranger, err := f.users.Create(ctx, &domain.User{
		Name: "Stranger", Email: "stranger@example.com", Role: domain.RoleSeller,
	})
	require.NoError(t, err)

	_, err = f.uc.Submit(ctx, SubmitInput{
		UserID:          stranger.ID,
		ItemID:          item.ID,
		Amount:          500,
		TillNumber:      "TILL1",
		TransactionCode: "ABC123",
	})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture(t)
	seller, item := f.seedSellerWithItem(t)
	ctx := context.Background()

	_, err := f.uc.Submit(ctx, SubmitInput{
		UserID: seller.ID, ItemID: item.ID, Amount: 0,
		TillNumber: "TILL1", TransactionCode: "ABC123",
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid), "zero amount")

	_, err = f.uc.Submit(ctx, SubmitInput{
		UserID: seller.ID, ItemID: item.ID, Amount: 500,
		TillNumber: "", TransactionCode: "ABC123",
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid), "missing till")

	_, err = f.uc.Submit(ctx, SubmitInput{
		UserID: seller.ID, ItemID: item.ID, Amount: 500,
		TillNumber: "TILL1", TransactionCode: "ABC123", Kind: "bribe",
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid), "unknown kind")
}

func TestListAllNewestFirst(t *testing.T) {
	f := newFixture(t)
	seller, item := f.seedSellerWithItem(t)
	ctx := context.Background()

	first, err := f.uc.Submit(ctx, SubmitInput{
		UserID: seller.ID, ItemID: item.ID, Amount: 100,
		TillNumber: "TILL1", TransactionCode: "AAA",
	})
	require.NoError(t, err)
	second, err := f.uc.Submit(ctx, SubmitInput{
		UserID: seller.ID, ItemID: item.ID, Amount: 200,
		TillNumber: "TILL1", TransactionCode: "BBB",
	})
	require.NoError(t, err)

	claims, err := f.uc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, claims, 2)
	ids := []string{claims[0].ID, claims[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
	assert.False(t, claims[0].CreatedAt.Before(claims[1].CreatedAt))
}
