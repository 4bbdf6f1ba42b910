package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guruapp/backend/domain"
)

func TestPaymentStoreCreateForcesPending(t *testing.T) {
	store := NewPaymentStore()

	claim, err := store.Create(context.Background(), &domain.Payment{
		UserID: "u1",
		Amount: 500,
		Status: domain.PaymentVerified, // must be ignored
		Kind:   domain.PaymentKindListingFee,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, claim.Status)
}

func TestPaymentStoreDecideIsSingleShot(t *testing.T) {
	store := NewPaymentStore()
	ctx := context.Background()

	claim, err := store.Create(ctx, &domain.Payment{UserID: "u1", Amount: 500, Kind: domain.PaymentKindListingFee})
	require.NoError(t, err)

	decided, err := store.Decide(ctx, claim.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentVerified, decided.Status)
	require.NotNil(t, decided.DecidedAt)

	_, err = store.Decide(ctx, claim.ID, false)
	require.ErrorIs(t, err, domain.ErrPaymentDecided)

	got, err := store.GetByID(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentVerified, got.Status)
}

func TestPaymentStoreDecideUnknown(t *testing.T) {
	store := NewPaymentStore()

	_, err := store.Decide(context.Background(), "missing", true)
	require.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestPaymentStoreConcurrentDecides(t *testing.T) {
	store := NewPaymentStore()
	ctx := context.Background()

	claim, err := store.Create(ctx, &domain.Payment{UserID: "u1", Amount: 500, Kind: domain.PaymentKindListingFee})
	require.NoError(t, err)

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Decide(ctx, claim.ID, true)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, domain.ErrPaymentDecided)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	_, err := store.Create(ctx, &domain.User{Name: "A", Email: "a@example.com", Role: domain.RoleBuyer})
	require.NoError(t, err)

	_, err = store.Create(ctx, &domain.User{Name: "B", Email: "A@Example.com", Role: domain.RoleBuyer})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestItemStoreSetPaidAndActive(t *testing.T) {
	store := NewItemStore()
	ctx := context.Background()

	item, err := store.Create(ctx, &domain.Item{
		OwnerID: "u1",
		Title:   "W",
		Kind:    domain.KindDigital,
		Paid:    true, // must be ignored
		Active:  true, // must be ignored
	})
	require.NoError(t, err)
	assert.False(t, item.Paid)
	assert.False(t, item.Active)

	activated, err := store.SetPaidAndActive(ctx, item.ID, true)
	require.NoError(t, err)
	assert.True(t, activated.Paid)
	assert.True(t, activated.Active)

	deactivated, err := store.SetPaidAndActive(ctx, item.ID, false)
	require.NoError(t, err)
	assert.True(t, deactivated.Paid)
	assert.False(t, deactivated.Active)
}
