package verification

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guruapp/backend/domain"
	"github.com/guruapp/backend/repository"
	"github.com/guruapp/backend/repository/memory"
)

type recordedEntry struct {
	Action   string
	Entity   string
	EntityID string
}

type trailStub struct {
	mu      sync.Mutex
	entries []recordedEntry
}

func (t *trailStub) Record(_ context.Context, action, entity, entityID, _ string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, recordedEntry{Action: action, Entity: entity, EntityID: entityID})
	return nil
}

// failingUsers makes claimant resolution fail to exercise the swallowed
// cascade path.
type failingUsers struct {
	repository.UserRepository
}

func (failingUsers) GetByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

type fixture struct {
	users    *memory.UserStore
	items    *memory.ItemStore
	payments *memory.PaymentStore
	trail    *trailStub
	workflow *Workflow
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    memory.NewUserStore(),
		items:    memory.NewItemStore(),
		payments: memory.NewPaymentStore(),
		trail:    &trailStub{},
	}
	f.workflow = New(f.payments, f.users, f.items, f.trail, nil)
	return f
}

func (f *fixture) seedSeller(t *testing.T, approved bool) *domain.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), &domain.User{
		Name:  "Seller",
		Email: "seller-" + t.Name() + "@example.com",
		Role:  domain.RoleSeller,
	})
	require.NoError(t, err)
	if approved {
		user, err = f.users.SetApproval(context.Background(), user.ID, true)
		require.NoError(t, err)
	}
	return user
}

func (f *fixture) seedItem(t *testing.T, ownerID string) *domain.Item {
	t.Helper()
	item, err := f.items.Create(context.Background(), &domain.Item{
		OwnerID: ownerID,
		Title:   "Widget",
		Price:   500,
		Kind:    domain.KindDigital,
	})
	require.NoError(t, err)
	return item
}

func (f *fixture) seedClaim(t *testing.T, userID, itemID, kind string) *domain.Payment {
	t.Helper()
	claim, err := f.payments.Create(context.Background(), &domain.Payment{
		UserID:          userID,
		ItemID:          itemID,
		Amount:          500,
		TillNumber:      "TILL1",
		TransactionCode: "ABC123",
		Kind:            kind,
	})
	require.NoError(t, err)
	return claim
}

func TestDecideVerifiesListingFeeAndCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seller := f.seedSeller(t, false)
	other, err := f.users.Create(ctx, &domain.User{Name: "Other", Email: "other@example.com", Role: domain.RoleSeller})
	require.NoError(t, err)
	item := f.seedItem(t, seller.ID)
	claim := f.seedClaim(t, seller.ID, item.ID, domain.PaymentKindListingFee)

	decided, err := f.workflow.Decide(ctx, claim.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentVerified, decided.Status)
	require.NotNil(t, decided.DecidedAt)

	approved, err := f.users.GetByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved, "verified listing fee must approve the claimant seller")

	untouched, err := f.users.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, untouched.Approved, "other sellers must not be affected")

	activated, err := f.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, activated.Active)
	assert.True(t, activated.Paid, "active implies paid")
}

func TestDecideRejectMutatesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seller := f.seedSeller(t, false)
	item := f.seedItem(t, seller.ID)
	claim := f.seedClaim(t, seller.ID, item.ID, domain.PaymentKindListingFee)

	decided, err := f.workflow.Decide(ctx, claim.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRejected, decided.Status)

	user, err := f.users.GetByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.False(t, user.Approved)

	got, err := f.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.False(t, got.Paid)
}

func TestDecideUnknownClaim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seller := f.seedSeller(t, false)
	item := f.seedItem(t, seller.ID)

	_, err := f.workflow.Decide(ctx, "no-such-claim", true)
	require.ErrorIs(t, err, domain.ErrPaymentNotFound)

	user, err := f.users.GetByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.False(t, user.Approved)

	got, err := f.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Empty(t, f.trail.entries, "nothing should be audited for a missing claim")
}

func TestDecideTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seller := f.seedSeller(t, false)
	item := f.seedItem(t, seller.ID)
	claim := f.seedClaim(t, seller.ID, item.ID, domain.PaymentKindListingFee)

	_, err := f.workflow.Decide(ctx, claim.ID, false)
	require.NoError(t, err)

	_, err = f.workflow.Decide(ctx, claim.ID, true)
	require.ErrorIs(t, err, domain.ErrPaymentDecided)

	got, err := f.payments.GetByID(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRejected, got.Status, "terminal status must not change")

	user, err := f.users.GetByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.False(t, user.Approved, "the rejected-then-reverified claim must not cascade")
}

func TestDecideConcurrentSingleWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seller := f.seedSeller(t, false)
	item := f.seedItem(t, seller.ID)
	claim := f.seedClaim(t, seller.ID, item.ID, domain.PaymentKindListingFee)

	const attempts = 16
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(verified bool) {
			defer wg.Done()
			_, err := f.workflow.Decide(ctx, claim.ID, verified)
			errs <- err
		}(i%2 == 0)
	}
	wg.Wait()
	close(errs)

	var wins, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case domain.IsDomainError(err, domain.ErrCodeConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent decision may succeed")
	assert.Equal(t, attempts-1, conflicts)
}

func TestDecideVerifiedNonListingFeeSkipsCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seller := f.seedSeller(t, false)
	claim := f.seedClaim(t, seller.ID, "", domain.PaymentKindSubscription)

	decided, err := f.workflow.Decide(ctx, claim.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentVerified, decided.Status)

	user, err := f.users.GetByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.False(t, user.Approved, "subscription claims must not approve sellers")
}

func TestDecideCascadeSwallowsClaimantResolutionFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seller := f.seedSeller(t, false)
	item := f.seedItem(t, seller.ID)
	claim := f.seedClaim(t, seller.ID, item.ID, domain.PaymentKindListingFee)

	workflow := New(f.payments, failingUsers{}, f.items, f.trail, nil)
	decided, err := workflow.Decide(ctx, claim.ID, true)
	require.NoError(t, err, "claim state is authoritative even when the cascade cannot run")
	assert.Equal(t, domain.PaymentVerified, decided.Status)

	got, err := f.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, got.Active, "cascade stops when the claimant cannot be resolved")
}

func TestDecideApprovedSellerActivatesItemOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seller := f.seedSeller(t, true)
	item := f.seedItem(t, seller.ID)
	claim := f.seedClaim(t, seller.ID, item.ID, domain.PaymentKindListingFee)

	_, err := f.workflow.Decide(ctx, claim.ID, true)
	require.NoError(t, err)

	got, err := f.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)

	for _, entry := range f.trail.entries {
		assert.NotEqual(t, "seller_approved", entry.Action, "already approved sellers are not re-approved")
	}
}

func TestDecideAuditsDecision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seller := f.seedSeller(t, false)
	item := f.seedItem(t, seller.ID)
	claim := f.seedClaim(t, seller.ID, item.ID, domain.PaymentKindListingFee)

	_, err := f.workflow.Decide(ctx, claim.ID, true)
	require.NoError(t, err)

	actions := make([]string, 0, len(f.trail.entries))
	for _, entry := range f.trail.entries {
		actions = append(actions, entry.Action)
	}
	assert.Contains(t, actions, "payment_verified")
	assert.Contains(t, actions, "seller_approved")
	assert.Contains(t, actions, "item_activated")
}
