package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"), "audit")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Minute)
	for i, action := range []string{ActionPaymentVerified, ActionSellerApproved, ActionItemActivated} {
		require.NoError(t, store.Append(Entry{
			Action:    action,
			Entity:    EntityPayment,
			EntityID:  "p1",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, ActionItemActivated, entries[0].Action, "newest first")
	assert.Equal(t, ActionPaymentVerified, entries[2].Action)
}

func TestRecentHonoursLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(Entry{Action: ActionUserApproved, Entity: EntityUser, EntityID: "u1"}))
	}

	entries, err := store.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAppendFillsDefaults(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Append(Entry{Action: ActionItemDeactivated, Entity: EntityItem, EntityID: "i1"}))

	entries, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.Equal(t, "admin", entries[0].Actor)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestCleanupRemovesOldEntries(t *testing.T) {
	store := openTestStore(t)

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, store.Append(Entry{Action: ActionPaymentRejected, Entity: EntityPayment, EntityID: "p-old", Timestamp: old}))
	require.NoError(t, store.Append(Entry{Action: ActionPaymentVerified, Entity: EntityPayment, EntityID: "p-new"}))

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "p-new", entries[0].EntityID)
}
