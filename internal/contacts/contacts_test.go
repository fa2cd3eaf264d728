package contacts_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/contacts"
	"invoicegen/pkg/models"
)

func newTestStore(t *testing.T) *contacts.Store {
	t.Helper()
	store, err := contacts.NewStore(filepath.Join(t.TempDir(), "business_contacts.json"))
	require.NoError(t, err)
	return store
}

func testClient() models.ClientDetails {
	return models.ClientDetails{
		Name:         "Jane Smith",
		Company:      "Smith Ltd",
		AddressLine1: "2 Side Road",
		City:         "Leeds",
		Postcode:     "LS1 1AA",
	}
}

func TestUpsert(t *testing.T) {
	t.Run("key falls back to company then name", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Upsert(testClient(), ""))
		_, err := store.Get("Smith Ltd")
		require.NoError(t, err)

		personal := testClient()
		personal.Company = ""
		require.NoError(t, store.Upsert(personal, ""))
		_, err = store.Get("Jane Smith")
		require.NoError(t, err)
	})

	t.Run("explicit name overrides the fallback", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Upsert(testClient(), "main-client"))

		contact, err := store.Get("main-client")
		require.NoError(t, err)
		assert.Equal(t, "Smith Ltd", contact.Company)
	})

	t.Run("second upsert updates in place", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Upsert(testClient(), ""))

		moved := testClient()
		moved.AddressLine1 = "9 New Street"
		moved.City = "York"
		require.NoError(t, store.Upsert(moved, ""))

		all, err := store.List()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "9 New Street", all[0].AddressLine1)
		assert.Equal(t, "York", all[0].City)
	})

	t.Run("update preserves position in the list", func(t *testing.T) {
		store := newTestStore(t)

		first := testClient()
		second := models.ClientDetails{Name: "Bob Jones", AddressLine1: "3 Lane", City: "Bath", Postcode: "BA1 1AA"}
		require.NoError(t, store.Upsert(first, ""))
		require.NoError(t, store.Upsert(second, ""))

		first.City = "Hull"
		require.NoError(t, store.Upsert(first, ""))

		all, err := store.List()
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Smith Ltd", all[0].ContactName)
		assert.Equal(t, "Hull", all[0].City)
		assert.Equal(t, "Bob Jones", all[1].ContactName)
	})
}

func TestGet(t *testing.T) {
	t.Run("round-trips client details", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Upsert(testClient(), ""))

		contact, err := store.Get("Smith Ltd")
		require.NoError(t, err)
		assert.Equal(t, testClient(), contact.Client())
	})

	t.Run("unknown name returns ErrNotFound", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.Get("nobody")
		require.ErrorIs(t, err, contacts.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes a matching contact", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Upsert(testClient(), ""))

		deleted, err := store.Delete("Smith Ltd")
		require.NoError(t, err)
		assert.True(t, deleted)

		all, err := store.List()
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("reports false when nothing matches", func(t *testing.T) {
		store := newTestStore(t)
		deleted, err := store.Delete("nobody")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestCorruptRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "business_contacts.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	store, err := contacts.NewStore(path)
	require.NoError(t, err)

	all, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}
