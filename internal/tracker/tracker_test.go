package tracker_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/tracker"
)

func newTestStore(t *testing.T) (*tracker.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoice_tracker.json")
	store, err := tracker.NewStore(path)
	require.NoError(t, err)
	return store, path
}

func TestNextInvoiceNumber(t *testing.T) {
	t.Run("fresh store starts at INV1001 with no gaps", func(t *testing.T) {
		store, _ := newTestStore(t)

		for i := 1; i <= 5; i++ {
			number, err := store.NextInvoiceNumber()
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("INV%d", 1000+i), number)
		}
	})

	t.Run("numbering survives store re-instantiation", func(t *testing.T) {
		store, path := newTestStore(t)

		for i := 0; i < 2; i++ {
			_, err := store.NextInvoiceNumber()
			require.NoError(t, err)
		}

		reopened, err := tracker.NewStore(path)
		require.NoError(t, err)

		number, err := reopened.NextInvoiceNumber()
		require.NoError(t, err)
		assert.Equal(t, "INV1003", number)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "deeper", "tracker.json")
		_, err := tracker.NewStore(path)
		require.NoError(t, err)
		assert.FileExists(t, path)
	})
}

func TestAppendRecord(t *testing.T) {
	t.Run("preserves insertion order and exact fields", func(t *testing.T) {
		store, _ := newTestStore(t)

		records := []tracker.Record{
			{InvoiceNumber: "INV1001", Client: "Smith Ltd", Amount: "150.00", Date: "2025-06-01", FilePath: "invoices/INV1001_Smith_Ltd.pdf"},
			{InvoiceNumber: "INV1002", Client: "Jane Smith", Amount: "25.50", Date: "2025-06-02", FilePath: "invoices/INV1002_Jane_Smith.pdf"},
		}
		for _, rec := range records {
			require.NoError(t, store.AppendRecord(rec))
		}

		got, err := store.Records()
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("amount is stored as exact decimal text", func(t *testing.T) {
		store, path := newTestStore(t)

		require.NoError(t, store.AppendRecord(tracker.Record{
			InvoiceNumber: "INV1001",
			Client:        "Smith Ltd",
			Amount:        "150.00",
			Date:          "2025-06-01",
			FilePath:      "invoices/INV1001_Smith_Ltd.pdf",
		}))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)

		var doc struct {
			Invoices []map[string]json.RawMessage `json:"invoices"`
		}
		require.NoError(t, json.Unmarshal(raw, &doc))
		require.Len(t, doc.Invoices, 1)
		assert.JSONEq(t, `"150.00"`, string(doc.Invoices[0]["amount"]))
	})

	t.Run("does not deduplicate by invoice number", func(t *testing.T) {
		store, _ := newTestStore(t)

		rec := tracker.Record{InvoiceNumber: "INV1001", Client: "Smith Ltd", Amount: "10.00", Date: "2025-06-01", FilePath: "a.pdf"}
		require.NoError(t, store.AppendRecord(rec))
		require.NoError(t, store.AppendRecord(rec))

		got, err := store.Records()
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestCorruptRecovery(t *testing.T) {
	t.Run("invalid JSON reinitializes to the default document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invoice_tracker.json")
		require.NoError(t, os.WriteFile(path, []byte("{not valid json"), 0o644))

		store, err := tracker.NewStore(path)
		require.NoError(t, err)

		got, err := store.Records()
		require.NoError(t, err)
		assert.Empty(t, got)

		number, err := store.NextInvoiceNumber()
		require.NoError(t, err)
		assert.Equal(t, "INV1001", number)
	})

	t.Run("empty file reinitializes to the default document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invoice_tracker.json")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		store, err := tracker.NewStore(path)
		require.NoError(t, err)

		number, err := store.NextInvoiceNumber()
		require.NoError(t, err)
		assert.Equal(t, "INV1001", number)
	})
}
