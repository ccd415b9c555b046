package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/money"
	"github.com/mmynk/divvy/internal/storage"
	"github.com/mmynk/divvy/internal/storage/storetest"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		return newTestStore(t)
	})
}

func TestNew_CreatesParentDirectory(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "nested", "dir", "bills.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestReopenKeepsBills(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "bills.db")

	store, err := New(dbPath)
	require.NoError(t, err)
	bill := models.NewBill("Dinner", "CLP")
	bill.People = []models.Person{{ID: "p1", Name: "Alice"}}
	bill.Items = []models.Item{
		{Name: "Completo", UnitPrice: money.New(3500, "CLP"), Quantity: 2, Owners: []string{"p1"}},
	}
	require.NoError(t, store.CreateBill(ctx, bill))
	require.NotEmpty(t, bill.Items[0].ID)
	require.NoError(t, store.Close())

	store, err = New(dbPath)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	require.Equal(t, money.Currency("CLP"), got.Currency)
	require.Equal(t, money.New(3500, "CLP"), got.Items[0].UnitPrice)
	require.Equal(t, []string{"p1"}, got.Items[0].Owners)
}

func TestDeleteBill_CascadesChildren(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	bill := models.NewBill("Dinner", "USD")
	bill.People = []models.Person{{ID: "p1", Name: "Alice"}}
	bill.Items = []models.Item{{ID: "i1", Name: "Soup", UnitPrice: money.New(500, "USD"), Quantity: 1, Owners: []string{"p1"}}}
	bill.PaidBy = []string{"p1"}
	require.NoError(t, store.CreateBill(ctx, bill))
	require.NoError(t, store.DeleteBill(ctx, bill.ID))

	for _, table := range []string{"people", "items", "item_owners", "payments"} {
		var n int
		require.NoError(t, store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
		require.Zero(t, n, table)
	}
}
