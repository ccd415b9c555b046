// Package storetest holds the behaviour every storage.Store implementation must share.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/money"
	"github.com/mmynk/divvy/internal/storage"
)

// Run exercises a store created fresh by newStore for every subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	ctx := context.Background()

	t.Run("CreateBill assigns ID, CreatedAt and Version", func(t *testing.T) {
		store := newStore(t)
		bill := models.NewBill("Dinner", "USD")

		require.NoError(t, store.CreateBill(ctx, bill))
		require.NotEmpty(t, bill.ID)
		require.NotZero(t, bill.CreatedAt)
		require.Equal(t, int64(1), bill.Version)
	})

	t.Run("GetBill retrieves complete bill", func(t *testing.T) {
		store := newStore(t)
		original := sampleBill()
		require.NoError(t, store.CreateBill(ctx, original))

		got, err := store.GetBill(ctx, original.ID)
		require.NoError(t, err)
		requireSameBill(t, original, got)
	})

	t.Run("GetBill returns NotFoundError for nonexistent bill", func(t *testing.T) {
		store := newStore(t)
		_, err := store.GetBill(ctx, "nonexistent-id")

		var nf *models.NotFoundError
		require.ErrorAs(t, err, &nf)
		require.Equal(t, "bill", nf.Kind)
	})

	t.Run("SaveBill persists changes and bumps the version", func(t *testing.T) {
		store := newStore(t)
		bill := sampleBill()
		require.NoError(t, store.CreateBill(ctx, bill))

		loaded, err := store.GetBill(ctx, bill.ID)
		require.NoError(t, err)
		loaded.Title = "Lunch"
		loaded.Items = loaded.Items[:1]
		loaded.Items[0].Owners = []string{"p2"}
		loaded.People = loaded.People[1:]
		loaded.PaidBy = nil
		loaded.Status = models.StatusFinalized
		require.NoError(t, store.SaveBill(ctx, loaded))
		require.Equal(t, int64(2), loaded.Version)

		got, err := store.GetBill(ctx, bill.ID)
		require.NoError(t, err)
		requireSameBill(t, loaded, got)
	})

	t.Run("SaveBill rejects a stale version", func(t *testing.T) {
		store := newStore(t)
		bill := sampleBill()
		require.NoError(t, store.CreateBill(ctx, bill))

		first, err := store.GetBill(ctx, bill.ID)
		require.NoError(t, err)
		second, err := store.GetBill(ctx, bill.ID)
		require.NoError(t, err)

		first.Title = "First"
		require.NoError(t, store.SaveBill(ctx, first))

		second.Title = "Second"
		require.ErrorIs(t, store.SaveBill(ctx, second), storage.ErrConflict)

		got, err := store.GetBill(ctx, bill.ID)
		require.NoError(t, err)
		require.Equal(t, "First", got.Title)
	})

	t.Run("SaveBill on a missing bill", func(t *testing.T) {
		store := newStore(t)
		bill := sampleBill()
		bill.ID = "missing"

		var nf *models.NotFoundError
		require.ErrorAs(t, store.SaveBill(ctx, bill), &nf)
	})

	t.Run("concurrent saves of one snapshot admit exactly one", func(t *testing.T) {
		store := newStore(t)
		bill := sampleBill()
		require.NoError(t, store.CreateBill(ctx, bill))

		const writers = 8
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			snapshot, err := store.GetBill(ctx, bill.ID)
			require.NoError(t, err)
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- store.SaveBill(ctx, snapshot)
			}()
		}
		wg.Wait()
		close(errs)

		saved := 0
		for err := range errs {
			if err == nil {
				saved++
				continue
			}
			require.ErrorIs(t, err, storage.ErrConflict)
		}
		require.Equal(t, 1, saved)
	})

	t.Run("DeleteBill removes the bill", func(t *testing.T) {
		store := newStore(t)
		bill := sampleBill()
		require.NoError(t, store.CreateBill(ctx, bill))

		require.NoError(t, store.DeleteBill(ctx, bill.ID))

		var nf *models.NotFoundError
		_, err := store.GetBill(ctx, bill.ID)
		require.ErrorAs(t, err, &nf)
		require.ErrorAs(t, store.DeleteBill(ctx, bill.ID), &nf)
	})

	t.Run("ListBills returns newest first", func(t *testing.T) {
		store := newStore(t)
		older := sampleBill()
		older.CreatedAt = 1000
		require.NoError(t, store.CreateBill(ctx, older))
		newer := models.NewBill("Coffee", "USD")
		newer.CreatedAt = 2000
		require.NoError(t, store.CreateBill(ctx, newer))

		summaries, err := store.ListBills(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 2)

		require.Equal(t, newer.ID, summaries[0].ID)
		require.Equal(t, 0, summaries[0].ItemCount)
		require.Equal(t, money.New(0, "USD"), summaries[0].ItemsTotal)

		require.Equal(t, older.ID, summaries[1].ID)
		require.Equal(t, "Dinner", summaries[1].Title)
		require.Equal(t, models.StatusOpen, summaries[1].Status)
		require.Equal(t, 2, summaries[1].ItemCount)
		require.Equal(t, 2, summaries[1].PeopleCount)
		require.Equal(t, money.New(2900, "USD"), summaries[1].ItemsTotal)
	})

	t.Run("ListBills on an empty store", func(t *testing.T) {
		store := newStore(t)
		summaries, err := store.ListBills(ctx)
		require.NoError(t, err)
		require.Empty(t, summaries)
	})
}

func sampleBill() *models.Bill {
	bill := models.NewBill("Dinner", "USD")
	bill.TaxRate = decimal.RequireFromString("8.875")
	bill.TipRate = decimal.RequireFromString("18")
	bill.PaymentHandle = "collector"
	bill.People = []models.Person{
		{ID: "p2", Name: "Bob"},
		{ID: "p1", Name: "Alice", PaymentHandle: "alice"},
	}
	bill.Items = []models.Item{
		{ID: "i-steak", Name: "Steak", UnitPrice: money.New(2000, "USD"), Quantity: 1, Owners: []string{"p1", "p2"}},
		{ID: "i-beer", Name: "Beer", UnitPrice: money.New(450, "USD"), Quantity: 2, Owners: []string{}},
	}
	bill.PaidBy = []string{"p1"}
	return bill
}

// requireSameBill compares field by field; decimals compare by value.
func requireSameBill(t *testing.T, want, got *models.Bill) {
	t.Helper()
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.Title, got.Title)
	require.Equal(t, want.Currency, got.Currency)
	require.True(t, want.TaxRate.Equal(got.TaxRate), "tax rate %s != %s", want.TaxRate, got.TaxRate)
	require.True(t, want.TipRate.Equal(got.TipRate), "tip rate %s != %s", want.TipRate, got.TipRate)
	require.Equal(t, want.PaymentHandle, got.PaymentHandle)
	require.Equal(t, want.Status, got.Status)
	require.Equal(t, want.Version, got.Version)
	require.Equal(t, want.CreatedAt, got.CreatedAt)
	require.Equal(t, want.People, got.People)
	require.Equal(t, want.Items, got.Items)
	require.ElementsMatch(t, want.PaidBy, got.PaidBy)
}
