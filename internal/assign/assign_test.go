package assign

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/money"
)

func newTestBill(t *testing.T) (*models.Bill, *models.Person, *models.Person, string) {
	t.Helper()
	bill := models.NewBill("Dinner", "USD")
	bill.ID = "bill-1"

	alice, err := AddPerson(bill, "Alice")
	require.NoError(t, err)
	aliceCopy := *alice
	bob, err := AddPerson(bill, "Bob")
	require.NoError(t, err)
	bobCopy := *bob

	item, err := AddItem(bill, "Pizza", money.New(2000, "USD"), 1)
	require.NoError(t, err)
	return bill, &aliceCopy, &bobCopy, item.ID
}

func TestAddItem(t *testing.T) {
	tests := []struct {
		name      string
		itemName  string
		price     money.Money
		quantity  int64
		wantField string
	}{
		{name: "empty name", itemName: "", price: money.New(100, "USD"), quantity: 1, wantField: "name"},
		{name: "blank name", itemName: "   ", price: money.New(100, "USD"), quantity: 1, wantField: "name"},
		{name: "negative price", itemName: "Soda", price: money.New(-1, "USD"), quantity: 1, wantField: "unit_price"},
		{name: "zero quantity", itemName: "Soda", price: money.New(100, "USD"), quantity: 0, wantField: "quantity"},
		{name: "overflowing line total", itemName: "Soda", price: money.New(1<<62, "USD"), quantity: 4, wantField: "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill := models.NewBill("Dinner", "USD")
			_, err := AddItem(bill, tt.itemName, tt.price, tt.quantity)

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.wantField, verr.Field)
			require.Empty(t, bill.Items)
		})
	}

	t.Run("currency mismatch", func(t *testing.T) {
		bill := models.NewBill("Dinner", "USD")
		_, err := AddItem(bill, "Soda", money.New(100, "EUR"), 1)

		var mismatch *money.CurrencyMismatchError
		require.ErrorAs(t, err, &mismatch)
	})

	t.Run("bill total overflow", func(t *testing.T) {
		bill := models.NewBill("Dinner", "USD")
		half := money.New(math.MaxInt64/2, "USD")
		_, err := AddItem(bill, "Yacht", half, 1)
		require.NoError(t, err)
		_, err = AddItem(bill, "Jet", half, 1)
		require.NoError(t, err)

		_, err = AddItem(bill, "Island", half, 1)
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "unit_price", verr.Field)
		require.Len(t, bill.Items, 2)

		total, err := bill.ItemsTotal()
		require.NoError(t, err)
		require.Equal(t, int64(math.MaxInt64-1), total.Amount)
	})

	t.Run("new item is unassigned", func(t *testing.T) {
		bill := models.NewBill("Dinner", "USD")
		item, err := AddItem(bill, "  Soda ", money.New(250, "USD"), 2)
		require.NoError(t, err)
		require.NotEmpty(t, item.ID)
		require.Equal(t, "Soda", item.Name)
		require.Empty(t, item.Owners)
		require.NotNil(t, item.Owners)
	})
}

func TestAssignItem(t *testing.T) {
	bill, alice, bob, itemID := newTestBill(t)

	require.NoError(t, AssignItem(bill, itemID, bob.ID))
	require.NoError(t, AssignItem(bill, itemID, alice.ID))
	require.NoError(t, AssignItem(bill, itemID, alice.ID))

	owners := bill.FindItem(itemID).Owners
	require.Len(t, owners, 2)
	require.IsIncreasing(t, owners)

	var nf *models.NotFoundError
	require.ErrorAs(t, AssignItem(bill, "missing", alice.ID), &nf)
	require.Equal(t, "item", nf.Kind)
	require.ErrorAs(t, AssignItem(bill, itemID, "missing"), &nf)
	require.Equal(t, "person", nf.Kind)
}

func TestAssignItem_FinalizedBillUnchanged(t *testing.T) {
	bill, alice, _, itemID := newTestBill(t)
	require.NoError(t, Finalize(bill))
	before := bill.Clone()

	err := AssignItem(bill, itemID, alice.ID)

	var serr *models.InvalidStateError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, models.StatusFinalized, serr.Status)
	require.Equal(t, before, bill)
}

func TestUnassignItem(t *testing.T) {
	bill, alice, bob, itemID := newTestBill(t)
	require.NoError(t, AssignItem(bill, itemID, alice.ID))

	require.NoError(t, UnassignItem(bill, itemID, alice.ID))
	require.NoError(t, UnassignItem(bill, itemID, alice.ID))
	require.NoError(t, UnassignItem(bill, itemID, bob.ID))
	require.Empty(t, bill.FindItem(itemID).Owners)

	var nf *models.NotFoundError
	require.ErrorAs(t, UnassignItem(bill, "missing", alice.ID), &nf)
}

func TestSelfAssign_Toggles(t *testing.T) {
	bill, alice, _, itemID := newTestBill(t)
	before := bill.Clone()

	owns, err := SelfAssign(bill, itemID, alice.ID)
	require.NoError(t, err)
	require.True(t, owns)
	require.True(t, bill.FindItem(itemID).HasOwner(alice.ID))

	owns, err = SelfAssign(bill, itemID, alice.ID)
	require.NoError(t, err)
	require.False(t, owns)
	require.Equal(t, before, bill)
}

func TestJoinBill(t *testing.T) {
	bill, _, _, _ := newTestBill(t)

	carol, err := JoinBill(bill, " Carol ")
	require.NoError(t, err)
	require.Equal(t, "Carol", carol.Name)

	_, err = JoinBill(bill, "alice")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "name", verr.Field)
	require.Len(t, bill.People, 3)

	_, err = AddPerson(bill, "")
	require.ErrorAs(t, err, &verr)
}

func TestPersonIDsFollowJoinOrder(t *testing.T) {
	bill := models.NewBill("Dinner", "USD")
	var ids []string
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		p, err := AddPerson(bill, name)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	require.IsIncreasing(t, ids)
}

func TestRemovePerson_Cascades(t *testing.T) {
	bill, alice, bob, itemID := newTestBill(t)
	require.NoError(t, AssignItem(bill, itemID, alice.ID))
	require.NoError(t, AssignItem(bill, itemID, bob.ID))
	require.NoError(t, MarkPaid(bill, alice.ID, true))

	require.NoError(t, RemovePerson(bill, alice.ID))

	require.Nil(t, bill.FindPerson(alice.ID))
	require.Equal(t, []string{bob.ID}, bill.FindItem(itemID).Owners)
	require.False(t, bill.HasPaid(alice.ID))

	var nf *models.NotFoundError
	require.ErrorAs(t, RemovePerson(bill, alice.ID), &nf)
}

func TestRemoveItem(t *testing.T) {
	bill, _, _, itemID := newTestBill(t)

	require.NoError(t, RemoveItem(bill, itemID))
	require.Empty(t, bill.Items)

	var nf *models.NotFoundError
	require.ErrorAs(t, RemoveItem(bill, itemID), &nf)
}

func TestSetRates(t *testing.T) {
	tests := []struct {
		name      string
		tax       string
		tip       string
		wantField string
	}{
		{name: "valid", tax: "8.875", tip: "18"},
		{name: "zero", tax: "0", tip: "0"},
		{name: "negative tax", tax: "-1", tip: "10", wantField: "tax_rate"},
		{name: "negative tip", tax: "10", tip: "-0.5", wantField: "tip_rate"},
		{name: "too precise", tax: "10.1234567", tip: "0", wantField: "tax_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill := models.NewBill("Dinner", "USD")
			tax := decimal.RequireFromString(tt.tax)
			tip := decimal.RequireFromString(tt.tip)

			err := SetRates(bill, tax, tip)
			if tt.wantField == "" {
				require.NoError(t, err)
				require.True(t, bill.TaxRate.Equal(tax))
				require.True(t, bill.TipRate.Equal(tip))
				return
			}
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.wantField, verr.Field)
			require.True(t, bill.TaxRate.IsZero())
		})
	}
}

func TestSetTitle(t *testing.T) {
	bill := models.NewBill("Dinner", "USD")

	require.NoError(t, SetTitle(bill, "  Lunch  "))
	require.Equal(t, "Lunch", bill.Title)

	var verr *models.ValidationError
	require.ErrorAs(t, SetTitle(bill, " "), &verr)
	require.Equal(t, "Lunch", bill.Title)
}

func TestPaymentHandles(t *testing.T) {
	bill, alice, _, _ := newTestBill(t)

	SetPaymentHandle(bill, " @collector ")
	require.Equal(t, "collector", bill.PaymentHandle)

	require.NoError(t, SetPersonPaymentHandle(bill, alice.ID, "@alice"))
	require.Equal(t, "alice", bill.FindPerson(alice.ID).PaymentHandle)

	require.NoError(t, Finalize(bill))
	SetPaymentHandle(bill, "other")
	require.Equal(t, "other", bill.PaymentHandle)
}

func TestMarkPaid(t *testing.T) {
	bill, alice, _, _ := newTestBill(t)
	require.NoError(t, Finalize(bill))

	require.NoError(t, MarkPaid(bill, alice.ID, true))
	require.NoError(t, MarkPaid(bill, alice.ID, true))
	require.Equal(t, []string{alice.ID}, bill.PaidBy)

	require.NoError(t, MarkPaid(bill, alice.ID, false))
	require.Empty(t, bill.PaidBy)

	var nf *models.NotFoundError
	require.ErrorAs(t, MarkPaid(bill, "missing", true), &nf)
}

func TestFinalize(t *testing.T) {
	bill, _, _, itemID := newTestBill(t)

	require.NoError(t, Finalize(bill))
	require.Equal(t, models.StatusFinalized, bill.Status)

	var serr *models.InvalidStateError
	require.ErrorAs(t, Finalize(bill), &serr)
	require.ErrorAs(t, RemoveItem(bill, itemID), &serr)
	_, err := AddPerson(bill, "Carol")
	require.ErrorAs(t, err, &serr)
	require.ErrorAs(t, SetRates(bill, decimal.Zero, decimal.Zero), &serr)
}
