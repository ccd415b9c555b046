package receipt

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/divvy/internal/assign"
	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/money"
)

func TestParseExtraction(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		currency  money.Currency
		wantLines []Line
		wantTax   string
		wantTip   string
	}{
		{
			name:     "plain JSON with percentages",
			raw:      `{"items":[{"name":"Pizza","price":12.5,"quantity":2},{"name":"Soda","price":"2.99"}],"tax_percent":10,"tip_percent":"12.5"}`,
			currency: "USD",
			wantLines: []Line{
				{Name: "Pizza", UnitPrice: money.New(1250, "USD"), Quantity: 2},
				{Name: "Soda", UnitPrice: money.New(299, "USD"), Quantity: 1},
			},
			wantTax: "10",
			wantTip: "12.5",
		},
		{
			name:     "fenced output",
			raw:      "Here you go:\n```json\n{\"items\":[{\"name\":\"Completo\",\"price\":3500,\"quantity\":0}]}\n```",
			currency: "CLP",
			wantLines: []Line{
				{Name: "Completo", UnitPrice: money.New(3500, "CLP"), Quantity: 1},
			},
		},
		{
			name:     "absolute tax derived from subtotal",
			raw:      `{"items":[{"name":"Menu","price":5000}],"subtotal":5000,"tax":950,"tip":0}`,
			currency: "CLP",
			wantLines: []Line{
				{Name: "Menu", UnitPrice: money.New(5000, "CLP"), Quantity: 1},
			},
			wantTax: "19",
		},
		{
			name:      "blank names skipped",
			raw:       `{"items":[{"name":"  ","price":1}]}`,
			currency:  "USD",
			wantLines: []Line{},
		},
		{
			name:      "no items",
			raw:       `{}`,
			currency:  "USD",
			wantLines: []Line{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := ParseExtraction(tt.raw, tt.currency)
			require.NoError(t, err)
			require.Equal(t, tt.wantLines, ex.Lines)
			requireRate(t, tt.wantTax, ex.TaxRate)
			requireRate(t, tt.wantTip, ex.TipRate)
		})
	}
}

func requireRate(t *testing.T, want string, got *decimal.Decimal) {
	t.Helper()
	if want == "" {
		require.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	require.True(t, decimal.RequireFromString(want).Equal(*got), "rate %s, want %s", got, want)
}

func TestParseExtraction_Errors(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantField string
	}{
		{name: "not JSON", raw: "sorry, I cannot read this receipt", wantField: "receipt"},
		{name: "fractional quantity", raw: `{"items":[{"name":"Beer","price":3,"quantity":1.5}]}`, wantField: "items[0].quantity"},
		{name: "negative quantity", raw: `{"items":[{"name":"Beer","price":3,"quantity":-2}]}`, wantField: "items[0].quantity"},
		{name: "quantity past int64", raw: `{"items":[{"name":"Rice","price":1},{"name":"Beer","price":3,"quantity":1e20}]}`, wantField: "items[1].quantity"},
		{name: "price past int64", raw: `{"items":[{"name":"Beer","price":"1e30"}]}`, wantField: "items[0].price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExtraction(tt.raw, "USD")
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestSeed(t *testing.T) {
	bill := models.NewBill("Boleta", "USD")
	ex, err := ParseExtraction(`{"items":[{"name":"Pizza","price":20},{"name":"Beer","price":4.5,"quantity":3}],"tax_percent":8.875}`, "USD")
	require.NoError(t, err)

	require.NoError(t, Seed(bill, ex))

	require.Len(t, bill.Items, 2)
	require.Equal(t, "Pizza", bill.Items[0].Name)
	require.Equal(t, int64(3), bill.Items[1].Quantity)
	require.Empty(t, bill.Items[0].Owners)
	require.True(t, decimal.RequireFromString("8.875").Equal(bill.TaxRate))
	require.True(t, bill.TipRate.IsZero())

	total, err := bill.ItemsTotal()
	require.NoError(t, err)
	require.Equal(t, money.New(3350, "USD"), total)
}

func TestSeed_RejectedLineLeavesBillUnchanged(t *testing.T) {
	bill := models.NewBill("Boleta", "USD")
	ex := &Extraction{
		Currency: "USD",
		Lines: []Line{
			{Name: "Pizza", UnitPrice: money.New(2000, "USD"), Quantity: 1},
			{Name: "Refund", UnitPrice: money.New(-500, "USD"), Quantity: 1},
		},
	}

	var verr *models.ValidationError
	require.ErrorAs(t, Seed(bill, ex), &verr)
	require.Empty(t, bill.Items)
}

func TestSeed_FinalizedBill(t *testing.T) {
	bill := models.NewBill("Boleta", "USD")
	require.NoError(t, assign.Finalize(bill))
	ex, err := ParseExtraction(`{"items":[{"name":"Pizza","price":20}]}`, "USD")
	require.NoError(t, err)

	var serr *models.InvalidStateError
	require.ErrorAs(t, Seed(bill, ex), &serr)
}
