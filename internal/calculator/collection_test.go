package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	bill := testBill([]string{"a", "b", "c"}, "10", "0",
		item("x", 2000, 1, "a", "b"),
	)
	split, err := CalculateSplit(bill)
	require.NoError(t, err)

	tests := []struct {
		name            string
		paidBy          []string
		wantCollected   int64
		wantOutstanding int64
		wantSettled     int
		wantAllSettled  bool
	}{
		{
			name:            "nobody paid",
			wantOutstanding: 2200,
		},
		{
			name:            "one of two debtors paid",
			paidBy:          []string{"a"},
			wantCollected:   1100,
			wantOutstanding: 1100,
			wantSettled:     1,
		},
		{
			name:           "every debtor paid",
			paidBy:         []string{"b", "a"},
			wantCollected:  2200,
			wantSettled:    2,
			wantAllSettled: true,
		},
		{
			name:            "person owing nothing does not count",
			paidBy:          []string{"c"},
			wantOutstanding: 2200,
		},
		{
			name:            "unknown IDs are ignored",
			paidBy:          []string{"ghost"},
			wantOutstanding: 2200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Collect(split, tt.paidBy)
			require.Len(t, c.People, 3)
			require.Equal(t, 2, c.DebtorCount)
			require.Equal(t, usd(tt.wantCollected), c.Collected)
			require.Equal(t, usd(tt.wantOutstanding), c.Outstanding)
			require.Equal(t, tt.wantSettled, c.SettledCount)
			require.Equal(t, tt.wantAllSettled, c.Settled())
			require.Equal(t, split.Total.Amount, c.Collected.Amount+c.Outstanding.Amount)
		})
	}
}

func TestCollect_EmptySplitIsSettled(t *testing.T) {
	split, err := CalculateSplit(testBill(nil, "0", "0"))
	require.NoError(t, err)

	c := Collect(split, nil)
	require.Empty(t, c.People)
	require.True(t, c.Settled())
}
