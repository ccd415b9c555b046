package money

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	sum, err := Add(New(150, "USD"), New(275, "USD"))
	require.NoError(t, err)
	require.Equal(t, New(425, "USD"), sum)

	_, err = Add(New(150, "USD"), New(1, "CLP"))
	var mismatch *CurrencyMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, Currency("USD"), mismatch.Want)
	require.Equal(t, Currency("CLP"), mismatch.Got)
}

func TestAddSub_Overflow(t *testing.T) {
	tests := []struct {
		name string
		op   func() (Money, error)
	}{
		{name: "add past max", op: func() (Money, error) { return New(math.MaxInt64, "USD").Add(New(1, "USD")) }},
		{name: "add halves past max", op: func() (Money, error) { return New(math.MaxInt64/2+1, "USD").Add(New(math.MaxInt64/2+1, "USD")) }},
		{name: "add past min", op: func() (Money, error) { return New(math.MinInt64, "USD").Add(New(-1, "USD")) }},
		{name: "sub past min", op: func() (Money, error) { return New(math.MinInt64, "USD").Sub(New(1, "USD")) }},
		{name: "sub min", op: func() (Money, error) { return New(0, "USD").Sub(New(math.MinInt64, "USD")) }},
		{name: "sub past max", op: func() (Money, error) { return New(math.MaxInt64, "USD").Sub(New(-1, "USD")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.op()
			require.ErrorIs(t, err, ErrOverflow)
		})
	}

	m, err := New(math.MaxInt64-1, "USD").Add(New(1, "USD"))
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), m.Amount)

	m, err = New(-5, "USD").Sub(New(math.MaxInt64-5, "USD"))
	require.NoError(t, err)
	require.Equal(t, int64(-math.MaxInt64), m.Amount)

	_, err = Sum("USD", New(math.MaxInt64/2, "USD"), New(math.MaxInt64/2, "USD"), New(math.MaxInt64/2, "USD"))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestSum(t *testing.T) {
	total, err := Sum("USD", New(1, "USD"), New(2, "USD"), New(3, "USD"))
	require.NoError(t, err)
	require.Equal(t, int64(6), total.Amount)

	_, err = Sum("USD", New(1, "USD"), New(2, "EUR"))
	require.Error(t, err)
}

func TestScaleByRatio(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		num     int64
		den     int64
		want    int64
		wantRem Remainder
	}{
		{name: "even split", amount: 900, num: 1, den: 3, want: 300, wantRem: Remainder{Num: 0, Den: 3}},
		{name: "split with leftover", amount: 1000, num: 1, den: 3, want: 333, wantRem: Remainder{Num: 1, Den: 3}},
		{name: "two of seven", amount: 100, num: 2, den: 7, want: 28, wantRem: Remainder{Num: 4, Den: 7}},
		{name: "zero amount", amount: 0, num: 1, den: 4, want: 0, wantRem: Remainder{Num: 0, Den: 4}},
		{name: "negative floors down", amount: -10, num: 1, den: 3, want: -4, wantRem: Remainder{Num: 2, Den: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rem, err := ScaleByRatio(New(tt.amount, "USD"), tt.num, tt.den)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Amount)
			require.Equal(t, tt.wantRem, rem)
			// value*den + rem == amount*num
			require.Equal(t, tt.amount*tt.num, got.Amount*tt.den+rem.Num)
		})
	}

	_, _, err := ScaleByRatio(New(1, "USD"), 1, 0)
	require.ErrorIs(t, err, ErrZeroDenominator)
}

func TestPercentageOf(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		percent  string
		want     int64
		halfOrUp bool
	}{
		{name: "ten percent exact", amount: 1000, percent: "10", want: 100},
		{name: "ten percent truncated", amount: 334, percent: "10", want: 33},
		{name: "fractional rate", amount: 1000, percent: "12.5", want: 125},
		{name: "rounds up past half", amount: 335, percent: "10", want: 33, halfOrUp: true},
		{name: "zero rate", amount: 5000, percent: "0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rem, err := PercentageOf(New(tt.amount, "USD"), decimal.RequireFromString(tt.percent))
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Amount)
			require.Equal(t, tt.halfOrUp, rem.HalfOrMore())
		})
	}
}

func TestRateValidation(t *testing.T) {
	_, _, err := PercentageOf(New(100, "USD"), decimal.RequireFromString("-1"))
	require.ErrorIs(t, err, ErrNegativeRate)

	_, _, err = PercentageOf(New(100, "USD"), decimal.RequireFromString("1.1234567"))
	require.ErrorIs(t, err, ErrRatePrecision)

	num, den, err := RateRatio(decimal.RequireFromString("19"))
	require.NoError(t, err)
	require.Equal(t, int64(19_000_000), num)
	require.Equal(t, int64(100_000_000), den)
}

func TestRoundHalfUp(t *testing.T) {
	require.Equal(t, int64(34), RoundHalfUp(New(33, "USD"), Remainder{Num: 5, Den: 10}).Amount)
	require.Equal(t, int64(33), RoundHalfUp(New(33, "USD"), Remainder{Num: 4, Den: 10}).Amount)
}

func TestFromDecimal(t *testing.T) {
	m, err := FromDecimal(decimal.RequireFromString("12.99"), "USD")
	require.NoError(t, err)
	require.Equal(t, New(1299, "USD"), m)

	m, err = FromDecimal(decimal.RequireFromString("4500"), "CLP")
	require.NoError(t, err)
	require.Equal(t, New(4500, "CLP"), m)

	m, err = FromDecimal(decimal.RequireFromString("0.005"), "USD")
	require.NoError(t, err)
	require.Equal(t, int64(1), m.Amount)
}

func TestString(t *testing.T) {
	require.Equal(t, "12.50 USD", New(1250, "USD").String())
	require.Equal(t, "4500 CLP", New(4500, "CLP").String())
	require.Equal(t, Currency("EUR"), NormalizeCurrency(" eur "))
}

func TestTimes(t *testing.T) {
	m, err := New(250, "USD").Times(3)
	require.NoError(t, err)
	require.Equal(t, int64(750), m.Amount)
}
