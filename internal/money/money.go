// Package money implements exact currency arithmetic in integer minor units.
//
// Amounts are never floating point. Division truncates toward negative infinity and
// hands the caller the remainder so that it can be redistributed explicitly.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxRateScale is the number of decimal places a percentage rate may carry.
const MaxRateScale = 6

var (
	ErrZeroDenominator = errors.New("denominator must be positive")
	ErrOverflow        = errors.New("amount overflows int64 minor units")
	ErrRatePrecision   = fmt.Errorf("rate has more than %d decimal places", MaxRateScale)
	ErrNegativeRate    = errors.New("rate must not be negative")
)

// rateDenominator turns a percentage with MaxRateScale decimals into an integer ratio.
var rateDenominator = decimal.New(100, MaxRateScale)

// Currency is an ISO-4217 currency code.
type Currency string

// zeroDecimal lists currencies without a minor unit.
var zeroDecimal = map[Currency]bool{
	"CLP": true,
	"ISK": true,
	"JPY": true,
	"KRW": true,
	"VND": true,
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(code string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(code)))
}

// Exponent is the number of minor-unit digits of the currency.
func (c Currency) Exponent() int32 {
	if zeroDecimal[c] {
		return 0
	}
	return 2
}

// Money is an amount of minor units (cents for USD, pesos for CLP) in one currency.
type Money struct {
	Amount   int64    `json:"amount"`
	Currency Currency `json:"currency"`
}

// CurrencyMismatchError is returned when two amounts in different currencies meet.
// It signals an integration bug rather than bad user input.
type CurrencyMismatchError struct {
	Want Currency
	Got  Currency
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: want %s, got %s", e.Want, e.Got)
}

// Remainder is the part of a truncating division that was dropped, measured in
// Num/Den minor units. For an even split of an amount into Den parts (numerator 1)
// Num is exactly the number of whole minor units left over across all parts.
type Remainder struct {
	Num int64
	Den int64
}

// IsZero reports whether nothing was lost to truncation.
func (r Remainder) IsZero() bool {
	return r.Num == 0
}

// HalfOrMore reports whether the dropped fraction is at least half a minor unit.
func (r Remainder) HalfOrMore() bool {
	return r.Den > 0 && 2*r.Num >= r.Den
}

// New returns an amount of minor units in currency c.
func New(amount int64, c Currency) Money {
	return Money{Amount: amount, Currency: c}
}

// Zero returns a zero amount in currency c.
func Zero(c Currency) Money {
	return Money{Currency: c}
}

// FromDecimal converts a major-unit amount (e.g. 12.99 USD) to minor units,
// rounding half away from zero when the input has more digits than the currency.
func FromDecimal(d decimal.Decimal, c Currency) (Money, error) {
	minor := d.Shift(c.Exponent()).Round(0)
	if !minor.BigInt().IsInt64() {
		return Money{}, ErrOverflow
	}
	return New(minor.IntPart(), c), nil
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -m.Currency.Exponent())
}

// String formats the amount in major units, e.g. "12.50 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().StringFixed(m.Currency.Exponent()), m.Currency)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount < 0
}

// SameCurrency checks that o is in m's currency.
func (m Money) SameCurrency(o Money) error {
	if m.Currency != o.Currency {
		return &CurrencyMismatchError{Want: m.Currency, Got: o.Currency}
	}
	return nil
}

// Add returns m+o. It fails with ErrOverflow instead of wrapping around.
func (m Money) Add(o Money) (Money, error) {
	if err := m.SameCurrency(o); err != nil {
		return Money{}, err
	}
	sum, ok := addInt64(m.Amount, o.Amount)
	if !ok {
		return Money{}, ErrOverflow
	}
	return New(sum, m.Currency), nil
}

// Sub returns m-o. It fails with ErrOverflow instead of wrapping around.
func (m Money) Sub(o Money) (Money, error) {
	if err := m.SameCurrency(o); err != nil {
		return Money{}, err
	}
	if o.Amount == math.MinInt64 {
		return Money{}, ErrOverflow
	}
	diff, ok := addInt64(m.Amount, -o.Amount)
	if !ok {
		return Money{}, ErrOverflow
	}
	return New(diff, m.Currency), nil
}

// addInt64 reports false when a+b does not fit in an int64.
func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// Times multiplies the amount by an integer quantity.
func (m Money) Times(quantity int64) (Money, error) {
	product := decimal.NewFromInt(m.Amount).Mul(decimal.NewFromInt(quantity))
	if !product.BigInt().IsInt64() {
		return Money{}, ErrOverflow
	}
	return New(product.IntPart(), m.Currency), nil
}

// Add returns a+b and fails when the currencies differ.
func Add(a, b Money) (Money, error) {
	return a.Add(b)
}

// Sum adds amounts, all of which must be in currency c.
func Sum(c Currency, amounts ...Money) (Money, error) {
	total := Zero(c)
	for _, a := range amounts {
		var err error
		if total, err = total.Add(a); err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

// ScaleByRatio computes floor(amount * num / den) in minor units and returns the
// remainder of the division alongside it.
func ScaleByRatio(amount Money, num, den int64) (Money, Remainder, error) {
	if den <= 0 {
		return Money{}, Remainder{}, ErrZeroDenominator
	}
	product := decimal.NewFromInt(amount.Amount).Mul(decimal.NewFromInt(num))
	divisor := decimal.NewFromInt(den)

	q, r := product.QuoRem(divisor, 0)
	// QuoRem truncates toward zero; shift negative results down to the floor.
	if r.IsNegative() {
		q = q.Sub(decimal.NewFromInt(1))
		r = r.Add(divisor)
	}
	if !q.BigInt().IsInt64() {
		return Money{}, Remainder{}, ErrOverflow
	}
	return New(q.IntPart(), amount.Currency), Remainder{Num: r.IntPart(), Den: den}, nil
}

// PercentageOf computes floor(amount * percent / 100) in minor units, returning the
// truncated remainder. percent is a decimal such as 10 or 12.5.
func PercentageOf(amount Money, percent decimal.Decimal) (Money, Remainder, error) {
	num, den, err := RateRatio(percent)
	if err != nil {
		return Money{}, Remainder{}, err
	}
	return ScaleByRatio(amount, num, den)
}

// RoundHalfUp rounds a truncated value using its remainder.
func RoundHalfUp(value Money, rem Remainder) Money {
	if rem.HalfOrMore() {
		value.Amount++
	}
	return value
}

// RateRatio converts a percentage into an exact integer ratio num/den.
func RateRatio(percent decimal.Decimal) (int64, int64, error) {
	if err := ValidateRate(percent); err != nil {
		return 0, 0, err
	}
	scaled := percent.Shift(MaxRateScale)
	if !scaled.BigInt().IsInt64() {
		return 0, 0, ErrOverflow
	}
	return scaled.IntPart(), rateDenominator.IntPart(), nil
}

// ValidateRate checks that percent is usable as a tax or tip rate.
func ValidateRate(percent decimal.Decimal) error {
	if percent.IsNegative() {
		return ErrNegativeRate
	}
	if !percent.Shift(MaxRateScale).IsInteger() {
		return ErrRatePrecision
	}
	return nil
}
