// Package receipt turns the JSON produced by an external receipt reader into bill items.
//
// The reader (a vision model or OCR pipeline) is outside this module. It is expected to
// answer with an object like
//
//	{"items": [{"name": "Pizza", "price": 12.50, "quantity": 1}], "tax_percent": 10}
//
// optionally wrapped in a markdown code fence. Prices are in major units and may be
// numbers or strings.
package receipt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/assign"
	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/money"
)

// Line is one parsed receipt line.
type Line struct {
	Name      string
	UnitPrice money.Money
	Quantity  int64
}

// Extraction is a parsed receipt.
type Extraction struct {
	Currency money.Currency
	Lines    []Line

	// TaxRate and TipRate are percentages; nil when the receipt did not show them.
	TaxRate *decimal.Decimal
	TipRate *decimal.Decimal
}

type rawItem struct {
	Name     string           `json:"name"`
	Price    decimal.Decimal  `json:"price"`
	Quantity *decimal.Decimal `json:"quantity"`
}

type rawReceipt struct {
	Items      []rawItem        `json:"items"`
	TaxPercent *decimal.Decimal `json:"tax_percent"`
	TipPercent *decimal.Decimal `json:"tip_percent"`

	// Absolute amounts some readers return instead of percentages.
	Subtotal *decimal.Decimal `json:"subtotal"`
	Tax      *decimal.Decimal `json:"tax"`
	Tip      *decimal.Decimal `json:"tip"`
}

// ParseExtraction parses reader output into an Extraction in the given currency.
//
// Lines with a blank name are skipped. A missing or zero quantity counts as 1. When a
// percentage is absent but absolute tax or tip amounts and a subtotal are given, the
// percentage is derived from them.
func ParseExtraction(raw string, currency money.Currency) (*Extraction, error) {
	var r rawReceipt
	if err := json.Unmarshal([]byte(stripFence(raw)), &r); err != nil {
		return nil, &models.ValidationError{Field: "receipt", Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	ex := &Extraction{Currency: currency, Lines: make([]Line, 0, len(r.Items))}
	itemsTotal := decimal.Zero
	for i, item := range r.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		quantity := int64(1)
		if item.Quantity != nil && !item.Quantity.IsZero() {
			if !item.Quantity.IsInteger() || item.Quantity.IsNegative() {
				return nil, &models.ValidationError{
					Field:  fmt.Sprintf("items[%d].quantity", i),
					Reason: "must be a positive whole number",
				}
			}
			if !item.Quantity.BigInt().IsInt64() {
				return nil, &models.ValidationError{
					Field:  fmt.Sprintf("items[%d].quantity", i),
					Reason: money.ErrOverflow.Error(),
				}
			}
			quantity = item.Quantity.IntPart()
		}
		price, err := money.FromDecimal(item.Price, currency)
		if err != nil {
			return nil, &models.ValidationError{Field: fmt.Sprintf("items[%d].price", i), Reason: err.Error()}
		}
		ex.Lines = append(ex.Lines, Line{Name: name, UnitPrice: price, Quantity: quantity})
		itemsTotal = itemsTotal.Add(item.Price.Mul(decimal.NewFromInt(quantity)))
	}

	subtotal := itemsTotal
	if r.Subtotal != nil && r.Subtotal.IsPositive() {
		subtotal = *r.Subtotal
	}
	ex.TaxRate = rate(r.TaxPercent, r.Tax, subtotal)
	ex.TipRate = rate(r.TipPercent, r.Tip, subtotal)
	return ex, nil
}

// rate prefers an explicit percentage and falls back to amount/subtotal.
func rate(percent, amount *decimal.Decimal, subtotal decimal.Decimal) *decimal.Decimal {
	if percent != nil {
		p := percent.Round(money.MaxRateScale)
		return &p
	}
	if amount == nil || !amount.IsPositive() || !subtotal.IsPositive() {
		return nil
	}
	p := amount.Mul(decimal.NewFromInt(100)).DivRound(subtotal, money.MaxRateScale)
	return &p
}

// stripFence removes a surrounding ```json ... ``` block if present.
func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	start := strings.Index(s, "```")
	if start < 0 {
		return s
	}
	s = s[start+3:]
	s = strings.TrimPrefix(s, "json")
	if end := strings.Index(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

// Seed adds the extracted lines to bill as unassigned items and applies detected rates.
// The bill is left unchanged if any line is rejected.
func Seed(bill *models.Bill, ex *Extraction) error {
	draft := bill.Clone()
	for _, line := range ex.Lines {
		if _, err := assign.AddItem(draft, line.Name, line.UnitPrice, line.Quantity); err != nil {
			return fmt.Errorf("failed to add %q: %w", line.Name, err)
		}
	}
	if ex.TaxRate != nil || ex.TipRate != nil {
		tax, tip := draft.TaxRate, draft.TipRate
		if ex.TaxRate != nil {
			tax = *ex.TaxRate
		}
		if ex.TipRate != nil {
			tip = *ex.TipRate
		}
		if err := assign.SetRates(draft, tax, tip); err != nil {
			return err
		}
	}
	*bill = *draft
	return nil
}
