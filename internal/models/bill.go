package models

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/money"
)

// DefaultTitle is used when a bill is created without a title.
const DefaultTitle = "Bill"

// MaxTitleLength caps bill titles, counted in characters.
const MaxTitleLength = 80

// Status is the lifecycle state of a bill.
type Status string

const (
	// StatusOpen bills accept edits and assignments.
	StatusOpen Status = "OPEN"
	// StatusFinalized bills are frozen; only collection bookkeeping changes.
	StatusFinalized Status = "FINALIZED"
)

// Bill represents a receipt to be split among people.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string `json:"id"`

	// Title is the human-readable name for the bill.
	Title string `json:"title"`

	// Currency is the currency every item price is expressed in.
	Currency money.Currency `json:"currency"`

	// Items are the receipt lines in display order.
	Items []Item `json:"items"`

	// People are the participants in join order.
	People []Person `json:"people"`

	// TaxRate and TipRate are percentages (10 means 10%).
	TaxRate decimal.Decimal `json:"tax_rate"`
	TipRate decimal.Decimal `json:"tip_rate"`

	// PaymentHandle identifies the collector for payment links.
	PaymentHandle string `json:"payment_handle,omitempty"`

	// PaidBy holds the IDs of people who already paid their share.
	PaidBy []string `json:"paid_by,omitempty"`

	Status Status `json:"status"`

	// Version increments on every successful save; stores reject stale writes.
	Version int64 `json:"version"`

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64 `json:"created_at"`
}

// Item represents a single line item on a bill.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is the description printed on the receipt (e.g., "Pizza").
	Name string `json:"name"`

	// UnitPrice is the price of one unit in the bill's currency.
	UnitPrice money.Money `json:"unit_price"`

	// Quantity is the number of units, at least 1.
	Quantity int64 `json:"quantity"`

	// Owners are the IDs of the people sharing this item, sorted and unique.
	// An empty set means the item is unassigned.
	Owners []string `json:"owners"`
}

// Person is someone splitting the bill.
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// PaymentHandle is an optional handle the person can be paid at.
	PaymentHandle string `json:"payment_handle,omitempty"`
}

// BillSummary is the listing view of a bill.
type BillSummary struct {
	ID          string
	Title       string
	Status      Status
	ItemCount   int
	PeopleCount int
	ItemsTotal  money.Money
	CreatedAt   int64
}

// NewBill returns an empty open bill. ID and CreatedAt are filled in by the store.
func NewBill(title string, currency money.Currency) *Bill {
	return &Bill{
		Title:    NormalizeTitle(title),
		Currency: currency,
		Items:    []Item{},
		People:   []Person{},
		TaxRate:  decimal.Zero,
		TipRate:  decimal.Zero,
		Status:   StatusOpen,
	}
}

// NormalizeTitle trims the title, falls back to DefaultTitle and truncates long titles.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		title = strings.TrimSpace(string([]rune(title)[:MaxTitleLength]))
	}
	return title
}

// IsFinalized reports whether the bill is frozen.
func (b *Bill) IsFinalized() bool {
	return b.Status == StatusFinalized
}

// FindItem returns the item with the given ID, or nil.
func (b *Bill) FindItem(itemID string) *Item {
	for i := range b.Items {
		if b.Items[i].ID == itemID {
			return &b.Items[i]
		}
	}
	return nil
}

// FindPerson returns the person with the given ID, or nil.
func (b *Bill) FindPerson(personID string) *Person {
	for i := range b.People {
		if b.People[i].ID == personID {
			return &b.People[i]
		}
	}
	return nil
}

// HasPaid reports whether the person is marked as paid.
func (b *Bill) HasPaid(personID string) bool {
	return slices.Contains(b.PaidBy, personID)
}

// ItemsTotal sums every line total, assigned or not.
func (b *Bill) ItemsTotal() (money.Money, error) {
	total := money.Zero(b.Currency)
	for i := range b.Items {
		line, err := b.Items[i].LineTotal()
		if err != nil {
			return money.Money{}, err
		}
		if total, err = total.Add(line); err != nil {
			return money.Money{}, err
		}
	}
	return total, nil
}

// Summary returns the listing view of the bill.
func (b *Bill) Summary() (BillSummary, error) {
	total, err := b.ItemsTotal()
	if err != nil {
		return BillSummary{}, err
	}
	return BillSummary{
		ID:          b.ID,
		Title:       b.Title,
		Status:      b.Status,
		ItemCount:   len(b.Items),
		PeopleCount: len(b.People),
		ItemsTotal:  total,
		CreatedAt:   b.CreatedAt,
	}, nil
}

// Clone returns a deep copy of the bill.
func (b *Bill) Clone() *Bill {
	c := *b
	c.Items = make([]Item, len(b.Items))
	for i, item := range b.Items {
		item.Owners = slices.Clone(item.Owners)
		c.Items[i] = item
	}
	c.People = slices.Clone(b.People)
	c.PaidBy = slices.Clone(b.PaidBy)
	if c.People == nil {
		c.People = []Person{}
	}
	return &c
}

// LineTotal is unit price times quantity.
func (it *Item) LineTotal() (money.Money, error) {
	return it.UnitPrice.Times(it.Quantity)
}

// IsAssigned reports whether anyone owns the item.
func (it *Item) IsAssigned() bool {
	return len(it.Owners) > 0
}

// HasOwner reports whether personID is in the owner set.
func (it *Item) HasOwner(personID string) bool {
	_, found := slices.BinarySearch(it.Owners, personID)
	return found
}

// AddOwner inserts personID into the owner set. It reports whether the set changed.
func (it *Item) AddOwner(personID string) bool {
	idx, found := slices.BinarySearch(it.Owners, personID)
	if found {
		return false
	}
	it.Owners = slices.Insert(it.Owners, idx, personID)
	return true
}

// RemoveOwner deletes personID from the owner set. It reports whether the set changed.
func (it *Item) RemoveOwner(personID string) bool {
	idx, found := slices.BinarySearch(it.Owners, personID)
	if !found {
		return false
	}
	it.Owners = slices.Delete(it.Owners, idx, idx+1)
	return true
}

// NormalizeOwners sorts the owner set and drops duplicates. Stores call it after
// decoding so the set invariants hold for data written by older versions.
func (it *Item) NormalizeOwners() {
	slices.Sort(it.Owners)
	it.Owners = slices.Compact(it.Owners)
	if it.Owners == nil {
		it.Owners = []string{}
	}
}
