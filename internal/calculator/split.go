package calculator

import (
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/money"
)

// PersonItem is one person's share of one item.
type PersonItem struct {
	ItemID string
	Name   string
	Amount money.Money
}

// PersonSplit is the calculated share of one person.
type PersonSplit struct {
	PersonID string
	Name     string

	// Subtotal is the sum of this person's item shares.
	Subtotal money.Money

	// Tax and Tip are proportional to Subtotal, including any pooled units.
	Tax money.Money
	Tip money.Money

	// Total is what the person owes: Subtotal + Tax + Tip.
	Total money.Money

	Items []PersonItem
}

// UnassignedItem is an item nobody claimed. It is excluded from every total.
type UnassignedItem struct {
	ItemID    string
	Name      string
	LineTotal money.Money
}

// Split is the result of CalculateSplit.
type Split struct {
	Currency money.Currency

	// People are ordered by ascending person ID.
	People []PersonSplit

	Unassigned []UnassignedItem

	// ItemsTotal covers every item; AssignedSubtotal + UnassignedTotal == ItemsTotal.
	ItemsTotal       money.Money
	AssignedSubtotal money.Money
	UnassignedTotal  money.Money

	// Tax and Tip are the bill-level amounts on AssignedSubtotal; they equal the sums
	// of the per-person figures.
	Tax money.Money
	Tip money.Money

	// Total is AssignedSubtotal + Tax + Tip, the sum of every person's Total.
	Total money.Money
}

// Owed maps person ID to the amount owed.
func (s *Split) Owed() map[string]money.Money {
	owed := make(map[string]money.Money, len(s.People))
	for _, p := range s.People {
		owed[p.PersonID] = p.Total
	}
	return owed
}

// Person returns the split of one person, or nil.
func (s *Split) Person(personID string) *PersonSplit {
	for i := range s.People {
		if s.People[i].PersonID == personID {
			return &s.People[i]
		}
	}
	return nil
}

// CalculateSplit computes how much each person owes including proportional tax and
// tip.
//
// Algorithm:
//   - each item's line total is split evenly among its owners; units left over go
//     one each to the owners in ascending person ID
//   - tax and tip are computed per person on that person's subtotal and truncated
//   - the bill-level tax and tip (on the assigned subtotal, rounded half up) minus the
//     truncated per-person figures form a pool handed out one unit at a time, in
//     ascending person ID, to people with a nonzero subtotal
//
// The sum of all totals therefore equals the assigned subtotal plus bill-level tax and
// tip exactly. Items without owners are reported in Unassigned and charged to nobody.
func CalculateSplit(bill *models.Bill) (*Split, error) {
	currency := bill.Currency
	zero := money.Zero(currency)

	people := slices.Clone(bill.People)
	slices.SortFunc(people, func(a, b models.Person) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	split := &Split{
		Currency:         currency,
		People:           make([]PersonSplit, len(people)),
		Unassigned:       []UnassignedItem{},
		ItemsTotal:       zero,
		AssignedSubtotal: zero,
		UnassignedTotal:  zero,
		Tax:              zero,
		Tip:              zero,
		Total:            zero,
	}
	index := make(map[string]int, len(people))
	for i, p := range people {
		index[p.ID] = i
		split.People[i] = PersonSplit{
			PersonID: p.ID,
			Name:     p.Name,
			Subtotal: zero,
			Tax:      zero,
			Tip:      zero,
			Total:    zero,
			Items:    []PersonItem{},
		}
	}

	for _, item := range bill.Items {
		lineTotal, err := item.LineTotal()
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", item.ID, err)
		}
		if split.ItemsTotal, err = split.ItemsTotal.Add(lineTotal); err != nil {
			return nil, fmt.Errorf("item %s: %w", item.ID, err)
		}

		owners := knownOwners(item.Owners, index)
		if len(owners) == 0 {
			split.Unassigned = append(split.Unassigned, UnassignedItem{
				ItemID:    item.ID,
				Name:      item.Name,
				LineTotal: lineTotal,
			})
			if split.UnassignedTotal, err = split.UnassignedTotal.Add(lineTotal); err != nil {
				return nil, fmt.Errorf("item %s: %w", item.ID, err)
			}
			continue
		}

		share, rem, err := money.ScaleByRatio(lineTotal, 1, int64(len(owners)))
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", item.ID, err)
		}
		for n, ownerID := range owners {
			amount := share
			if int64(n) < rem.Num {
				amount.Amount++
			}
			ps := &split.People[index[ownerID]]
			if ps.Subtotal, err = ps.Subtotal.Add(amount); err != nil {
				return nil, fmt.Errorf("item %s: %w", item.ID, err)
			}
			ps.Items = append(ps.Items, PersonItem{ItemID: item.ID, Name: item.Name, Amount: amount})
		}
		if split.AssignedSubtotal, err = split.AssignedSubtotal.Add(lineTotal); err != nil {
			return nil, fmt.Errorf("item %s: %w", item.ID, err)
		}
	}

	var err error
	split.Tax, err = allocate(split, bill.TaxRate, func(ps *PersonSplit) *money.Money { return &ps.Tax })
	if err != nil {
		return nil, fmt.Errorf("tax: %w", err)
	}
	split.Tip, err = allocate(split, bill.TipRate, func(ps *PersonSplit) *money.Money { return &ps.Tip })
	if err != nil {
		return nil, fmt.Errorf("tip: %w", err)
	}

	for i := range split.People {
		ps := &split.People[i]
		if ps.Total, err = money.Sum(currency, ps.Subtotal, ps.Tax, ps.Tip); err != nil {
			return nil, fmt.Errorf("total of %s: %w", ps.PersonID, err)
		}
	}
	if split.Total, err = money.Sum(currency, split.AssignedSubtotal, split.Tax, split.Tip); err != nil {
		return nil, fmt.Errorf("total: %w", err)
	}

	return split, nil
}

// knownOwners returns the owners that are people on the bill, sorted and unique.
func knownOwners(owners []string, index map[string]int) []string {
	known := make([]string, 0, len(owners))
	for _, id := range owners {
		if _, ok := index[id]; ok {
			known = append(known, id)
		}
	}
	slices.Sort(known)
	return slices.Compact(known)
}

// allocate charges rate on every person's subtotal and distributes the pooled
// truncation units. It returns the bill-level amount.
func allocate(split *Split, rate decimal.Decimal, field func(*PersonSplit) *money.Money) (money.Money, error) {
	value, rem, err := money.PercentageOf(split.AssignedSubtotal, rate)
	if err != nil {
		return money.Money{}, err
	}
	if value.Amount == math.MaxInt64 && rem.HalfOrMore() {
		return money.Money{}, money.ErrOverflow
	}
	billAmount := money.RoundHalfUp(value, rem)

	var eligible []int
	charged := int64(0)
	for i := range split.People {
		ps := &split.People[i]
		if ps.Subtotal.Amount <= 0 {
			continue
		}
		eligible = append(eligible, i)
		amount, _, err := money.PercentageOf(ps.Subtotal, rate)
		if err != nil {
			return money.Money{}, err
		}
		*field(ps) = amount
		charged += amount.Amount
	}

	pool := billAmount.Amount - charged
	if pool < 0 {
		return money.Money{}, fmt.Errorf("charged %d units more than the bill amount", -pool)
	}
	if pool > 0 && len(eligible) == 0 {
		return money.Money{}, fmt.Errorf("%d units left with nobody to charge", pool)
	}
	for n := 0; pool > 0; n++ {
		f := field(&split.People[eligible[n%len(eligible)]])
		f.Amount++
		pool--
	}
	return billAmount, nil
}
