package calculator

import (
	"github.com/mmynk/divvy/internal/money"
)

// PersonBalance is the collection state of one person.
type PersonBalance struct {
	PersonID string
	Name     string
	Owed     money.Money
	Paid     bool
}

// Collection summarises how much of a split has been paid back to the collector.
type Collection struct {
	People []PersonBalance

	// Collected is the sum owed by people marked as paid; Outstanding is the rest.
	// Collected + Outstanding == Split.Total.
	Collected   money.Money
	Outstanding money.Money

	// SettledCount is the number of people who owe something and have paid.
	SettledCount int
	// DebtorCount is the number of people who owe something.
	DebtorCount int
}

// Collect computes collection progress for a split given the IDs of people who paid.
//
// Algorithm:
//   - every person with a nonzero total is a debtor
//   - a debtor in paidBy contributes their total to Collected, otherwise to Outstanding
//   - people owing nothing are listed but never counted as debtors
func Collect(split *Split, paidBy []string) *Collection {
	paid := make(map[string]bool, len(paidBy))
	for _, id := range paidBy {
		paid[id] = true
	}

	c := &Collection{
		People:      make([]PersonBalance, 0, len(split.People)),
		Collected:   money.Zero(split.Currency),
		Outstanding: money.Zero(split.Currency),
	}
	for _, ps := range split.People {
		c.People = append(c.People, PersonBalance{
			PersonID: ps.PersonID,
			Name:     ps.Name,
			Owed:     ps.Total,
			Paid:     paid[ps.PersonID],
		})
		if ps.Total.IsZero() {
			continue
		}
		c.DebtorCount++
		// bounded by split.Total, which CalculateSplit computed with checked sums
		if paid[ps.PersonID] {
			c.SettledCount++
			c.Collected.Amount += ps.Total.Amount
		} else {
			c.Outstanding.Amount += ps.Total.Amount
		}
	}
	return c
}

// Settled reports whether every debtor has paid.
func (c *Collection) Settled() bool {
	return c.SettledCount == c.DebtorCount
}
