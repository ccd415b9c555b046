package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/calculator"
	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/money"
	"github.com/mmynk/divvy/internal/paylink"
	"github.com/mmynk/divvy/pkg/api"
)

func toAPIMoney(m money.Money) api.Money {
	return api.Money{Amount: m.Amount, Currency: string(m.Currency)}
}

func toAPIPerson(p models.Person, paid bool) api.Person {
	return api.Person{
		Id:            p.ID,
		Name:          p.Name,
		PaymentHandle: p.PaymentHandle,
		Paid:          paid,
	}
}

func toAPIItem(it models.Item) (api.Item, error) {
	line, err := it.LineTotal()
	if err != nil {
		return api.Item{}, fmt.Errorf("item %s: %w", it.ID, err)
	}
	owners := it.Owners
	if owners == nil {
		owners = []string{}
	}
	return api.Item{
		Id:        it.ID,
		Name:      it.Name,
		UnitPrice: toAPIMoney(it.UnitPrice),
		Quantity:  it.Quantity,
		LineTotal: toAPIMoney(line),
		OwnerIds:  owners,
	}, nil
}

func toAPIBill(bill *models.Bill) (*api.Bill, error) {
	total, err := bill.ItemsTotal()
	if err != nil {
		return nil, err
	}
	out := &api.Bill{
		Id:            bill.ID,
		Title:         bill.Title,
		Currency:      string(bill.Currency),
		Items:         make([]api.Item, 0, len(bill.Items)),
		People:        make([]api.Person, 0, len(bill.People)),
		TaxRate:       bill.TaxRate.String(),
		TipRate:       bill.TipRate.String(),
		PaymentHandle: bill.PaymentHandle,
		Status:        string(bill.Status),
		Version:       bill.Version,
		CreatedAt:     bill.CreatedAt,
		ItemsTotal:    toAPIMoney(total),
	}
	for _, it := range bill.Items {
		item, err := toAPIItem(it)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, item)
	}
	for _, p := range bill.People {
		out.People = append(out.People, toAPIPerson(p, bill.HasPaid(p.ID)))
	}
	return out, nil
}

func toAPISummary(s models.BillSummary) api.BillSummary {
	return api.BillSummary{
		Id:          s.ID,
		Title:       s.Title,
		Status:      string(s.Status),
		ItemCount:   int32(s.ItemCount),
		PeopleCount: int32(s.PeopleCount),
		ItemsTotal:  toAPIMoney(s.ItemsTotal),
		CreatedAt:   s.CreatedAt,
	}
}

// toAPISplit renders a split with collection progress. links may be nil; unpaid people
// owing money get a payment link otherwise.
func toAPISplit(split *calculator.Split, coll *calculator.Collection, links paylink.Generator, billTitle string) *api.SplitResult {
	out := &api.SplitResult{
		Currency:         string(split.Currency),
		People:           make([]api.PersonSplit, 0, len(split.People)),
		Unassigned:       make([]api.UnassignedItem, 0, len(split.Unassigned)),
		ItemsTotal:       toAPIMoney(split.ItemsTotal),
		AssignedSubtotal: toAPIMoney(split.AssignedSubtotal),
		UnassignedTotal:  toAPIMoney(split.UnassignedTotal),
		Tax:              toAPIMoney(split.Tax),
		Tip:              toAPIMoney(split.Tip),
		Total:            toAPIMoney(split.Total),
		Collected:        toAPIMoney(coll.Collected),
		Outstanding:      toAPIMoney(coll.Outstanding),
		Settled:          coll.Settled(),
	}
	for i, ps := range split.People {
		paid := coll.People[i].Paid
		person := api.PersonSplit{
			PersonId: ps.PersonID,
			Name:     ps.Name,
			Subtotal: toAPIMoney(ps.Subtotal),
			Tax:      toAPIMoney(ps.Tax),
			Tip:      toAPIMoney(ps.Tip),
			Total:    toAPIMoney(ps.Total),
			Items:    make([]api.PersonItem, 0, len(ps.Items)),
			Paid:     paid,
		}
		for _, it := range ps.Items {
			person.Items = append(person.Items, api.PersonItem{
				ItemId: it.ItemID,
				Name:   it.Name,
				Amount: toAPIMoney(it.Amount),
			})
		}
		if links != nil && !paid && ps.Total.Amount > 0 {
			if link, err := links.Link(ps.Name, ps.Total, billTitle); err == nil {
				person.PaymentLink = link
			}
		}
		out.People = append(out.People, person)
	}
	for _, u := range split.Unassigned {
		out.Unassigned = append(out.Unassigned, api.UnassignedItem{
			ItemId:    u.ItemID,
			Name:      u.Name,
			LineTotal: toAPIMoney(u.LineTotal),
		})
	}
	return out
}

// parseRate parses a percentage string. An empty string means zero.
func parseRate(field, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, &models.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a decimal number", value)}
	}
	return rate, nil
}

// parseCurrency normalizes a currency code, falling back to def when empty.
func parseCurrency(value string, def money.Currency) (money.Currency, error) {
	c := money.NormalizeCurrency(value)
	if c == "" {
		c = def
	}
	if len(c) != 3 || strings.Trim(string(c), "ABCDEFGHIJKLMNOPQRSTUVWXYZ") != "" {
		return "", &models.ValidationError{Field: "currency", Reason: fmt.Sprintf("%q is not an ISO-4217 code", value)}
	}
	return c, nil
}

// quantityOrOne treats an omitted quantity as 1.
func quantityOrOne(q int64) int64 {
	if q == 0 {
		return 1
	}
	return q
}
