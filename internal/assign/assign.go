// Package assign implements every mutation of a bill: people, items, owner sets,
// rates and status.
//
// Each operation takes the whole bill and either applies its change completely or
// returns an error with the bill untouched. Nothing is retained between calls, so
// callers can load a snapshot, apply one operation and save it back.
package assign

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/money"
)

// requireOpen fails with InvalidStateError when the bill is finalized.
func requireOpen(bill *models.Bill, op string) error {
	if bill.IsFinalized() {
		return &models.InvalidStateError{BillID: bill.ID, Status: bill.Status, Op: op}
	}
	return nil
}

func findItem(bill *models.Bill, itemID string) (*models.Item, error) {
	item := bill.FindItem(itemID)
	if item == nil {
		return nil, &models.NotFoundError{Kind: "item", ID: itemID}
	}
	return item, nil
}

func findPerson(bill *models.Bill, personID string) (*models.Person, error) {
	person := bill.FindPerson(personID)
	if person == nil {
		return nil, &models.NotFoundError{Kind: "person", ID: personID}
	}
	return person, nil
}

// newPersonID returns a time-ordered UUIDv7, so sorting people by ID sorts them by
// join order.
func newPersonID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// AssignItem adds personID to the item's owner set. Assigning twice is a no-op.
func AssignItem(bill *models.Bill, itemID, personID string) error {
	if err := requireOpen(bill, "assign item"); err != nil {
		return err
	}
	item, err := findItem(bill, itemID)
	if err != nil {
		return err
	}
	if _, err := findPerson(bill, personID); err != nil {
		return err
	}
	item.AddOwner(personID)
	return nil
}

// UnassignItem removes personID from the item's owner set. Removing someone who is
// not an owner is not an error.
func UnassignItem(bill *models.Bill, itemID, personID string) error {
	if err := requireOpen(bill, "unassign item"); err != nil {
		return err
	}
	item, err := findItem(bill, itemID)
	if err != nil {
		return err
	}
	item.RemoveOwner(personID)
	return nil
}

// SelfAssign toggles the caller's own membership of the item's owner set and
// returns whether they own the item afterwards.
func SelfAssign(bill *models.Bill, itemID, personID string) (bool, error) {
	if err := requireOpen(bill, "self-assign item"); err != nil {
		return false, err
	}
	item, err := findItem(bill, itemID)
	if err != nil {
		return false, err
	}
	if _, err := findPerson(bill, personID); err != nil {
		return false, err
	}
	if item.RemoveOwner(personID) {
		return false, nil
	}
	item.AddOwner(personID)
	return true, nil
}

// AddPerson adds a participant to the bill.
func AddPerson(bill *models.Bill, name string) (*models.Person, error) {
	if err := requireOpen(bill, "add person"); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	bill.People = append(bill.People, models.Person{ID: newPersonID(), Name: name})
	return &bill.People[len(bill.People)-1], nil
}

// JoinBill is the participant-facing AddPerson: the name must not already be taken.
func JoinBill(bill *models.Bill, name string) (*models.Person, error) {
	if err := requireOpen(bill, "join bill"); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(name)
	for _, p := range bill.People {
		if strings.EqualFold(p.Name, trimmed) {
			return nil, &models.ValidationError{Field: "name", Reason: "already taken"}
		}
	}
	return AddPerson(bill, name)
}

// RemovePerson deletes a participant and removes them from every owner set and
// from the paid list.
func RemovePerson(bill *models.Bill, personID string) error {
	if err := requireOpen(bill, "remove person"); err != nil {
		return err
	}
	if _, err := findPerson(bill, personID); err != nil {
		return err
	}
	bill.People = slices.DeleteFunc(bill.People, func(p models.Person) bool {
		return p.ID == personID
	})
	for i := range bill.Items {
		bill.Items[i].RemoveOwner(personID)
	}
	bill.PaidBy = slices.DeleteFunc(bill.PaidBy, func(id string) bool {
		return id == personID
	})
	return nil
}

// AddItem appends an unassigned item to the bill.
func AddItem(bill *models.Bill, name string, unitPrice money.Money, quantity int64) (*models.Item, error) {
	if err := requireOpen(bill, "add item"); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if unitPrice.IsNegative() {
		return nil, &models.ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}
	if quantity < 1 {
		return nil, &models.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if err := money.Zero(bill.Currency).SameCurrency(unitPrice); err != nil {
		return nil, err
	}
	line, err := unitPrice.Times(quantity)
	if err != nil {
		return nil, &models.ValidationError{Field: "quantity", Reason: err.Error()}
	}
	total, err := bill.ItemsTotal()
	if err != nil {
		return nil, err
	}
	if _, err := total.Add(line); err != nil {
		return nil, &models.ValidationError{Field: "unit_price", Reason: "bill total " + err.Error()}
	}

	bill.Items = append(bill.Items, models.Item{
		ID:        uuid.NewString(),
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Owners:    []string{},
	})
	return &bill.Items[len(bill.Items)-1], nil
}

// RemoveItem deletes an item from an open bill.
func RemoveItem(bill *models.Bill, itemID string) error {
	if err := requireOpen(bill, "remove item"); err != nil {
		return err
	}
	if _, err := findItem(bill, itemID); err != nil {
		return err
	}
	bill.Items = slices.DeleteFunc(bill.Items, func(it models.Item) bool {
		return it.ID == itemID
	})
	return nil
}

// SetRates replaces the tax and tip percentages.
func SetRates(bill *models.Bill, taxRate, tipRate decimal.Decimal) error {
	if err := requireOpen(bill, "update rates"); err != nil {
		return err
	}
	if err := money.ValidateRate(taxRate); err != nil {
		return &models.ValidationError{Field: "tax_rate", Reason: err.Error()}
	}
	if err := money.ValidateRate(tipRate); err != nil {
		return &models.ValidationError{Field: "tip_rate", Reason: err.Error()}
	}
	bill.TaxRate = taxRate
	bill.TipRate = tipRate
	return nil
}

// SetTitle renames the bill.
func SetTitle(bill *models.Bill, title string) error {
	if err := requireOpen(bill, "update title"); err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		return &models.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	bill.Title = models.NormalizeTitle(title)
	return nil
}

// SetPaymentHandle sets the collector handle used for payment links. Allowed on
// finalized bills.
func SetPaymentHandle(bill *models.Bill, handle string) {
	bill.PaymentHandle = normalizeHandle(handle)
}

// SetPersonPaymentHandle records where a participant can be paid.
func SetPersonPaymentHandle(bill *models.Bill, personID, handle string) error {
	if err := requireOpen(bill, "update person"); err != nil {
		return err
	}
	person, err := findPerson(bill, personID)
	if err != nil {
		return err
	}
	person.PaymentHandle = normalizeHandle(handle)
	return nil
}

func normalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// MarkPaid records whether a participant has paid. Allowed on finalized bills.
func MarkPaid(bill *models.Bill, personID string, paid bool) error {
	if _, err := findPerson(bill, personID); err != nil {
		return err
	}
	has := bill.HasPaid(personID)
	switch {
	case paid && !has:
		bill.PaidBy = append(bill.PaidBy, personID)
	case !paid && has:
		bill.PaidBy = slices.DeleteFunc(bill.PaidBy, func(id string) bool {
			return id == personID
		})
	}
	return nil
}

// Finalize freezes the bill. There is no way back to OPEN.
func Finalize(bill *models.Bill) error {
	if err := requireOpen(bill, "finalize"); err != nil {
		return err
	}
	bill.Status = models.StatusFinalized
	return nil
}
