// Package api defines the request and response messages of divvy.v1.BillService.
//
// Messages travel as JSON with camelCase field names. Money is always an integer amount
// of minor units plus an ISO-4217 currency code; percentage rates are decimal strings
// so that no precision is lost in transit.
package api

// Money is an amount in minor units.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Person is a participant of a bill.
type Person struct {
	Id            string `json:"id"`
	Name          string `json:"name"`
	PaymentHandle string `json:"paymentHandle,omitempty"`
	Paid          bool   `json:"paid"`
}

// Item is a receipt line.
type Item struct {
	Id        string   `json:"id"`
	Name      string   `json:"name"`
	UnitPrice Money    `json:"unitPrice"`
	Quantity  int64    `json:"quantity"`
	LineTotal Money    `json:"lineTotal"`
	OwnerIds  []string `json:"ownerIds"`
}

// Bill is the full state of a bill.
type Bill struct {
	Id            string   `json:"id"`
	Title         string   `json:"title"`
	Currency      string   `json:"currency"`
	Items         []Item   `json:"items"`
	People        []Person `json:"people"`
	TaxRate       string   `json:"taxRate"`
	TipRate       string   `json:"tipRate"`
	PaymentHandle string   `json:"paymentHandle,omitempty"`
	Status        string   `json:"status"`
	Version       int64    `json:"version"`
	CreatedAt     int64    `json:"createdAt"`
	ItemsTotal    Money    `json:"itemsTotal"`
}

// BillSummary is a bill in a listing.
type BillSummary struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	ItemCount   int32  `json:"itemCount"`
	PeopleCount int32  `json:"peopleCount"`
	ItemsTotal  Money  `json:"itemsTotal"`
	CreatedAt   int64  `json:"createdAt"`
}

// PersonItem is one person's share of one item.
type PersonItem struct {
	ItemId string `json:"itemId"`
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

// PersonSplit is what one person owes.
type PersonSplit struct {
	PersonId    string       `json:"personId"`
	Name        string       `json:"name"`
	Subtotal    Money        `json:"subtotal"`
	Tax         Money        `json:"tax"`
	Tip         Money        `json:"tip"`
	Total       Money        `json:"total"`
	Items       []PersonItem `json:"items"`
	Paid        bool         `json:"paid"`
	PaymentLink string       `json:"paymentLink,omitempty"`
}

// UnassignedItem is an item nobody claimed.
type UnassignedItem struct {
	ItemId    string `json:"itemId"`
	Name      string `json:"name"`
	LineTotal Money  `json:"lineTotal"`
}

// SplitResult is the computed split of a bill.
type SplitResult struct {
	Currency         string           `json:"currency"`
	People           []PersonSplit    `json:"people"`
	Unassigned       []UnassignedItem `json:"unassigned"`
	ItemsTotal       Money            `json:"itemsTotal"`
	AssignedSubtotal Money            `json:"assignedSubtotal"`
	UnassignedTotal  Money            `json:"unassignedTotal"`
	Tax              Money            `json:"tax"`
	Tip              Money            `json:"tip"`
	Total            Money            `json:"total"`
	Collected        Money            `json:"collected"`
	Outstanding      Money            `json:"outstanding"`
	Settled          bool             `json:"settled"`
}

// NewItem describes an item to create. UnitPrice is in minor units; a zero Quantity
// means 1.
type NewItem struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int64  `json:"quantity"`
}

type CreateBillRequest struct {
	Title         string    `json:"title"`
	Currency      string    `json:"currency"`
	TaxRate       string    `json:"taxRate"`
	TipRate       string    `json:"tipRate"`
	PaymentHandle string    `json:"paymentHandle"`
	People        []string  `json:"people"`
	Items         []NewItem `json:"items"`
}

type CreateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type GetBillRequest struct {
	BillId string `json:"billId"`
}

type GetBillResponse struct {
	Bill  *Bill        `json:"bill"`
	Split *SplitResult `json:"split"`
}

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []BillSummary `json:"bills"`
}

type DeleteBillRequest struct {
	BillId string `json:"billId"`
}

type DeleteBillResponse struct{}

// BillResponse carries the bill after a mutation.
type BillResponse struct {
	Bill *Bill `json:"bill"`
}

type UpdateTitleRequest struct {
	BillId string `json:"billId"`
	Title  string `json:"title"`
}

type UpdateRatesRequest struct {
	BillId  string `json:"billId"`
	TaxRate string `json:"taxRate"`
	TipRate string `json:"tipRate"`
}

type UpdatePaymentHandleRequest struct {
	BillId        string `json:"billId"`
	PaymentHandle string `json:"paymentHandle"`
}

type AddPersonRequest struct {
	BillId string `json:"billId"`
	Name   string `json:"name"`
}

type JoinBillRequest struct {
	BillId string `json:"billId"`
	Name   string `json:"name"`
}

// PersonResponse carries the created person and the bill.
type PersonResponse struct {
	Person *Person `json:"person"`
	Bill   *Bill   `json:"bill"`
}

type RemovePersonRequest struct {
	BillId   string `json:"billId"`
	PersonId string `json:"personId"`
}

type UpdatePersonPaymentHandleRequest struct {
	BillId        string `json:"billId"`
	PersonId      string `json:"personId"`
	PaymentHandle string `json:"paymentHandle"`
}

type AddItemRequest struct {
	BillId    string `json:"billId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int64  `json:"quantity"`
}

// ItemResponse carries the created item and the bill.
type ItemResponse struct {
	Item *Item `json:"item"`
	Bill *Bill `json:"bill"`
}

type RemoveItemRequest struct {
	BillId string `json:"billId"`
	ItemId string `json:"itemId"`
}

type AssignItemRequest struct {
	BillId   string `json:"billId"`
	ItemId   string `json:"itemId"`
	PersonId string `json:"personId"`
}

type UnassignItemRequest struct {
	BillId   string `json:"billId"`
	ItemId   string `json:"itemId"`
	PersonId string `json:"personId"`
}

type SelfAssignRequest struct {
	BillId   string `json:"billId"`
	ItemId   string `json:"itemId"`
	PersonId string `json:"personId"`
}

type SelfAssignResponse struct {
	Assigned bool  `json:"assigned"`
	Bill     *Bill `json:"bill"`
}

type MarkPaidRequest struct {
	BillId   string `json:"billId"`
	PersonId string `json:"personId"`
	Paid     bool   `json:"paid"`
}

type FinalizeBillRequest struct {
	BillId string `json:"billId"`
}

// ImportReceiptRequest seeds a bill from receipt-reader output. With an empty BillId a
// new bill is created from Title and Currency.
type ImportReceiptRequest struct {
	BillId     string `json:"billId"`
	Title      string `json:"title"`
	Currency   string `json:"currency"`
	Extraction string `json:"extraction"`
}

type CalculateSplitRequest struct {
	BillId string `json:"billId"`
}

type CalculateSplitResponse struct {
	Split *SplitResult `json:"split"`
}
