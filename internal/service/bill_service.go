package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/divvy/internal/assign"
	"github.com/mmynk/divvy/internal/calculator"
	"github.com/mmynk/divvy/internal/metrics"
	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/money"
	"github.com/mmynk/divvy/internal/paylink"
	"github.com/mmynk/divvy/internal/receipt"
	"github.com/mmynk/divvy/internal/storage"
	"github.com/mmynk/divvy/pkg/api"
	"github.com/mmynk/divvy/pkg/api/apiconnect"
)

// BillService implements the Connect BillService.
//
// Every mutation loads the bill, applies one operation from package assign and saves
// it with the loaded version. A save that loses a race is retried from a fresh load.
type BillService struct {
	apiconnect.UnimplementedBillServiceHandler
	store storage.Store

	metrics         *metrics.Metrics
	defaultCurrency money.Currency
	maxRetries      int
	linkTemplate    string
	fintocUsername  string
}

var _ apiconnect.BillServiceHandler = (*BillService)(nil)

// Option configures a BillService.
type Option func(*BillService)

// WithMetrics records mutations and store conflicts in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *BillService) { s.metrics = m }
}

// WithDefaultCurrency sets the currency of bills created without one.
func WithDefaultCurrency(c money.Currency) Option {
	return func(s *BillService) { s.defaultCurrency = c }
}

// WithMaxRetries sets how many times a mutation is attempted when saves conflict.
func WithMaxRetries(n int) Option {
	return func(s *BillService) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithPaylinks configures payment links: a URL template, or a Fintoc username used
// when a bill has no payment handle of its own.
func WithPaylinks(template, fintocUsername string) Option {
	return func(s *BillService) {
		s.linkTemplate = template
		s.fintocUsername = fintocUsername
	}
}

// NewBillService creates a new BillService with the given storage backend.
func NewBillService(store storage.Store, opts ...Option) *BillService {
	s := &BillService{
		store:           store,
		defaultCurrency: "USD",
		maxRetries:      3,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New(prometheus.NewRegistry())
	}
	return s
}

// mutate runs fn against the latest stored bill and saves the result, retrying when
// another writer saved in between.
func (s *BillService) mutate(ctx context.Context, billID, op string, fn func(bill *models.Bill) error) (*models.Bill, error) {
	if billID == "" {
		return nil, &models.ValidationError{Field: "bill_id", Reason: "required"}
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		bill, err := s.store.GetBill(ctx, billID)
		if err != nil {
			return nil, err
		}
		if err := fn(bill); err != nil {
			return nil, err
		}

		err = s.store.SaveBill(ctx, bill)
		if err == nil {
			s.metrics.BillMutations.WithLabelValues(op).Inc()
			slog.Debug("Bill saved", "bill_id", billID, "op", op, "version", bill.Version)
			return bill, nil
		}
		if !errors.Is(err, storage.ErrConflict) {
			return nil, err
		}
		s.metrics.StoreConflicts.Inc()
		slog.Warn("Bill changed concurrently, retrying", "bill_id", billID, "op", op, "attempt", attempt)
		lastErr = err
	}
	return nil, fmt.Errorf("%s: gave up after %d attempts: %w", op, s.maxRetries, lastErr)
}

// toConnectError maps domain errors to Connect codes.
func toConnectError(procedure string, err error) error {
	var (
		validationErr *models.ValidationError
		notFoundErr   *models.NotFoundError
		stateErr      *models.InvalidStateError
		mismatchErr   *money.CurrencyMismatchError
	)
	switch {
	case errors.As(err, &validationErr):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.As(err, &notFoundErr):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.As(err, &stateErr):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAborted, err)
	case errors.As(err, &mismatchErr):
		slog.Error("Currency mismatch reached the service", "procedure", procedure, "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
	slog.Error(procedure+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, err)
}

// billResponse renders bill, or maps err.
func billResponse(procedure string, bill *models.Bill, err error) (*connect.Response[api.BillResponse], error) {
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	out, err := toAPIBill(bill)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	return connect.NewResponse(&api.BillResponse{Bill: out}), nil
}

// splitOf computes the split of a bill with collection progress and payment links.
func (s *BillService) splitOf(bill *models.Bill) (*api.SplitResult, error) {
	split, err := calculator.CalculateSplit(bill)
	if err != nil {
		return nil, err
	}
	coll := calculator.Collect(split, bill.PaidBy)

	collector := bill.PaymentHandle
	if collector == "" {
		collector = s.fintocUsername
	}
	links := paylink.New(s.linkTemplate, collector)

	slog.Debug("Split calculated",
		"bill_id", bill.ID,
		"people", len(split.People),
		"unassigned", len(split.Unassigned),
		"total", split.Total.String(),
	)
	return toAPISplit(split, coll, links, bill.Title), nil
}

// CreateBill creates a bill from a title, rates, people and items.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	const procedure = "CreateBill"

	bill, err := s.newBill(req.Msg)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, toConnectError(procedure, err)
	}
	s.metrics.BillMutations.WithLabelValues("create_bill").Inc()
	slog.Info("Bill created", "bill_id", bill.ID, "items", len(bill.Items), "people", len(bill.People))

	out, err := toAPIBill(bill)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	return connect.NewResponse(&api.CreateBillResponse{Bill: out}), nil
}

func (s *BillService) newBill(msg *api.CreateBillRequest) (*models.Bill, error) {
	currency, err := parseCurrency(msg.Currency, s.defaultCurrency)
	if err != nil {
		return nil, err
	}
	taxRate, err := parseRate("tax_rate", msg.TaxRate)
	if err != nil {
		return nil, err
	}
	tipRate, err := parseRate("tip_rate", msg.TipRate)
	if err != nil {
		return nil, err
	}

	bill := models.NewBill(msg.Title, currency)
	if err := assign.SetRates(bill, taxRate, tipRate); err != nil {
		return nil, err
	}
	assign.SetPaymentHandle(bill, msg.PaymentHandle)
	for _, name := range msg.People {
		if _, err := assign.JoinBill(bill, name); err != nil {
			return nil, err
		}
	}
	for _, it := range msg.Items {
		if _, err := assign.AddItem(bill, it.Name, money.New(it.UnitPrice, currency), quantityOrOne(it.Quantity)); err != nil {
			return nil, err
		}
	}
	return bill, nil
}

// GetBill returns a bill and its current split.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	const procedure = "GetBill"

	bill, err := s.store.GetBill(ctx, req.Msg.BillId)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	out, err := toAPIBill(bill)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	split, err := s.splitOf(bill)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	return connect.NewResponse(&api.GetBillResponse{Bill: out, Split: split}), nil
}

// ListBills lists bill summaries, newest first.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	summaries, err := s.store.ListBills(ctx)
	if err != nil {
		return nil, toConnectError("ListBills", err)
	}
	out := make([]api.BillSummary, 0, len(summaries))
	for _, sum := range summaries {
		out = append(out, toAPISummary(sum))
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: out}), nil
}

// DeleteBill deletes a bill.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	if req.Msg.BillId == "" {
		return nil, toConnectError("DeleteBill", &models.ValidationError{Field: "bill_id", Reason: "required"})
	}
	if err := s.store.DeleteBill(ctx, req.Msg.BillId); err != nil {
		return nil, toConnectError("DeleteBill", err)
	}
	s.metrics.BillMutations.WithLabelValues("delete_bill").Inc()
	slog.Info("Bill deleted", "bill_id", req.Msg.BillId)
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}

// UpdateTitle renames a bill.
func (s *BillService) UpdateTitle(ctx context.Context, req *connect.Request[api.UpdateTitleRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillId, "update_title", func(bill *models.Bill) error {
		return assign.SetTitle(bill, req.Msg.Title)
	})
	return billResponse("UpdateTitle", bill, err)
}

// UpdateRates sets the tax and tip percentages.
func (s *BillService) UpdateRates(ctx context.Context, req *connect.Request[api.UpdateRatesRequest]) (*connect.Response[api.BillResponse], error) {
	taxRate, err := parseRate("tax_rate", req.Msg.TaxRate)
	if err != nil {
		return nil, toConnectError("UpdateRates", err)
	}
	tipRate, err := parseRate("tip_rate", req.Msg.TipRate)
	if err != nil {
		return nil, toConnectError("UpdateRates", err)
	}
	bill, err := s.mutate(ctx, req.Msg.BillId, "update_rates", func(bill *models.Bill) error {
		return assign.SetRates(bill, taxRate, tipRate)
	})
	return billResponse("UpdateRates", bill, err)
}

// UpdatePaymentHandle sets the collector handle. Allowed on finalized bills.
func (s *BillService) UpdatePaymentHandle(ctx context.Context, req *connect.Request[api.UpdatePaymentHandleRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillId, "update_payment_handle", func(bill *models.Bill) error {
		assign.SetPaymentHandle(bill, req.Msg.PaymentHandle)
		return nil
	})
	return billResponse("UpdatePaymentHandle", bill, err)
}

// AddPerson adds a participant.
func (s *BillService) AddPerson(ctx context.Context, req *connect.Request[api.AddPersonRequest]) (*connect.Response[api.PersonResponse], error) {
	return s.addPerson(ctx, "AddPerson", "add_person", req.Msg.BillId, req.Msg.Name, assign.AddPerson)
}

// JoinBill adds a participant whose name is not already taken.
func (s *BillService) JoinBill(ctx context.Context, req *connect.Request[api.JoinBillRequest]) (*connect.Response[api.PersonResponse], error) {
	return s.addPerson(ctx, "JoinBill", "join_bill", req.Msg.BillId, req.Msg.Name, assign.JoinBill)
}

func (s *BillService) addPerson(ctx context.Context, procedure, op, billID, name string,
	add func(*models.Bill, string) (*models.Person, error),
) (*connect.Response[api.PersonResponse], error) {
	var person models.Person
	bill, err := s.mutate(ctx, billID, op, func(bill *models.Bill) error {
		p, err := add(bill, name)
		if err != nil {
			return err
		}
		person = *p
		return nil
	})
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	out, err := toAPIBill(bill)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	p := toAPIPerson(person, false)
	slog.Info("Person added", "bill_id", billID, "person_id", person.ID)
	return connect.NewResponse(&api.PersonResponse{Person: &p, Bill: out}), nil
}

// RemovePerson removes a participant and every claim they made.
func (s *BillService) RemovePerson(ctx context.Context, req *connect.Request[api.RemovePersonRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillId, "remove_person", func(bill *models.Bill) error {
		return assign.RemovePerson(bill, req.Msg.PersonId)
	})
	return billResponse("RemovePerson", bill, err)
}

// UpdatePersonPaymentHandle sets a participant's payment handle.
func (s *BillService) UpdatePersonPaymentHandle(ctx context.Context, req *connect.Request[api.UpdatePersonPaymentHandleRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillId, "update_person", func(bill *models.Bill) error {
		return assign.SetPersonPaymentHandle(bill, req.Msg.PersonId, req.Msg.PaymentHandle)
	})
	return billResponse("UpdatePersonPaymentHandle", bill, err)
}

// AddItem adds an unassigned item. UnitPrice is in minor units of the bill currency.
func (s *BillService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error) {
	const procedure = "AddItem"

	var itemID string
	bill, err := s.mutate(ctx, req.Msg.BillId, "add_item", func(bill *models.Bill) error {
		price := money.New(req.Msg.UnitPrice, bill.Currency)
		it, err := assign.AddItem(bill, req.Msg.Name, price, quantityOrOne(req.Msg.Quantity))
		if err != nil {
			return err
		}
		itemID = it.ID
		return nil
	})
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	out, err := toAPIBill(bill)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	item, err := toAPIItem(*bill.FindItem(itemID))
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	return connect.NewResponse(&api.ItemResponse{Item: &item, Bill: out}), nil
}

// RemoveItem removes an item.
func (s *BillService) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillId, "remove_item", func(bill *models.Bill) error {
		return assign.RemoveItem(bill, req.Msg.ItemId)
	})
	return billResponse("RemoveItem", bill, err)
}

// AssignItem adds a person to an item's owners.
func (s *BillService) AssignItem(ctx context.Context, req *connect.Request[api.AssignItemRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillId, "assign_item", func(bill *models.Bill) error {
		return assign.AssignItem(bill, req.Msg.ItemId, req.Msg.PersonId)
	})
	return billResponse("AssignItem", bill, err)
}

// UnassignItem removes a person from an item's owners.
func (s *BillService) UnassignItem(ctx context.Context, req *connect.Request[api.UnassignItemRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillId, "unassign_item", func(bill *models.Bill) error {
		return assign.UnassignItem(bill, req.Msg.ItemId, req.Msg.PersonId)
	})
	return billResponse("UnassignItem", bill, err)
}

// SelfAssign toggles a participant's own claim on an item.
func (s *BillService) SelfAssign(ctx context.Context, req *connect.Request[api.SelfAssignRequest]) (*connect.Response[api.SelfAssignResponse], error) {
	const procedure = "SelfAssign"

	var assigned bool
	bill, err := s.mutate(ctx, req.Msg.BillId, "self_assign", func(bill *models.Bill) error {
		var err error
		assigned, err = assign.SelfAssign(bill, req.Msg.ItemId, req.Msg.PersonId)
		return err
	})
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	out, err := toAPIBill(bill)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	return connect.NewResponse(&api.SelfAssignResponse{Assigned: assigned, Bill: out}), nil
}

// MarkPaid records whether a participant has paid. Allowed on finalized bills.
func (s *BillService) MarkPaid(ctx context.Context, req *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillId, "mark_paid", func(bill *models.Bill) error {
		return assign.MarkPaid(bill, req.Msg.PersonId, req.Msg.Paid)
	})
	return billResponse("MarkPaid", bill, err)
}

// FinalizeBill freezes a bill.
func (s *BillService) FinalizeBill(ctx context.Context, req *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillId, "finalize", assign.Finalize)
	if err == nil {
		slog.Info("Bill finalized", "bill_id", bill.ID)
	}
	return billResponse("FinalizeBill", bill, err)
}

// ImportReceipt seeds a bill from receipt-reader output, creating the bill when no ID
// is given.
func (s *BillService) ImportReceipt(ctx context.Context, req *connect.Request[api.ImportReceiptRequest]) (*connect.Response[api.BillResponse], error) {
	const procedure = "ImportReceipt"

	if req.Msg.BillId != "" {
		bill, err := s.mutate(ctx, req.Msg.BillId, "import_receipt", func(bill *models.Bill) error {
			ex, err := receipt.ParseExtraction(req.Msg.Extraction, bill.Currency)
			if err != nil {
				return err
			}
			return receipt.Seed(bill, ex)
		})
		return billResponse(procedure, bill, err)
	}

	currency, err := parseCurrency(req.Msg.Currency, s.defaultCurrency)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	ex, err := receipt.ParseExtraction(req.Msg.Extraction, currency)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	bill := models.NewBill(req.Msg.Title, currency)
	if err := receipt.Seed(bill, ex); err != nil {
		return nil, toConnectError(procedure, err)
	}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, toConnectError(procedure, err)
	}
	s.metrics.BillMutations.WithLabelValues("import_receipt").Inc()
	slog.Info("Receipt imported", "bill_id", bill.ID, "items", len(bill.Items))
	return billResponse(procedure, bill, nil)
}

// CalculateSplit computes what everyone owes on a bill.
func (s *BillService) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	const procedure = "CalculateSplit"

	bill, err := s.store.GetBill(ctx, req.Msg.BillId)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	split, err := s.splitOf(bill)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	return connect.NewResponse(&api.CalculateSplitResponse{Split: split}), nil
}
