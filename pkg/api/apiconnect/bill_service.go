// Package apiconnect wires divvy.v1.BillService to Connect handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/divvy/pkg/api"
)

// BillServiceName is the fully-qualified name of the BillService service.
const BillServiceName = "divvy.v1.BillService"

// Procedure names of BillService, as they appear in URL paths.
const (
	BillServiceCreateBillProcedure                = "/divvy.v1.BillService/CreateBill"
	BillServiceGetBillProcedure                   = "/divvy.v1.BillService/GetBill"
	BillServiceListBillsProcedure                 = "/divvy.v1.BillService/ListBills"
	BillServiceDeleteBillProcedure                = "/divvy.v1.BillService/DeleteBill"
	BillServiceUpdateTitleProcedure               = "/divvy.v1.BillService/UpdateTitle"
	BillServiceUpdateRatesProcedure               = "/divvy.v1.BillService/UpdateRates"
	BillServiceUpdatePaymentHandleProcedure       = "/divvy.v1.BillService/UpdatePaymentHandle"
	BillServiceAddPersonProcedure                 = "/divvy.v1.BillService/AddPerson"
	BillServiceJoinBillProcedure                  = "/divvy.v1.BillService/JoinBill"
	BillServiceRemovePersonProcedure              = "/divvy.v1.BillService/RemovePerson"
	BillServiceUpdatePersonPaymentHandleProcedure = "/divvy.v1.BillService/UpdatePersonPaymentHandle"
	BillServiceAddItemProcedure                   = "/divvy.v1.BillService/AddItem"
	BillServiceRemoveItemProcedure                = "/divvy.v1.BillService/RemoveItem"
	BillServiceAssignItemProcedure                = "/divvy.v1.BillService/AssignItem"
	BillServiceUnassignItemProcedure              = "/divvy.v1.BillService/UnassignItem"
	BillServiceSelfAssignProcedure                = "/divvy.v1.BillService/SelfAssign"
	BillServiceMarkPaidProcedure                  = "/divvy.v1.BillService/MarkPaid"
	BillServiceFinalizeBillProcedure              = "/divvy.v1.BillService/FinalizeBill"
	BillServiceImportReceiptProcedure             = "/divvy.v1.BillService/ImportReceipt"
	BillServiceCalculateSplitProcedure            = "/divvy.v1.BillService/CalculateSplit"
)

// BillServiceClient is a client for the divvy.v1.BillService service.
type BillServiceClient interface {
	// CreateBill creates a bill, optionally with people and items.
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	// GetBill returns a bill and its current split.
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	// ListBills lists bill summaries, newest first.
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	// DeleteBill deletes a bill.
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	// UpdateTitle renames a bill.
	UpdateTitle(context.Context, *connect.Request[api.UpdateTitleRequest]) (*connect.Response[api.BillResponse], error)
	// UpdateRates sets the tax and tip percentages.
	UpdateRates(context.Context, *connect.Request[api.UpdateRatesRequest]) (*connect.Response[api.BillResponse], error)
	// UpdatePaymentHandle sets the collector handle used for payment links.
	UpdatePaymentHandle(context.Context, *connect.Request[api.UpdatePaymentHandleRequest]) (*connect.Response[api.BillResponse], error)
	// AddPerson adds a participant.
	AddPerson(context.Context, *connect.Request[api.AddPersonRequest]) (*connect.Response[api.PersonResponse], error)
	// JoinBill adds a participant whose name must not be taken.
	JoinBill(context.Context, *connect.Request[api.JoinBillRequest]) (*connect.Response[api.PersonResponse], error)
	// RemovePerson removes a participant and their claims.
	RemovePerson(context.Context, *connect.Request[api.RemovePersonRequest]) (*connect.Response[api.BillResponse], error)
	// UpdatePersonPaymentHandle sets a participant's payment handle.
	UpdatePersonPaymentHandle(context.Context, *connect.Request[api.UpdatePersonPaymentHandleRequest]) (*connect.Response[api.BillResponse], error)
	// AddItem adds an unassigned item.
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error)
	// RemoveItem removes an item.
	RemoveItem(context.Context, *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.BillResponse], error)
	// AssignItem adds a person to an item's owners.
	AssignItem(context.Context, *connect.Request[api.AssignItemRequest]) (*connect.Response[api.BillResponse], error)
	// UnassignItem removes a person from an item's owners.
	UnassignItem(context.Context, *connect.Request[api.UnassignItemRequest]) (*connect.Response[api.BillResponse], error)
	// SelfAssign toggles the caller's claim on an item.
	SelfAssign(context.Context, *connect.Request[api.SelfAssignRequest]) (*connect.Response[api.SelfAssignResponse], error)
	// MarkPaid records whether a participant has paid.
	MarkPaid(context.Context, *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.BillResponse], error)
	// FinalizeBill freezes a bill.
	FinalizeBill(context.Context, *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.BillResponse], error)
	// ImportReceipt seeds a bill from receipt-reader output.
	ImportReceipt(context.Context, *connect.Request[api.ImportReceiptRequest]) (*connect.Response[api.BillResponse], error)
	// CalculateSplit computes what everyone owes.
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
}

// NewBillServiceClient constructs a client for the divvy.v1.BillService service. The JSON
// codec is always installed; opts are applied after it.
//
// The URL supplied here should be the base URL for the Connect server
// (for example, http://api.acme.com or https://acme.com/grpc).
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	idempotentOpts := append(slices.Clone(opts), connect.WithIdempotency(connect.IdempotencyNoSideEffects))
	return &billServiceClient{
		createBill: connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](
			httpClient,
			baseURL+BillServiceCreateBillProcedure,
			opts...,
		),
		getBill: connect.NewClient[api.GetBillRequest, api.GetBillResponse](
			httpClient,
			baseURL+BillServiceGetBillProcedure,
			idempotentOpts...,
		),
		listBills: connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](
			httpClient,
			baseURL+BillServiceListBillsProcedure,
			idempotentOpts...,
		),
		deleteBill: connect.NewClient[api.DeleteBillRequest, api.DeleteBillResponse](
			httpClient,
			baseURL+BillServiceDeleteBillProcedure,
			opts...,
		),
		updateTitle: connect.NewClient[api.UpdateTitleRequest, api.BillResponse](
			httpClient,
			baseURL+BillServiceUpdateTitleProcedure,
			opts...,
		),
		updateRates: connect.NewClient[api.UpdateRatesRequest, api.BillResponse](
			httpClient,
			baseURL+BillServiceUpdateRatesProcedure,
			opts...,
		),
		updatePaymentHandle: connect.NewClient[api.UpdatePaymentHandleRequest, api.BillResponse](
			httpClient,
			baseURL+BillServiceUpdatePaymentHandleProcedure,
			opts...,
		),
		addPerson: connect.NewClient[api.AddPersonRequest, api.PersonResponse](
			httpClient,
			baseURL+BillServiceAddPersonProcedure,
			opts...,
		),
		joinBill: connect.NewClient[api.JoinBillRequest, api.PersonResponse](
			httpClient,
			baseURL+BillServiceJoinBillProcedure,
			opts...,
		),
		removePerson: connect.NewClient[api.RemovePersonRequest, api.BillResponse](
			httpClient,
			baseURL+BillServiceRemovePersonProcedure,
			opts...,
		),
		updatePersonPaymentHandle: connect.NewClient[api.UpdatePersonPaymentHandleRequest, api.BillResponse](
			httpClient,
			baseURL+BillServiceUpdatePersonPaymentHandleProcedure,
			opts...,
		),
		addItem: connect.NewClient[api.AddItemRequest, api.ItemResponse](
			httpClient,
			baseURL+BillServiceAddItemProcedure,
			opts...,
		),
		removeItem: connect.NewClient[api.RemoveItemRequest, api.BillResponse](
			httpClient,
			baseURL+BillServiceRemoveItemProcedure,
			opts...,
		),
		assignItem: connect.NewClient[api.AssignItemRequest, api.BillResponse](
			httpClient,
			baseURL+BillServiceAssignItemProcedure,
			opts...,
		),
		unassignItem: connect.NewClient[api.UnassignItemRequest, api.BillResponse](
			httpClient,
			baseURL+BillServiceUnassignItemProcedure,
			opts...,
		),
		selfAssign: connect.NewClient[api.SelfAssignRequest, api.SelfAssignResponse](
			httpClient,
			baseURL+BillServiceSelfAssignProcedure,
			opts...,
		),
		markPaid: connect.NewClient[api.MarkPaidRequest, api.BillResponse](
			httpClient,
			baseURL+BillServiceMarkPaidProcedure,
			opts...,
		),
		finalizeBill: connect.NewClient[api.FinalizeBillRequest, api.BillResponse](
			httpClient,
			baseURL+BillServiceFinalizeBillProcedure,
			opts...,
		),
		importReceipt: connect.NewClient[api.ImportReceiptRequest, api.BillResponse](
			httpClient,
			baseURL+BillServiceImportReceiptProcedure,
			opts...,
		),
		calculateSplit: connect.NewClient[api.CalculateSplitRequest, api.CalculateSplitResponse](
			httpClient,
			baseURL+BillServiceCalculateSplitProcedure,
			idempotentOpts...,
		),
	}
}

// billServiceClient implements BillServiceClient.
type billServiceClient struct {
	createBill                *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	getBill                   *connect.Client[api.GetBillRequest, api.GetBillResponse]
	listBills                 *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	deleteBill                *connect.Client[api.DeleteBillRequest, api.DeleteBillResponse]
	updateTitle               *connect.Client[api.UpdateTitleRequest, api.BillResponse]
	updateRates               *connect.Client[api.UpdateRatesRequest, api.BillResponse]
	updatePaymentHandle       *connect.Client[api.UpdatePaymentHandleRequest, api.BillResponse]
	addPerson                 *connect.Client[api.AddPersonRequest, api.PersonResponse]
	joinBill                  *connect.Client[api.JoinBillRequest, api.PersonResponse]
	removePerson              *connect.Client[api.RemovePersonRequest, api.BillResponse]
	updatePersonPaymentHandle *connect.Client[api.UpdatePersonPaymentHandleRequest, api.BillResponse]
	addItem                   *connect.Client[api.AddItemRequest, api.ItemResponse]
	removeItem                *connect.Client[api.RemoveItemRequest, api.BillResponse]
	assignItem                *connect.Client[api.AssignItemRequest, api.BillResponse]
	unassignItem              *connect.Client[api.UnassignItemRequest, api.BillResponse]
	selfAssign                *connect.Client[api.SelfAssignRequest, api.SelfAssignResponse]
	markPaid                  *connect.Client[api.MarkPaidRequest, api.BillResponse]
	finalizeBill              *connect.Client[api.FinalizeBillRequest, api.BillResponse]
	importReceipt             *connect.Client[api.ImportReceiptRequest, api.BillResponse]
	calculateSplit            *connect.Client[api.CalculateSplitRequest, api.CalculateSplitResponse]
}

// CreateBill calls divvy.v1.BillService.CreateBill.
func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

// GetBill calls divvy.v1.BillService.GetBill.
func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

// ListBills calls divvy.v1.BillService.ListBills.
func (c *billServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

// DeleteBill calls divvy.v1.BillService.DeleteBill.
func (c *billServiceClient) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

// UpdateTitle calls divvy.v1.BillService.UpdateTitle.
func (c *billServiceClient) UpdateTitle(ctx context.Context, req *connect.Request[api.UpdateTitleRequest]) (*connect.Response[api.BillResponse], error) {
	return c.updateTitle.CallUnary(ctx, req)
}

// UpdateRates calls divvy.v1.BillService.UpdateRates.
func (c *billServiceClient) UpdateRates(ctx context.Context, req *connect.Request[api.UpdateRatesRequest]) (*connect.Response[api.BillResponse], error) {
	return c.updateRates.CallUnary(ctx, req)
}

// UpdatePaymentHandle calls divvy.v1.BillService.UpdatePaymentHandle.
func (c *billServiceClient) UpdatePaymentHandle(ctx context.Context, req *connect.Request[api.UpdatePaymentHandleRequest]) (*connect.Response[api.BillResponse], error) {
	return c.updatePaymentHandle.CallUnary(ctx, req)
}

// AddPerson calls divvy.v1.BillService.AddPerson.
func (c *billServiceClient) AddPerson(ctx context.Context, req *connect.Request[api.AddPersonRequest]) (*connect.Response[api.PersonResponse], error) {
	return c.addPerson.CallUnary(ctx, req)
}

// JoinBill calls divvy.v1.BillService.JoinBill.
func (c *billServiceClient) JoinBill(ctx context.Context, req *connect.Request[api.JoinBillRequest]) (*connect.Response[api.PersonResponse], error) {
	return c.joinBill.CallUnary(ctx, req)
}

// RemovePerson calls divvy.v1.BillService.RemovePerson.
func (c *billServiceClient) RemovePerson(ctx context.Context, req *connect.Request[api.RemovePersonRequest]) (*connect.Response[api.BillResponse], error) {
	return c.removePerson.CallUnary(ctx, req)
}

// UpdatePersonPaymentHandle calls divvy.v1.BillService.UpdatePersonPaymentHandle.
func (c *billServiceClient) UpdatePersonPaymentHandle(ctx context.Context, req *connect.Request[api.UpdatePersonPaymentHandleRequest]) (*connect.Response[api.BillResponse], error) {
	return c.updatePersonPaymentHandle.CallUnary(ctx, req)
}

// AddItem calls divvy.v1.BillService.AddItem.
func (c *billServiceClient) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

// RemoveItem calls divvy.v1.BillService.RemoveItem.
func (c *billServiceClient) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.BillResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

// AssignItem calls divvy.v1.BillService.AssignItem.
func (c *billServiceClient) AssignItem(ctx context.Context, req *connect.Request[api.AssignItemRequest]) (*connect.Response[api.BillResponse], error) {
	return c.assignItem.CallUnary(ctx, req)
}

// UnassignItem calls divvy.v1.BillService.UnassignItem.
func (c *billServiceClient) UnassignItem(ctx context.Context, req *connect.Request[api.UnassignItemRequest]) (*connect.Response[api.BillResponse], error) {
	return c.unassignItem.CallUnary(ctx, req)
}

// SelfAssign calls divvy.v1.BillService.SelfAssign.
func (c *billServiceClient) SelfAssign(ctx context.Context, req *connect.Request[api.SelfAssignRequest]) (*connect.Response[api.SelfAssignResponse], error) {
	return c.selfAssign.CallUnary(ctx, req)
}

// MarkPaid calls divvy.v1.BillService.MarkPaid.
func (c *billServiceClient) MarkPaid(ctx context.Context, req *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.BillResponse], error) {
	return c.markPaid.CallUnary(ctx, req)
}

// FinalizeBill calls divvy.v1.BillService.FinalizeBill.
func (c *billServiceClient) FinalizeBill(ctx context.Context, req *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.BillResponse], error) {
	return c.finalizeBill.CallUnary(ctx, req)
}

// ImportReceipt calls divvy.v1.BillService.ImportReceipt.
func (c *billServiceClient) ImportReceipt(ctx context.Context, req *connect.Request[api.ImportReceiptRequest]) (*connect.Response[api.BillResponse], error) {
	return c.importReceipt.CallUnary(ctx, req)
}

// CalculateSplit calls divvy.v1.BillService.CalculateSplit.
func (c *billServiceClient) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return c.calculateSplit.CallUnary(ctx, req)
}

// BillServiceHandler is an implementation of the divvy.v1.BillService service.
type BillServiceHandler interface {
	// CreateBill creates a bill, optionally with people and items.
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	// GetBill returns a bill and its current split.
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	// ListBills lists bill summaries, newest first.
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	// DeleteBill deletes a bill.
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	// UpdateTitle renames a bill.
	UpdateTitle(context.Context, *connect.Request[api.UpdateTitleRequest]) (*connect.Response[api.BillResponse], error)
	// UpdateRates sets the tax and tip percentages.
	UpdateRates(context.Context, *connect.Request[api.UpdateRatesRequest]) (*connect.Response[api.BillResponse], error)
	// UpdatePaymentHandle sets the collector handle used for payment links.
	UpdatePaymentHandle(context.Context, *connect.Request[api.UpdatePaymentHandleRequest]) (*connect.Response[api.BillResponse], error)
	// AddPerson adds a participant.
	AddPerson(context.Context, *connect.Request[api.AddPersonRequest]) (*connect.Response[api.PersonResponse], error)
	// JoinBill adds a participant whose name must not be taken.
	JoinBill(context.Context, *connect.Request[api.JoinBillRequest]) (*connect.Response[api.PersonResponse], error)
	// RemovePerson removes a participant and their claims.
	RemovePerson(context.Context, *connect.Request[api.RemovePersonRequest]) (*connect.Response[api.BillResponse], error)
	// UpdatePersonPaymentHandle sets a participant's payment handle.
	UpdatePersonPaymentHandle(context.Context, *connect.Request[api.UpdatePersonPaymentHandleRequest]) (*connect.Response[api.BillResponse], error)
	// AddItem adds an unassigned item.
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error)
	// RemoveItem removes an item.
	RemoveItem(context.Context, *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.BillResponse], error)
	// AssignItem adds a person to an item's owners.
	AssignItem(context.Context, *connect.Request[api.AssignItemRequest]) (*connect.Response[api.BillResponse], error)
	// UnassignItem removes a person from an item's owners.
	UnassignItem(context.Context, *connect.Request[api.UnassignItemRequest]) (*connect.Response[api.BillResponse], error)
	// SelfAssign toggles the caller's claim on an item.
	SelfAssign(context.Context, *connect.Request[api.SelfAssignRequest]) (*connect.Response[api.SelfAssignResponse], error)
	// MarkPaid records whether a participant has paid.
	MarkPaid(context.Context, *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.BillResponse], error)
	// FinalizeBill freezes a bill.
	FinalizeBill(context.Context, *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.BillResponse], error)
	// ImportReceipt seeds a bill from receipt-reader output.
	ImportReceipt(context.Context, *connect.Request[api.ImportReceiptRequest]) (*connect.Response[api.BillResponse], error)
	// CalculateSplit computes what everyone owes.
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
}

// NewBillServiceHandler builds an HTTP handler from the service implementation. It returns
// the path on which to mount the handler and the handler itself.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	idempotentOpts := append(slices.Clone(opts), connect.WithIdempotency(connect.IdempotencyNoSideEffects))
	billServiceCreateBillHandler := connect.NewUnaryHandler(
		BillServiceCreateBillProcedure,
		svc.CreateBill,
		opts...,
	)
	billServiceGetBillHandler := connect.NewUnaryHandler(
		BillServiceGetBillProcedure,
		svc.GetBill,
		idempotentOpts...,
	)
	billServiceListBillsHandler := connect.NewUnaryHandler(
		BillServiceListBillsProcedure,
		svc.ListBills,
		idempotentOpts...,
	)
	billServiceDeleteBillHandler := connect.NewUnaryHandler(
		BillServiceDeleteBillProcedure,
		svc.DeleteBill,
		opts...,
	)
	billServiceUpdateTitleHandler := connect.NewUnaryHandler(
		BillServiceUpdateTitleProcedure,
		svc.UpdateTitle,
		opts...,
	)
	billServiceUpdateRatesHandler := connect.NewUnaryHandler(
		BillServiceUpdateRatesProcedure,
		svc.UpdateRates,
		opts...,
	)
	billServiceUpdatePaymentHandleHandler := connect.NewUnaryHandler(
		BillServiceUpdatePaymentHandleProcedure,
		svc.UpdatePaymentHandle,
		opts...,
	)
	billServiceAddPersonHandler := connect.NewUnaryHandler(
		BillServiceAddPersonProcedure,
		svc.AddPerson,
		opts...,
	)
	billServiceJoinBillHandler := connect.NewUnaryHandler(
		BillServiceJoinBillProcedure,
		svc.JoinBill,
		opts...,
	)
	billServiceRemovePersonHandler := connect.NewUnaryHandler(
		BillServiceRemovePersonProcedure,
		svc.RemovePerson,
		opts...,
	)
	billServiceUpdatePersonPaymentHandleHandler := connect.NewUnaryHandler(
		BillServiceUpdatePersonPaymentHandleProcedure,
		svc.UpdatePersonPaymentHandle,
		opts...,
	)
	billServiceAddItemHandler := connect.NewUnaryHandler(
		BillServiceAddItemProcedure,
		svc.AddItem,
		opts...,
	)
	billServiceRemoveItemHandler := connect.NewUnaryHandler(
		BillServiceRemoveItemProcedure,
		svc.RemoveItem,
		opts...,
	)
	billServiceAssignItemHandler := connect.NewUnaryHandler(
		BillServiceAssignItemProcedure,
		svc.AssignItem,
		opts...,
	)
	billServiceUnassignItemHandler := connect.NewUnaryHandler(
		BillServiceUnassignItemProcedure,
		svc.UnassignItem,
		opts...,
	)
	billServiceSelfAssignHandler := connect.NewUnaryHandler(
		BillServiceSelfAssignProcedure,
		svc.SelfAssign,
		opts...,
	)
	billServiceMarkPaidHandler := connect.NewUnaryHandler(
		BillServiceMarkPaidProcedure,
		svc.MarkPaid,
		opts...,
	)
	billServiceFinalizeBillHandler := connect.NewUnaryHandler(
		BillServiceFinalizeBillProcedure,
		svc.FinalizeBill,
		opts...,
	)
	billServiceImportReceiptHandler := connect.NewUnaryHandler(
		BillServiceImportReceiptProcedure,
		svc.ImportReceipt,
		opts...,
	)
	billServiceCalculateSplitHandler := connect.NewUnaryHandler(
		BillServiceCalculateSplitProcedure,
		svc.CalculateSplit,
		idempotentOpts...,
	)
	return "/divvy.v1.BillService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BillServiceCreateBillProcedure:
			billServiceCreateBillHandler.ServeHTTP(w, r)
		case BillServiceGetBillProcedure:
			billServiceGetBillHandler.ServeHTTP(w, r)
		case BillServiceListBillsProcedure:
			billServiceListBillsHandler.ServeHTTP(w, r)
		case BillServiceDeleteBillProcedure:
			billServiceDeleteBillHandler.ServeHTTP(w, r)
		case BillServiceUpdateTitleProcedure:
			billServiceUpdateTitleHandler.ServeHTTP(w, r)
		case BillServiceUpdateRatesProcedure:
			billServiceUpdateRatesHandler.ServeHTTP(w, r)
		case BillServiceUpdatePaymentHandleProcedure:
			billServiceUpdatePaymentHandleHandler.ServeHTTP(w, r)
		case BillServiceAddPersonProcedure:
			billServiceAddPersonHandler.ServeHTTP(w, r)
		case BillServiceJoinBillProcedure:
			billServiceJoinBillHandler.ServeHTTP(w, r)
		case BillServiceRemovePersonProcedure:
			billServiceRemovePersonHandler.ServeHTTP(w, r)
		case BillServiceUpdatePersonPaymentHandleProcedure:
			billServiceUpdatePersonPaymentHandleHandler.ServeHTTP(w, r)
		case BillServiceAddItemProcedure:
			billServiceAddItemHandler.ServeHTTP(w, r)
		case BillServiceRemoveItemProcedure:
			billServiceRemoveItemHandler.ServeHTTP(w, r)
		case BillServiceAssignItemProcedure:
			billServiceAssignItemHandler.ServeHTTP(w, r)
		case BillServiceUnassignItemProcedure:
			billServiceUnassignItemHandler.ServeHTTP(w, r)
		case BillServiceSelfAssignProcedure:
			billServiceSelfAssignHandler.ServeHTTP(w, r)
		case BillServiceMarkPaidProcedure:
			billServiceMarkPaidHandler.ServeHTTP(w, r)
		case BillServiceFinalizeBillProcedure:
			billServiceFinalizeBillHandler.ServeHTTP(w, r)
		case BillServiceImportReceiptProcedure:
			billServiceImportReceiptHandler.ServeHTTP(w, r)
		case BillServiceCalculateSplitProcedure:
			billServiceCalculateSplitHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedBillServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBillServiceHandler struct{}

func (UnimplementedBillServiceHandler) CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.CreateBill is not implemented"))
}

func (UnimplementedBillServiceHandler) GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.GetBill is not implemented"))
}

func (UnimplementedBillServiceHandler) ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.ListBills is not implemented"))
}

func (UnimplementedBillServiceHandler) DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.DeleteBill is not implemented"))
}

func (UnimplementedBillServiceHandler) UpdateTitle(context.Context, *connect.Request[api.UpdateTitleRequest]) (*connect.Response[api.BillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.UpdateTitle is not implemented"))
}

func (UnimplementedBillServiceHandler) UpdateRates(context.Context, *connect.Request[api.UpdateRatesRequest]) (*connect.Response[api.BillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.UpdateRates is not implemented"))
}

func (UnimplementedBillServiceHandler) UpdatePaymentHandle(context.Context, *connect.Request[api.UpdatePaymentHandleRequest]) (*connect.Response[api.BillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.UpdatePaymentHandle is not implemented"))
}

func (UnimplementedBillServiceHandler) AddPerson(context.Context, *connect.Request[api.AddPersonRequest]) (*connect.Response[api.PersonResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.AddPerson is not implemented"))
}

func (UnimplementedBillServiceHandler) JoinBill(context.Context, *connect.Request[api.JoinBillRequest]) (*connect.Response[api.PersonResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.JoinBill is not implemented"))
}

func (UnimplementedBillServiceHandler) RemovePerson(context.Context, *connect.Request[api.RemovePersonRequest]) (*connect.Response[api.BillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.RemovePerson is not implemented"))
}

func (UnimplementedBillServiceHandler) UpdatePersonPaymentHandle(context.Context, *connect.Request[api.UpdatePersonPaymentHandleRequest]) (*connect.Response[api.BillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.UpdatePersonPaymentHandle is not implemented"))
}

func (UnimplementedBillServiceHandler) AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.AddItem is not implemented"))
}

func (UnimplementedBillServiceHandler) RemoveItem(context.Context, *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.BillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.RemoveItem is not implemented"))
}

func (UnimplementedBillServiceHandler) AssignItem(context.Context, *connect.Request[api.AssignItemRequest]) (*connect.Response[api.BillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.AssignItem is not implemented"))
}

func (UnimplementedBillServiceHandler) UnassignItem(context.Context, *connect.Request[api.UnassignItemRequest]) (*connect.Response[api.BillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.UnassignItem is not implemented"))
}

func (UnimplementedBillServiceHandler) SelfAssign(context.Context, *connect.Request[api.SelfAssignRequest]) (*connect.Response[api.SelfAssignResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.SelfAssign is not implemented"))
}

func (UnimplementedBillServiceHandler) MarkPaid(context.Context, *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.BillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.MarkPaid is not implemented"))
}

func (UnimplementedBillServiceHandler) FinalizeBill(context.Context, *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.BillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.FinalizeBill is not implemented"))
}

func (UnimplementedBillServiceHandler) ImportReceipt(context.Context, *connect.Request[api.ImportReceiptRequest]) (*connect.Response[api.BillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.ImportReceipt is not implemented"))
}

func (UnimplementedBillServiceHandler) CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("divvy.v1.BillService.CalculateSplit is not implemented"))
}
