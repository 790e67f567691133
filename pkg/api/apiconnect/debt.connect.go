package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/debtledger/pkg/api"
)

// DebtServiceName is the fully-qualified name of the DebtService service.
const DebtServiceName = "debtledger.v1.DebtService"

// Procedure names, as they appear in the request URL path.
const (
	DebtServiceCreateDebtProcedure     = "/debtledger.v1.DebtService/CreateDebt"
	DebtServiceGetDebtProcedure        = "/debtledger.v1.DebtService/GetDebt"
	DebtServiceListDebtsProcedure      = "/debtledger.v1.DebtService/ListDebts"
	DebtServiceUpdateDebtProcedure     = "/debtledger.v1.DebtService/UpdateDebt"
	DebtServiceDeleteDebtProcedure     = "/debtledger.v1.DebtService/DeleteDebt"
	DebtServiceApplyPaymentProcedure   = "/debtledger.v1.DebtService/ApplyPayment"
	DebtServiceListPaymentsProcedure   = "/debtledger.v1.DebtService/ListPayments"
	DebtServiceGetSummaryProcedure     = "/debtledger.v1.DebtService/GetSummary"
	DebtServiceCalculateSplitProcedure = "/debtledger.v1.DebtService/CalculateSplit"
)

// DebtServiceHandler is implemented by the server side of DebtService.
type DebtServiceHandler interface {
	CreateDebt(context.Context, *connect.Request[api.CreateDebtRequest]) (*connect.Response[api.CreateDebtResponse], error)
	GetDebt(context.Context, *connect.Request[api.GetDebtRequest]) (*connect.Response[api.GetDebtResponse], error)
	ListDebts(context.Context, *connect.Request[api.ListDebtsRequest]) (*connect.Response[api.ListDebtsResponse], error)
	UpdateDebt(context.Context, *connect.Request[api.UpdateDebtRequest]) (*connect.Response[api.UpdateDebtResponse], error)
	DeleteDebt(context.Context, *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error)
	ApplyPayment(context.Context, *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
}

// NewDebtServiceHandler builds an HTTP handler for svc. It returns the path
// to mount the handler on and the handler itself.
func NewDebtServiceHandler(svc DebtServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)

	mux := http.NewServeMux()
	mux.Handle(DebtServiceCreateDebtProcedure, connect.NewUnaryHandler(DebtServiceCreateDebtProcedure, svc.CreateDebt, opts...))
	mux.Handle(DebtServiceGetDebtProcedure, connect.NewUnaryHandler(DebtServiceGetDebtProcedure, svc.GetDebt, opts...))
	mux.Handle(DebtServiceListDebtsProcedure, connect.NewUnaryHandler(DebtServiceListDebtsProcedure, svc.ListDebts, opts...))
	mux.Handle(DebtServiceUpdateDebtProcedure, connect.NewUnaryHandler(DebtServiceUpdateDebtProcedure, svc.UpdateDebt, opts...))
	mux.Handle(DebtServiceDeleteDebtProcedure, connect.NewUnaryHandler(DebtServiceDeleteDebtProcedure, svc.DeleteDebt, opts...))
	mux.Handle(DebtServiceApplyPaymentProcedure, connect.NewUnaryHandler(DebtServiceApplyPaymentProcedure, svc.ApplyPayment, opts...))
	mux.Handle(DebtServiceListPaymentsProcedure, connect.NewUnaryHandler(DebtServiceListPaymentsProcedure, svc.ListPayments, opts...))
	mux.Handle(DebtServiceGetSummaryProcedure, connect.NewUnaryHandler(DebtServiceGetSummaryProcedure, svc.GetSummary, opts...))
	mux.Handle(DebtServiceCalculateSplitProcedure, connect.NewUnaryHandler(DebtServiceCalculateSplitProcedure, svc.CalculateSplit, opts...))

	return "/" + DebtServiceName + "/", mux
}

// DebtServiceClient is a client for DebtService.
type DebtServiceClient interface {
	CreateDebt(context.Context, *connect.Request[api.CreateDebtRequest]) (*connect.Response[api.CreateDebtResponse], error)
	GetDebt(context.Context, *connect.Request[api.GetDebtRequest]) (*connect.Response[api.GetDebtResponse], error)
	ListDebts(context.Context, *connect.Request[api.ListDebtsRequest]) (*connect.Response[api.ListDebtsResponse], error)
	UpdateDebt(context.Context, *connect.Request[api.UpdateDebtRequest]) (*connect.Response[api.UpdateDebtResponse], error)
	DeleteDebt(context.Context, *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error)
	ApplyPayment(context.Context, *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
}

// NewDebtServiceClient constructs a client for DebtService at baseURL
// (for example, http://localhost:8080).
func NewDebtServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) DebtServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &debtServiceClient{
		createDebt:     connect.NewClient[api.CreateDebtRequest, api.CreateDebtResponse](httpClient, baseURL+DebtServiceCreateDebtProcedure, opts...),
		getDebt:        connect.NewClient[api.GetDebtRequest, api.GetDebtResponse](httpClient, baseURL+DebtServiceGetDebtProcedure, opts...),
		listDebts:      connect.NewClient[api.ListDebtsRequest, api.ListDebtsResponse](httpClient, baseURL+DebtServiceListDebtsProcedure, opts...),
		updateDebt:     connect.NewClient[api.UpdateDebtRequest, api.UpdateDebtResponse](httpClient, baseURL+DebtServiceUpdateDebtProcedure, opts...),
		deleteDebt:     connect.NewClient[api.DeleteDebtRequest, api.DeleteDebtResponse](httpClient, baseURL+DebtServiceDeleteDebtProcedure, opts...),
		applyPayment:   connect.NewClient[api.ApplyPaymentRequest, api.ApplyPaymentResponse](httpClient, baseURL+DebtServiceApplyPaymentProcedure, opts...),
		listPayments:   connect.NewClient[api.ListPaymentsRequest, api.ListPaymentsResponse](httpClient, baseURL+DebtServiceListPaymentsProcedure, opts...),
		getSummary:     connect.NewClient[api.GetSummaryRequest, api.GetSummaryResponse](httpClient, baseURL+DebtServiceGetSummaryProcedure, opts...),
		calculateSplit: connect.NewClient[api.CalculateSplitRequest, api.CalculateSplitResponse](httpClient, baseURL+DebtServiceCalculateSplitProcedure, opts...),
	}
}

type debtServiceClient struct {
	createDebt     *connect.Client[api.CreateDebtRequest, api.CreateDebtResponse]
	getDebt        *connect.Client[api.GetDebtRequest, api.GetDebtResponse]
	listDebts      *connect.Client[api.ListDebtsRequest, api.ListDebtsResponse]
	updateDebt     *connect.Client[api.UpdateDebtRequest, api.UpdateDebtResponse]
	deleteDebt     *connect.Client[api.DeleteDebtRequest, api.DeleteDebtResponse]
	applyPayment   *connect.Client[api.ApplyPaymentRequest, api.ApplyPaymentResponse]
	listPayments   *connect.Client[api.ListPaymentsRequest, api.ListPaymentsResponse]
	getSummary     *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
	calculateSplit *connect.Client[api.CalculateSplitRequest, api.CalculateSplitResponse]
}

func (c *debtServiceClient) CreateDebt(ctx context.Context, req *connect.Request[api.CreateDebtRequest]) (*connect.Response[api.CreateDebtResponse], error) {
	return c.createDebt.CallUnary(ctx, req)
}

func (c *debtServiceClient) GetDebt(ctx context.Context, req *connect.Request[api.GetDebtRequest]) (*connect.Response[api.GetDebtResponse], error) {
	return c.getDebt.CallUnary(ctx, req)
}

func (c *debtServiceClient) ListDebts(ctx context.Context, req *connect.Request[api.ListDebtsRequest]) (*connect.Response[api.ListDebtsResponse], error) {
	return c.listDebts.CallUnary(ctx, req)
}

func (c *debtServiceClient) UpdateDebt(ctx context.Context, req *connect.Request[api.UpdateDebtRequest]) (*connect.Response[api.UpdateDebtResponse], error) {
	return c.updateDebt.CallUnary(ctx, req)
}

func (c *debtServiceClient) DeleteDebt(ctx context.Context, req *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error) {
	return c.deleteDebt.CallUnary(ctx, req)
}

func (c *debtServiceClient) ApplyPayment(ctx context.Context, req *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error) {
	return c.applyPayment.CallUnary(ctx, req)
}

func (c *debtServiceClient) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

func (c *debtServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *debtServiceClient) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return c.calculateSplit.CallUnary(ctx, req)
}

// UnimplementedDebtServiceHandler returns CodeUnimplemented from all methods.
// Embed it to stay source compatible when procedures are added.
type UnimplementedDebtServiceHandler struct{}

func (UnimplementedDebtServiceHandler) CreateDebt(context.Context, *connect.Request[api.CreateDebtRequest]) (*connect.Response[api.CreateDebtResponse], error) {
	return nil, unimplemented(DebtServiceCreateDebtProcedure)
}

func (UnimplementedDebtServiceHandler) GetDebt(context.Context, *connect.Request[api.GetDebtRequest]) (*connect.Response[api.GetDebtResponse], error) {
	return nil, unimplemented(DebtServiceGetDebtProcedure)
}

func (UnimplementedDebtServiceHandler) ListDebts(context.Context, *connect.Request[api.ListDebtsRequest]) (*connect.Response[api.ListDebtsResponse], error) {
	return nil, unimplemented(DebtServiceListDebtsProcedure)
}

func (UnimplementedDebtServiceHandler) UpdateDebt(context.Context, *connect.Request[api.UpdateDebtRequest]) (*connect.Response[api.UpdateDebtResponse], error) {
	return nil, unimplemented(DebtServiceUpdateDebtProcedure)
}

func (UnimplementedDebtServiceHandler) DeleteDebt(context.Context, *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error) {
	return nil, unimplemented(DebtServiceDeleteDebtProcedure)
}

func (UnimplementedDebtServiceHandler) ApplyPayment(context.Context, *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error) {
	return nil, unimplemented(DebtServiceApplyPaymentProcedure)
}

func (UnimplementedDebtServiceHandler) ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return nil, unimplemented(DebtServiceListPaymentsProcedure)
}

func (UnimplementedDebtServiceHandler) GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return nil, unimplemented(DebtServiceGetSummaryProcedure)
}

func (UnimplementedDebtServiceHandler) CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return nil, unimplemented(DebtServiceCalculateSplitProcedure)
}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(procedure+" is not implemented"))
}
