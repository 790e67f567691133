package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/debtledger/pkg/api"
)

// ParticipantServiceName is the fully-qualified name of the ParticipantService service.
const ParticipantServiceName = "debtledger.v1.ParticipantService"

const (
	ParticipantServiceAddParticipantProcedure    = "/debtledger.v1.ParticipantService/AddParticipant"
	ParticipantServiceGetParticipantProcedure    = "/debtledger.v1.ParticipantService/GetParticipant"
	ParticipantServiceListParticipantsProcedure  = "/debtledger.v1.ParticipantService/ListParticipants"
	ParticipantServiceUpdateParticipantProcedure = "/debtledger.v1.ParticipantService/UpdateParticipant"
	ParticipantServiceDeleteParticipantProcedure = "/debtledger.v1.ParticipantService/DeleteParticipant"
)

// ParticipantServiceHandler is implemented by the server side of ParticipantService.
type ParticipantServiceHandler interface {
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error)
	GetParticipant(context.Context, *connect.Request[api.GetParticipantRequest]) (*connect.Response[api.GetParticipantResponse], error)
	ListParticipants(context.Context, *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error)
	UpdateParticipant(context.Context, *connect.Request[api.UpdateParticipantRequest]) (*connect.Response[api.UpdateParticipantResponse], error)
	DeleteParticipant(context.Context, *connect.Request[api.DeleteParticipantRequest]) (*connect.Response[api.DeleteParticipantResponse], error)
}

// NewParticipantServiceHandler builds an HTTP handler for svc and returns the
// path to mount it on.
func NewParticipantServiceHandler(svc ParticipantServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)

	mux := http.NewServeMux()
	mux.Handle(ParticipantServiceAddParticipantProcedure, connect.NewUnaryHandler(ParticipantServiceAddParticipantProcedure, svc.AddParticipant, opts...))
	mux.Handle(ParticipantServiceGetParticipantProcedure, connect.NewUnaryHandler(ParticipantServiceGetParticipantProcedure, svc.GetParticipant, opts...))
	mux.Handle(ParticipantServiceListParticipantsProcedure, connect.NewUnaryHandler(ParticipantServiceListParticipantsProcedure, svc.ListParticipants, opts...))
	mux.Handle(ParticipantServiceUpdateParticipantProcedure, connect.NewUnaryHandler(ParticipantServiceUpdateParticipantProcedure, svc.UpdateParticipant, opts...))
	mux.Handle(ParticipantServiceDeleteParticipantProcedure, connect.NewUnaryHandler(ParticipantServiceDeleteParticipantProcedure, svc.DeleteParticipant, opts...))

	return "/" + ParticipantServiceName + "/", mux
}

// ParticipantServiceClient is a client for ParticipantService.
type ParticipantServiceClient interface {
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error)
	GetParticipant(context.Context, *connect.Request[api.GetParticipantRequest]) (*connect.Response[api.GetParticipantResponse], error)
	ListParticipants(context.Context, *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error)
	UpdateParticipant(context.Context, *connect.Request[api.UpdateParticipantRequest]) (*connect.Response[api.UpdateParticipantResponse], error)
	DeleteParticipant(context.Context, *connect.Request[api.DeleteParticipantRequest]) (*connect.Response[api.DeleteParticipantResponse], error)
}

// NewParticipantServiceClient constructs a client for ParticipantService at baseURL.
func NewParticipantServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ParticipantServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &participantServiceClient{
		add:    connect.NewClient[api.AddParticipantRequest, api.AddParticipantResponse](httpClient, baseURL+ParticipantServiceAddParticipantProcedure, opts...),
		get:    connect.NewClient[api.GetParticipantRequest, api.GetParticipantResponse](httpClient, baseURL+ParticipantServiceGetParticipantProcedure, opts...),
		list:   connect.NewClient[api.ListParticipantsRequest, api.ListParticipantsResponse](httpClient, baseURL+ParticipantServiceListParticipantsProcedure, opts...),
		update: connect.NewClient[api.UpdateParticipantRequest, api.UpdateParticipantResponse](httpClient, baseURL+ParticipantServiceUpdateParticipantProcedure, opts...),
		delete: connect.NewClient[api.DeleteParticipantRequest, api.DeleteParticipantResponse](httpClient, baseURL+ParticipantServiceDeleteParticipantProcedure, opts...),
	}
}

type participantServiceClient struct {
	add    *connect.Client[api.AddParticipantRequest, api.AddParticipantResponse]
	get    *connect.Client[api.GetParticipantRequest, api.GetParticipantResponse]
	list   *connect.Client[api.ListParticipantsRequest, api.ListParticipantsResponse]
	update *connect.Client[api.UpdateParticipantRequest, api.UpdateParticipantResponse]
	delete *connect.Client[api.DeleteParticipantRequest, api.DeleteParticipantResponse]
}

func (c *participantServiceClient) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	return c.add.CallUnary(ctx, req)
}

func (c *participantServiceClient) GetParticipant(ctx context.Context, req *connect.Request[api.GetParticipantRequest]) (*connect.Response[api.GetParticipantResponse], error) {
	return c.get.CallUnary(ctx, req)
}

func (c *participantServiceClient) ListParticipants(ctx context.Context, req *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *participantServiceClient) UpdateParticipant(ctx context.Context, req *connect.Request[api.UpdateParticipantRequest]) (*connect.Response[api.UpdateParticipantResponse], error) {
	return c.update.CallUnary(ctx, req)
}

func (c *participantServiceClient) DeleteParticipant(ctx context.Context, req *connect.Request[api.DeleteParticipantRequest]) (*connect.Response[api.DeleteParticipantResponse], error) {
	return c.delete.CallUnary(ctx, req)
}
