package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// PeopleServiceName is the fully-qualified name of the PeopleService.
	PeopleServiceName = "peopleevents.v1.PeopleService"

	PeopleServiceListPeopleProcedure   = "/peopleevents.v1.PeopleService/ListPeople"
	PeopleServiceCreatePersonProcedure = "/peopleevents.v1.PeopleService/CreatePerson"
	PeopleServiceUpdatePersonProcedure = "/peopleevents.v1.PeopleService/UpdatePerson"
	PeopleServiceDeletePersonProcedure = "/peopleevents.v1.PeopleService/DeletePerson"
)

// PeopleServiceHandler is implemented by the people collection service.
type PeopleServiceHandler interface {
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
	CreatePerson(context.Context, *connect.Request[CreatePersonRequest]) (*connect.Response[CreatePersonResponse], error)
	UpdatePerson(context.Context, *connect.Request[UpdatePersonRequest]) (*connect.Response[UpdatePersonResponse], error)
	DeletePerson(context.Context, *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error)
}

// NewPeopleServiceHandler builds an HTTP handler for the service and returns
// the path prefix to mount it on.
func NewPeopleServiceHandler(svc PeopleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(PeopleServiceListPeopleProcedure, connect.NewUnaryHandler(PeopleServiceListPeopleProcedure, svc.ListPeople, opts...))
	mux.Handle(PeopleServiceCreatePersonProcedure, connect.NewUnaryHandler(PeopleServiceCreatePersonProcedure, svc.CreatePerson, opts...))
	mux.Handle(PeopleServiceUpdatePersonProcedure, connect.NewUnaryHandler(PeopleServiceUpdatePersonProcedure, svc.UpdatePerson, opts...))
	mux.Handle(PeopleServiceDeletePersonProcedure, connect.NewUnaryHandler(PeopleServiceDeletePersonProcedure, svc.DeletePerson, opts...))
	return "/" + PeopleServiceName + "/", mux
}

// PeopleServiceClient calls the PeopleService.
type PeopleServiceClient struct {
	list   *connect.Client[ListPeopleRequest, ListPeopleResponse]
	create *connect.Client[CreatePersonRequest, CreatePersonResponse]
	update *connect.Client[UpdatePersonRequest, UpdatePersonResponse]
	delete *connect.Client[DeletePersonRequest, DeletePersonResponse]
}

// NewPeopleServiceClient builds a client for the service at baseURL.
func NewPeopleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PeopleServiceClient {
	opts = withClientCodec(opts)
	return &PeopleServiceClient{
		list:   connect.NewClient[ListPeopleRequest, ListPeopleResponse](httpClient, baseURL+PeopleServiceListPeopleProcedure, opts...),
		create: connect.NewClient[CreatePersonRequest, CreatePersonResponse](httpClient, baseURL+PeopleServiceCreatePersonProcedure, opts...),
		update: connect.NewClient[UpdatePersonRequest, UpdatePersonResponse](httpClient, baseURL+PeopleServiceUpdatePersonProcedure, opts...),
		delete: connect.NewClient[DeletePersonRequest, DeletePersonResponse](httpClient, baseURL+PeopleServiceDeletePersonProcedure, opts...),
	}
}

func (c *PeopleServiceClient) ListPeople(ctx context.Context, req *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *PeopleServiceClient) CreatePerson(ctx context.Context, req *connect.Request[CreatePersonRequest]) (*connect.Response[CreatePersonResponse], error) {
	return c.create.CallUnary(ctx, req)
}

func (c *PeopleServiceClient) UpdatePerson(ctx context.Context, req *connect.Request[UpdatePersonRequest]) (*connect.Response[UpdatePersonResponse], error) {
	return c.update.CallUnary(ctx, req)
}

func (c *PeopleServiceClient) DeletePerson(ctx context.Context, req *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error) {
	return c.delete.CallUnary(ctx, req)
}
