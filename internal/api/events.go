package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// EventServiceName is the fully-qualified name of the EventService.
	EventServiceName = "peopleevents.v1.EventService"

	EventServiceListEventsProcedure  = "/peopleevents.v1.EventService/ListEvents"
	EventServiceCreateEventProcedure = "/peopleevents.v1.EventService/CreateEvent"
	EventServiceUpdateEventProcedure = "/peopleevents.v1.EventService/UpdateEvent"
	EventServiceDeleteEventProcedure = "/peopleevents.v1.EventService/DeleteEvent"
)

// EventServiceHandler is implemented by the events collection service.
type EventServiceHandler interface {
	ListEvents(context.Context, *connect.Request[ListEventsRequest]) (*connect.Response[ListEventsResponse], error)
	CreateEvent(context.Context, *connect.Request[CreateEventRequest]) (*connect.Response[CreateEventResponse], error)
	UpdateEvent(context.Context, *connect.Request[UpdateEventRequest]) (*connect.Response[UpdateEventResponse], error)
	DeleteEvent(context.Context, *connect.Request[DeleteEventRequest]) (*connect.Response[DeleteEventResponse], error)
}

// NewEventServiceHandler builds an HTTP handler for the service and returns
// the path prefix to mount it on.
func NewEventServiceHandler(svc EventServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(EventServiceListEventsProcedure, connect.NewUnaryHandler(EventServiceListEventsProcedure, svc.ListEvents, opts...))
	mux.Handle(EventServiceCreateEventProcedure, connect.NewUnaryHandler(EventServiceCreateEventProcedure, svc.CreateEvent, opts...))
	mux.Handle(EventServiceUpdateEventProcedure, connect.NewUnaryHandler(EventServiceUpdateEventProcedure, svc.UpdateEvent, opts...))
	mux.Handle(EventServiceDeleteEventProcedure, connect.NewUnaryHandler(EventServiceDeleteEventProcedure, svc.DeleteEvent, opts...))
	return "/" + EventServiceName + "/", mux
}

// EventServiceClient calls the EventService.
type EventServiceClient struct {
	list   *connect.Client[ListEventsRequest, ListEventsResponse]
	create *connect.Client[CreateEventRequest, CreateEventResponse]
	update *connect.Client[UpdateEventRequest, UpdateEventResponse]
	delete *connect.Client[DeleteEventRequest, DeleteEventResponse]
}

// NewEventServiceClient builds a client for the service at baseURL.
func NewEventServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *EventServiceClient {
	opts = withClientCodec(opts)
	return &EventServiceClient{
		list:   connect.NewClient[ListEventsRequest, ListEventsResponse](httpClient, baseURL+EventServiceListEventsProcedure, opts...),
		create: connect.NewClient[CreateEventRequest, CreateEventResponse](httpClient, baseURL+EventServiceCreateEventProcedure, opts...),
		update: connect.NewClient[UpdateEventRequest, UpdateEventResponse](httpClient, baseURL+EventServiceUpdateEventProcedure, opts...),
		delete: connect.NewClient[DeleteEventRequest, DeleteEventResponse](httpClient, baseURL+EventServiceDeleteEventProcedure, opts...),
	}
}

func (c *EventServiceClient) ListEvents(ctx context.Context, req *connect.Request[ListEventsRequest]) (*connect.Response[ListEventsResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *EventServiceClient) CreateEvent(ctx context.Context, req *connect.Request[CreateEventRequest]) (*connect.Response[CreateEventResponse], error) {
	return c.create.CallUnary(ctx, req)
}

func (c *EventServiceClient) UpdateEvent(ctx context.Context, req *connect.Request[UpdateEventRequest]) (*connect.Response[UpdateEventResponse], error) {
	return c.update.CallUnary(ctx, req)
}

func (c *EventServiceClient) DeleteEvent(ctx context.Context, req *connect.Request[DeleteEventRequest]) (*connect.Response[DeleteEventResponse], error) {
	return c.delete.CallUnary(ctx, req)
}
