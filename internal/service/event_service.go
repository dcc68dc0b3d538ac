package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/peopleevents/internal/api"
	"github.com/mmynk/peopleevents/internal/storage"
)

// EventService implements the events collection RPCs.
type EventService struct {
	store   storage.Store
	timeout time.Duration
}

var _ api.EventServiceHandler = (*EventService)(nil)

// NewEventService creates a new EventService with the given storage backend.
func NewEventService(store storage.Store, timeout time.Duration) *EventService {
	return &EventService{store: store, timeout: timeout}
}

// ListEvents returns every event, earliest date first.
func (s *EventService) ListEvents(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error) {
	slog.Info("ListEvents request received")

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	events, err := s.store.ListEvents(ctx)
	if err != nil {
		slog.Error("ListEvents failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("ListEvents successful", "count", len(events))
	return connect.NewResponse(&api.ListEventsResponse{Events: events}), nil
}

// CreateEvent adds an event. The store assigns its ID.
func (s *EventService) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	slog.Info("CreateEvent request received",
		"title", req.Msg.Event.Title,
		"date", req.Msg.Event.Date.String(),
	)

	if err := authorizeMutation(ctx, api.EventServiceCreateEventProcedure); err != nil {
		return nil, err
	}

	event := req.Msg.Event
	if err := event.Validate(); err != nil {
		return nil, validationError(err)
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	if err := s.store.CreateEvent(ctx, &event); err != nil {
		slog.Error("CreateEvent failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Event created", "event_id", event.ID)
	return connect.NewResponse(&api.CreateEventResponse{Event: &event}), nil
}

// UpdateEvent replaces every field of an existing event.
func (s *EventService) UpdateEvent(ctx context.Context, req *connect.Request[api.UpdateEventRequest]) (*connect.Response[api.UpdateEventResponse], error) {
	slog.Info("UpdateEvent request received", "event_id", req.Msg.Event.ID)

	if err := authorizeMutation(ctx, api.EventServiceUpdateEventProcedure); err != nil {
		return nil, err
	}

	event := req.Msg.Event
	if event.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingID)
	}
	if err := event.Validate(); err != nil {
		return nil, validationError(err)
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	if err := s.store.UpdateEvent(ctx, &event); err != nil {
		slog.Error("UpdateEvent failed", "event_id", event.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Event updated", "event_id", event.ID)
	return connect.NewResponse(&api.UpdateEventResponse{Event: &event}), nil
}

// DeleteEvent removes an event. Deleting an unknown ID succeeds.
func (s *EventService) DeleteEvent(ctx context.Context, req *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error) {
	slog.Info("DeleteEvent request received", "event_id", req.Msg.ID)

	if err := authorizeMutation(ctx, api.EventServiceDeleteEventProcedure); err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingID)
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	if err := s.store.DeleteEvent(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteEvent failed", "event_id", req.Msg.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Event deleted", "event_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteEventResponse{}), nil
}
