package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/peopleevents/internal/api"
	"github.com/mmynk/peopleevents/internal/storage"
)

var errMissingID = errors.New("id is required")

// PeopleService implements the people collection RPCs.
type PeopleService struct {
	store   storage.Store
	timeout time.Duration
}

var _ api.PeopleServiceHandler = (*PeopleService)(nil)

// NewPeopleService creates a new PeopleService with the given storage backend.
// Each store call is bounded by timeout (DefaultStoreTimeout when zero).
func NewPeopleService(store storage.Store, timeout time.Duration) *PeopleService {
	return &PeopleService{store: store, timeout: timeout}
}

// ListPeople returns every person, newest first.
func (s *PeopleService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	slog.Info("ListPeople request received")

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		slog.Error("ListPeople failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("ListPeople successful", "count", len(people))
	return connect.NewResponse(&api.ListPeopleResponse{People: people}), nil
}

// CreatePerson adds a person. The store assigns ID and CreatedAt.
func (s *PeopleService) CreatePerson(ctx context.Context, req *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	slog.Info("CreatePerson request received", "name", req.Msg.Person.Name)

	if err := authorizeMutation(ctx, api.PeopleServiceCreatePersonProcedure); err != nil {
		return nil, err
	}

	person := req.Msg.Person
	if err := person.Validate(); err != nil {
		return nil, validationError(err)
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	if err := s.store.CreatePerson(ctx, &person); err != nil {
		slog.Error("CreatePerson failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Person created", "person_id", person.ID)
	return connect.NewResponse(&api.CreatePersonResponse{Person: &person}), nil
}

// UpdatePerson replaces every field of an existing person.
func (s *PeopleService) UpdatePerson(ctx context.Context, req *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error) {
	slog.Info("UpdatePerson request received", "person_id", req.Msg.Person.ID)

	if err := authorizeMutation(ctx, api.PeopleServiceUpdatePersonProcedure); err != nil {
		return nil, err
	}

	person := req.Msg.Person
	if person.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingID)
	}
	if err := person.Validate(); err != nil {
		return nil, validationError(err)
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	if err := s.store.UpdatePerson(ctx, &person); err != nil {
		slog.Error("UpdatePerson failed", "person_id", person.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Person updated", "person_id", person.ID)
	return connect.NewResponse(&api.UpdatePersonResponse{Person: &person}), nil
}

// DeletePerson removes a person. Deleting an unknown ID succeeds.
func (s *PeopleService) DeletePerson(ctx context.Context, req *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	slog.Info("DeletePerson request received", "person_id", req.Msg.ID)

	if err := authorizeMutation(ctx, api.PeopleServiceDeletePersonProcedure); err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingID)
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	if err := s.store.DeletePerson(ctx, req.Msg.ID); err != nil {
		slog.Error("DeletePerson failed", "person_id", req.Msg.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Person deleted", "person_id", req.Msg.ID)
	return connect.NewResponse(&api.DeletePersonResponse{}), nil
}
