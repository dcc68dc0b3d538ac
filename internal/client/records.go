package client

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/peopleevents/internal/api"
	"github.com/mmynk/peopleevents/internal/models"
)

// Collections is a snapshot of both record collections.
type Collections struct {
	People []*models.Person
	Events []*models.Event
}

// Records issues list/create/update/delete calls for both collections.
// It carries no state; every call is authorized with the given session.
type Records struct {
	people *api.PeopleServiceClient
	events *api.EventServiceClient
}

// NewRecords builds a record store client.
func NewRecords(people *api.PeopleServiceClient, events *api.EventServiceClient) *Records {
	return &Records{people: people, events: events}
}

func (r *Records) ListPeople(ctx context.Context, session *models.Session) ([]*models.Person, error) {
	resp, err := r.people.ListPeople(ctx, authorized(&api.ListPeopleRequest{}, session))
	if err != nil {
		return nil, classify(err)
	}
	return resp.Msg.People, nil
}

func (r *Records) CreatePerson(ctx context.Context, session *models.Session, p models.Person) (*models.Person, error) {
	resp, err := r.people.CreatePerson(ctx, authorized(&api.CreatePersonRequest{Person: p}, session))
	if err != nil {
		return nil, classify(err)
	}
	return resp.Msg.Person, nil
}

func (r *Records) UpdatePerson(ctx context.Context, session *models.Session, p models.Person) error {
	_, err := r.people.UpdatePerson(ctx, authorized(&api.UpdatePersonRequest{Person: p}, session))
	return classify(err)
}

func (r *Records) DeletePerson(ctx context.Context, session *models.Session, id string) error {
	_, err := r.people.DeletePerson(ctx, authorized(&api.DeletePersonRequest{ID: id}, session))
	return classify(err)
}

func (r *Records) ListEvents(ctx context.Context, session *models.Session) ([]*models.Event, error) {
	resp, err := r.events.ListEvents(ctx, authorized(&api.ListEventsRequest{}, session))
	if err != nil {
		return nil, classify(err)
	}
	return resp.Msg.Events, nil
}

func (r *Records) CreateEvent(ctx context.Context, session *models.Session, e models.Event) (*models.Event, error) {
	resp, err := r.events.CreateEvent(ctx, authorized(&api.CreateEventRequest{Event: e}, session))
	if err != nil {
		return nil, classify(err)
	}
	return resp.Msg.Event, nil
}

func (r *Records) UpdateEvent(ctx context.Context, session *models.Session, e models.Event) error {
	_, err := r.events.UpdateEvent(ctx, authorized(&api.UpdateEventRequest{Event: e}, session))
	return classify(err)
}

func (r *Records) DeleteEvent(ctx context.Context, session *models.Session, id string) error {
	_, err := r.events.DeleteEvent(ctx, authorized(&api.DeleteEventRequest{ID: id}, session))
	return classify(err)
}

// ReloadAll lists both collections concurrently. It fails if either list fails.
func (r *Records) ReloadAll(ctx context.Context, session *models.Session) (Collections, error) {
	var c Collections
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		people, err := r.ListPeople(ctx, session)
		c.People = people
		return err
	})
	g.Go(func() error {
		events, err := r.ListEvents(ctx, session)
		c.Events = events
		return err
	})
	if err := g.Wait(); err != nil {
		return Collections{}, err
	}
	return c, nil
}
