package metrics

import (
	"context"

	"github.com/mmynk/peopleevents/internal/models"
	"github.com/mmynk/peopleevents/internal/storage"
)

// InstrumentedStore counts every call made to the wrapped store.
type InstrumentedStore struct {
	next    storage.Store
	metrics *Metrics
}

var _ storage.Store = (*InstrumentedStore)(nil)

// InstrumentStore wraps a store so its operations show up in StoreOps.
func InstrumentStore(next storage.Store, m *Metrics) *InstrumentedStore {
	return &InstrumentedStore{next: next, metrics: m}
}

func (s *InstrumentedStore) observe(c storage.Collection, op string, err error) error {
	s.metrics.ObserveStore(string(c), op, err)
	return err
}

func (s *InstrumentedStore) ListPeople(ctx context.Context) ([]*models.Person, error) {
	people, err := s.next.ListPeople(ctx)
	return people, s.observe(storage.People, "list", err)
}

func (s *InstrumentedStore) CreatePerson(ctx context.Context, person *models.Person) error {
	return s.observe(storage.People, "create", s.next.CreatePerson(ctx, person))
}

func (s *InstrumentedStore) UpdatePerson(ctx context.Context, person *models.Person) error {
	return s.observe(storage.People, "update", s.next.UpdatePerson(ctx, person))
}

func (s *InstrumentedStore) DeletePerson(ctx context.Context, id string) error {
	return s.observe(storage.People, "delete", s.next.DeletePerson(ctx, id))
}

func (s *InstrumentedStore) ListEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := s.next.ListEvents(ctx)
	return events, s.observe(storage.Events, "list", err)
}

func (s *InstrumentedStore) CreateEvent(ctx context.Context, event *models.Event) error {
	return s.observe(storage.Events, "create", s.next.CreateEvent(ctx, event))
}

func (s *InstrumentedStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	return s.observe(storage.Events, "update", s.next.UpdateEvent(ctx, event))
}

func (s *InstrumentedStore) DeleteEvent(ctx context.Context, id string) error {
	return s.observe(storage.Events, "delete", s.next.DeleteEvent(ctx, id))
}

func (s *InstrumentedStore) Close() error {
	return s.next.Close()
}
