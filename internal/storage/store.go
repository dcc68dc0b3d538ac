// Package storage provides abstractions for the record store.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/peopleevents/internal/models"
)

// ErrNotFound is returned when an update targets an ID the store does not hold.
var ErrNotFound = errors.New("record not found")

// Collection names a record collection in the store.
type Collection string

const (
	People Collection = "people"
	Events Collection = "events"
)

// Ordering is the fixed list order of a collection.
type Ordering struct {
	Field      string
	Descending bool
}

// OrderingOf returns the list order for a collection: people newest first,
// events earliest first.
func OrderingOf(c Collection) Ordering {
	switch c {
	case People:
		return Ordering{Field: "created_at", Descending: true}
	default:
		return Ordering{Field: "date", Descending: false}
	}
}

// Store defines the record store operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// ListPeople returns every person, newest first.
	ListPeople(ctx context.Context) ([]*models.Person, error)

	// CreatePerson persists a new person.
	// The person's ID and CreatedAt fields are populated by the store.
	CreatePerson(ctx context.Context, person *models.Person) error

	// UpdatePerson replaces every field of the person with person.ID except
	// CreatedAt. Returns ErrNotFound if no such person exists.
	UpdatePerson(ctx context.Context, person *models.Person) error

	// DeletePerson removes a person. Deleting a missing ID is not an error.
	DeletePerson(ctx context.Context, id string) error

	// ListEvents returns every event, earliest date first.
	ListEvents(ctx context.Context) ([]*models.Event, error)

	// CreateEvent persists a new event. The event's ID is populated by the store.
	CreateEvent(ctx context.Context, event *models.Event) error

	// UpdateEvent replaces every field of the event with event.ID.
	// Returns ErrNotFound if no such event exists.
	UpdateEvent(ctx context.Context, event *models.Event) error

	// DeleteEvent removes an event. Deleting a missing ID is not an error.
	DeleteEvent(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
