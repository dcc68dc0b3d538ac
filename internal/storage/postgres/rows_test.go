package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmynk/peopleevents/internal/models"
	"github.com/mmynk/peopleevents/internal/storage"
)

func TestPersonRowConversion(t *testing.T) {
	p := &models.Person{
		ID:                "4b1d2c4e-0000-4000-8000-000000000001",
		Name:              "Alice",
		Spouse:            "Bob",
		Anniversary:       models.NewDate(1985, time.June, 1),
		Birthday:          models.NewDate(1960, time.March, 14),
		HomePhone:         "555-0100",
		CellPhone:         "555-0101",
		Email:             "alice@example.com",
		LivingDevelopment: "Oak Hills",
		Address:           "1 Main St",
		Image:             "data:image/png;base64,AAAA",
		CreatedAt:         time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC),
	}

	row := personRowFrom(p)
	got := row.toModel()
	if *got != *p {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, p)
	}
	if row.TableName() != "people" {
		t.Errorf("TableName = %s, want people", row.TableName())
	}
}

func TestEventRowConversion(t *testing.T) {
	e := &models.Event{
		ID:          "4b1d2c4e-0000-4000-8000-000000000002",
		Title:       "Picnic",
		Date:        models.NewDate(2024, time.July, 4),
		Location:    "Park",
		Description: "Bring a dish",
		Attendees:   "40",
	}

	row := eventRowFrom(e)
	if got := row.toModel(); *got != *e {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, e)
	}
	if row.TableName() != "events" {
		t.Errorf("TableName = %s, want events", row.TableName())
	}
}

func TestOrderBy(t *testing.T) {
	people := orderBy(storage.People)
	if people.Column.Name != "created_at" || !people.Desc {
		t.Errorf("people order = %+v, want created_at DESC", people)
	}

	events := orderBy(storage.Events)
	if events.Column.Name != "date" || events.Desc {
		t.Errorf("events order = %+v, want date ASC", events)
	}
}

// Malformed ids are settled before any query, so a store without a
// connection is enough here.
func TestMalformedIDs(t *testing.T) {
	s := &GormStore{}
	ctx := context.Background()

	if err := s.DeletePerson(ctx, "typo"); err != nil {
		t.Errorf("DeletePerson(typo) = %v, want nil", err)
	}
	if err := s.DeleteEvent(ctx, ""); err != nil {
		t.Errorf("DeleteEvent(empty) = %v, want nil", err)
	}
	if err := s.UpdatePerson(ctx, &models.Person{ID: "typo", Name: "Ann"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdatePerson(typo) = %v, want ErrNotFound", err)
	}
	if err := s.UpdateEvent(ctx, &models.Event{ID: "not-a-uuid", Title: "Picnic", Date: models.NewDate(2024, time.July, 4)}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateEvent(not-a-uuid) = %v, want ErrNotFound", err)
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"4b1d2c4e-0000-4000-8000-000000000001", true},
		{"", false},
		{"typo", false},
		{"4b1d2c4e-0000-4000-8000", false},
	}
	for _, tt := range tests {
		if got := validID(tt.id); got != tt.want {
			t.Errorf("validID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
