package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mmynk/peopleevents/internal/models"
)

// ListEvents returns all events ordered by date, earliest first.
func (s *SQLiteStore) ListEvents(ctx context.Context) ([]*models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, date, location, description, attendees
		 FROM events ORDER BY date ASC, rowid ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		e := &models.Event{}
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.Location, &e.Description, &e.Attendees); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// CreateEvent inserts a new event, assigning its ID.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *models.Event) error {
	event.ID = uuid.New().String()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, title, date, location, description, attendees)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, event.Title, event.Date, event.Location, event.Description, event.Attendees,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// UpdateEvent replaces all fields of the event keyed by event.ID.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE events SET title = ?, date = ?, location = ?, description = ?, attendees = ?
		 WHERE id = ?`,
		event.Title, event.Date, event.Location, event.Description, event.Attendees, event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	return checkAffected(res, "event", event.ID)
}

// DeleteEvent removes the event with the given ID, if present.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
