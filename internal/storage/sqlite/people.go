package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/peopleevents/internal/models"
)

const personColumns = `id, name, spouse, anniversary, birthday, home_phone, cell_phone,
	email, living_development, address, image, created_at`

// ListPeople returns all people, newest first.
// rowid breaks ties between rows created within the same clock tick.
func (s *SQLiteStore) ListPeople(ctx context.Context) ([]*models.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+personColumns+" FROM people ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	people := []*models.Person{}
	for rows.Next() {
		p := &models.Person{}
		var createdAt int64
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Spouse,
			&p.Anniversary,
			&p.Birthday,
			&p.HomePhone,
			&p.CellPhone,
			&p.Email,
			&p.LivingDevelopment,
			&p.Address,
			&p.Image,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		p.CreatedAt = time.Unix(0, createdAt).UTC()
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	return people, nil
}

// CreatePerson inserts a new person, assigning its ID and creation time.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person *models.Person) error {
	person.ID = uuid.New().String()
	person.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO people ("+personColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		person.ID,
		person.Name,
		person.Spouse,
		person.Anniversary,
		person.Birthday,
		person.HomePhone,
		person.CellPhone,
		person.Email,
		person.LivingDevelopment,
		person.Address,
		person.Image,
		person.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}

	return nil
}

// UpdatePerson replaces all mutable fields of the person keyed by person.ID.
func (s *SQLiteStore) UpdatePerson(ctx context.Context, person *models.Person) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE people SET name = ?, spouse = ?, anniversary = ?, birthday = ?,
			home_phone = ?, cell_phone = ?, email = ?, living_development = ?,
			address = ?, image = ?
		 WHERE id = ?`,
		person.Name,
		person.Spouse,
		person.Anniversary,
		person.Birthday,
		person.HomePhone,
		person.CellPhone,
		person.Email,
		person.LivingDevelopment,
		person.Address,
		person.Image,
		person.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}

	return checkAffected(res, "person", person.ID)
}

// DeletePerson removes the person with the given ID, if present.
func (s *SQLiteStore) DeletePerson(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM people WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}
