// Package postgres implements storage.Store on a remote PostgreSQL database
// through GORM. Table and column names match the hosted "people" and "events"
// tables so an existing database can be pointed at directly.
package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mmynk/peopleevents/internal/models"
	"github.com/mmynk/peopleevents/internal/storage"
)

var _ storage.Store = (*GormStore)(nil)

// GormStore implements storage.Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// New opens the database and runs auto-migrations.
func New(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&personRow{}, &eventRow{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// validID reports whether id can name a row. The id columns are uuid typed,
// so anything else would be rejected by Postgres rather than matching nothing.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// orderBy turns a collection's fixed ordering into a GORM clause.
func orderBy(c storage.Collection) clause.OrderByColumn {
	o := storage.OrderingOf(c)
	return clause.OrderByColumn{Column: clause.Column{Name: o.Field}, Desc: o.Descending}
}

// ListPeople returns all people, newest first.
func (s *GormStore) ListPeople(ctx context.Context) ([]*models.Person, error) {
	var rows []personRow
	if err := s.db.WithContext(ctx).Order(orderBy(storage.People)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	people := make([]*models.Person, 0, len(rows))
	for i := range rows {
		people = append(people, rows[i].toModel())
	}
	return people, nil
}

// CreatePerson inserts a new person, assigning its ID and creation time.
func (s *GormStore) CreatePerson(ctx context.Context, person *models.Person) error {
	person.ID = uuid.New().String()
	person.CreatedAt = time.Now().UTC()

	row := personRowFrom(person)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

// UpdatePerson replaces all mutable fields of the person keyed by person.ID.
func (s *GormStore) UpdatePerson(ctx context.Context, person *models.Person) error {
	if !validID(person.ID) {
		return fmt.Errorf("%w: person %s", storage.ErrNotFound, person.ID)
	}
	row := personRowFrom(person)
	res := s.db.WithContext(ctx).
		Model(&personRow{}).
		Where("id = ?", person.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&row)
	if res.Error != nil {
		return fmt.Errorf("failed to update person: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: person %s", storage.ErrNotFound, person.ID)
	}
	return nil
}

// DeletePerson removes the person with the given ID, if present.
func (s *GormStore) DeletePerson(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&personRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}

// ListEvents returns all events, earliest date first.
func (s *GormStore) ListEvents(ctx context.Context) ([]*models.Event, error) {
	var rows []eventRow
	if err := s.db.WithContext(ctx).Order(orderBy(storage.Events)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	events := make([]*models.Event, 0, len(rows))
	for i := range rows {
		events = append(events, rows[i].toModel())
	}
	return events, nil
}

// CreateEvent inserts a new event, assigning its ID.
func (s *GormStore) CreateEvent(ctx context.Context, event *models.Event) error {
	event.ID = uuid.New().String()

	row := eventRowFrom(event)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// UpdateEvent replaces all fields of the event keyed by event.ID.
func (s *GormStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	if !validID(event.ID) {
		return fmt.Errorf("%w: event %s", storage.ErrNotFound, event.ID)
	}
	row := eventRowFrom(event)
	res := s.db.WithContext(ctx).
		Model(&eventRow{}).
		Where("id = ?", event.ID).
		Select("*").
		Omit("id").
		Updates(&row)
	if res.Error != nil {
		return fmt.Errorf("failed to update event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: event %s", storage.ErrNotFound, event.ID)
	}
	return nil
}

// DeleteEvent removes the event with the given ID, if present.
func (s *GormStore) DeleteEvent(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&eventRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
