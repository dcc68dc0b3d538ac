package postgres

import (
	"time"

	"github.com/mmynk/peopleevents/internal/models"
)

type personRow struct {
	ID                string      `gorm:"primaryKey;type:uuid"`
	Name              string      `gorm:"not null"`
	Spouse            string
	Anniversary       models.Date
	Birthday          models.Date
	HomePhone         string
	CellPhone         string
	Email             string
	LivingDevelopment string
	Address           string
	Image             string
	CreatedAt         time.Time `gorm:"index;not null"`
}

func (personRow) TableName() string { return "people" }

func personRowFrom(p *models.Person) personRow {
	return personRow{
		ID:                p.ID,
		Name:              p.Name,
		Spouse:            p.Spouse,
		Anniversary:       p.Anniversary,
		Birthday:          p.Birthday,
		HomePhone:         p.HomePhone,
		CellPhone:         p.CellPhone,
		Email:             p.Email,
		LivingDevelopment: p.LivingDevelopment,
		Address:           p.Address,
		Image:             p.Image,
		CreatedAt:         p.CreatedAt,
	}
}

func (r *personRow) toModel() *models.Person {
	return &models.Person{
		ID:                r.ID,
		Name:              r.Name,
		Spouse:            r.Spouse,
		Anniversary:       r.Anniversary,
		Birthday:          r.Birthday,
		HomePhone:         r.HomePhone,
		CellPhone:         r.CellPhone,
		Email:             r.Email,
		LivingDevelopment: r.LivingDevelopment,
		Address:           r.Address,
		Image:             r.Image,
		CreatedAt:         r.CreatedAt.UTC(),
	}
}

type eventRow struct {
	ID          string      `gorm:"primaryKey;type:uuid"`
	Title       string      `gorm:"not null"`
	Date        models.Date `gorm:"index;not null"`
	Location    string
	Description string
	Attendees   string
}

func (eventRow) TableName() string { return "events" }

func eventRowFrom(e *models.Event) eventRow {
	return eventRow{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date,
		Location:    e.Location,
		Description: e.Description,
		Attendees:   e.Attendees,
	}
}

func (r *eventRow) toModel() *models.Event {
	return &models.Event{
		ID:          r.ID,
		Title:       r.Title,
		Date:        r.Date,
		Location:    r.Location,
		Description: r.Description,
		Attendees:   r.Attendees,
	}
}
