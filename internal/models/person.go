package models

import (
	"strings"
	"time"
)

// Person represents a community member in the "people" collection.
type Person struct {
	// ID is assigned by the store on creation (UUID format) and never changes.
	ID string `json:"id"`

	// Name is the only required field.
	Name string `json:"name"`

	Spouse            string `json:"spouse"`
	HomePhone         string `json:"home_phone"`
	CellPhone         string `json:"cell_phone"`
	Email             string `json:"email"`
	LivingDevelopment string `json:"living_development"`
	Address           string `json:"address"`

	// Anniversary and Birthday are optional; the zero Date means unset.
	Anniversary Date `json:"anniversary"`
	Birthday    Date `json:"birthday"`

	// Image is an inline data URL (e.g. "data:image/png;base64,...").
	Image string `json:"image"`

	// CreatedAt is assigned by the store and drives the default newest-first order.
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the presence rules that gate create and update.
func (p *Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	return nil
}
