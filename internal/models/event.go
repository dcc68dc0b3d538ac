package models

import "strings"

// Event represents a dated gathering in the "events" collection.
type Event struct {
	// ID is assigned by the store on creation (UUID format) and never changes.
	ID string `json:"id"`

	// Title and Date are required.
	Title string `json:"title"`
	Date  Date   `json:"date"`

	Location    string `json:"location"`
	Description string `json:"description"`

	// Attendees is free text, usually an expected head count.
	Attendees string `json:"attendees"`
}

// Validate checks the presence rules that gate create and update.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	return nil
}
