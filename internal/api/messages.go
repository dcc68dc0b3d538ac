package api

import "github.com/mmynk/peopleevents/internal/models"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Session models.Session `json:"session"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type WhoAmIRequest struct{}

type WhoAmIResponse struct {
	Session models.Session `json:"session"`
}

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []*models.Person `json:"people"`
}

type CreatePersonRequest struct {
	Person models.Person `json:"person"`
}

type CreatePersonResponse struct {
	Person *models.Person `json:"person"`
}

// UpdatePersonRequest replaces the person whose ID is Person.ID.
type UpdatePersonRequest struct {
	Person models.Person `json:"person"`
}

type UpdatePersonResponse struct {
	Person *models.Person `json:"person"`
}

type DeletePersonRequest struct {
	ID string `json:"id"`
}

type DeletePersonResponse struct{}

type ListEventsRequest struct{}

type ListEventsResponse struct {
	Events []*models.Event `json:"events"`
}

type CreateEventRequest struct {
	Event models.Event `json:"event"`
}

type CreateEventResponse struct {
	Event *models.Event `json:"event"`
}

// UpdateEventRequest replaces the event whose ID is Event.ID.
type UpdateEventRequest struct {
	Event models.Event `json:"event"`
}

type UpdateEventResponse struct {
	Event *models.Event `json:"event"`
}

type DeleteEventRequest struct {
	ID string `json:"id"`
}

type DeleteEventResponse struct{}
