// Package model defines the core domain types for the event listing and RSVP system.
package model

import (
	"time"
)

// Layouts accepted for an event's date and time fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Category is one of the fixed event categories.
type Category string

const (
	CategoryTecnologia Category = "Tecnología"
	CategoryAcademico  Category = "Académico"
	CategoryCultural   Category = "Cultural"
	CategoryDeportivo  Category = "Deportivo"
	CategorySocial     Category = "Social"
)

// Categories returns the allowed categories in display order.
func Categories() []Category {
	return []Category{
		CategoryTecnologia,
		CategoryAcademico,
		CategoryCultural,
		CategoryDeportivo,
		CategorySocial,
	}
}

// Event represents a scheduled gathering that visitors can register for.
type Event struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Location     string     `json:"location"`
	Category     Category   `json:"category"`
	MaxAttendees int        `json:"max_attendees"`
	Attendees    []Attendee `json:"attendees"`
	Featured     bool       `json:"featured"`
}

// StartsAt combines Date and Time into a single instant in loc.
func (e *Event) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.Time, loc)
}

// Remaining returns the number of available seats.
func (e *Event) Remaining() int {
	return e.MaxAttendees - len(e.Attendees)
}

// IsFull returns true when no seats remain.
func (e *Event) IsFull() bool {
	return len(e.Attendees) >= e.MaxAttendees
}

// Clone returns a copy that shares no attendee storage with e.
func (e *Event) Clone() Event {
	out := *e
	out.Attendees = make([]Attendee, len(e.Attendees))
	copy(out.Attendees, e.Attendees)
	return out
}

// Attendee is a person registered for an event.
type Attendee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title        string `json:"title" validate:"required,max=120"`
	Description  string `json:"description" validate:"required"`
	Date         string `json:"date" validate:"required,max=10"`
	Time         string `json:"time" validate:"required,max=5"`
	Location     string `json:"location" validate:"required,max=120"`
	Category     string `json:"category" validate:"required,category"`
	MaxAttendees int    `json:"max_attendees" validate:"required,min=1"`
	Featured     bool   `json:"featured"`
}

// RegisterRequest is the payload for registering for an event.
type RegisterRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=120"`
}

// Confirmation is returned after a successful registration.
type Confirmation struct {
	Message   string   `json:"message"`
	EventSlug string   `json:"event_slug"`
	Attendee  Attendee `json:"attendee"`
	Remaining int      `json:"remaining"`
}

// HomeView groups what the landing page and category pages show.
type HomeView struct {
	Events     []Event    `json:"events"`
	Featured   []Event    `json:"featured"`
	Categories []Category `json:"categories"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
