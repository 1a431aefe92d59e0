// Package repository holds the in-process event catalog storage.
// It owns the only copy of the events and serialises every mutation.
package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/Shivanand-hulikatti/eventos/internal/model"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("event not found")

// ErrEventFull is returned when an event has no remaining capacity.
var ErrEventFull = errors.New("event is fully booked")

// ErrDuplicateSlug is returned when another event already uses the slug.
var ErrDuplicateSlug = errors.New("an event with that slug already exists")

// EventRepository stores events in creation order.
//
// Readers receive copies; nothing outside this type ever holds a pointer
// into the backing slice.
type EventRepository struct {
	mu     sync.RWMutex
	events []model.Event
}

// NewEventRepository constructs an EventRepository preloaded with seed events.
// Seeds are stored as given, including their ids and attendees.
func NewEventRepository(seed ...model.Event) *EventRepository {
	r := &EventRepository{events: make([]model.Event, 0, len(seed))}
	for _, e := range seed {
		r.events = append(r.events, e.Clone())
	}
	return r
}

// Create stores a new event and returns it with its assigned id.
//
// The slug uniqueness check, id assignment and append happen under one
// write lock, so two concurrent creations can neither share an id nor a slug.
func (r *EventRepository) Create(ctx context.Context, event model.Event) (model.Event, error) {
	if err := ctx.Err(); err != nil {
		return model.Event{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(event.Slug) >= 0 {
		return model.Event{}, ErrDuplicateSlug
	}

	maxID := 0
	for i := range r.events {
		if r.events[i].ID > maxID {
			maxID = r.events[i].ID
		}
	}
	event.ID = maxID + 1
	event.Attendees = []model.Attendee{}

	r.events = append(r.events, event)
	return event.Clone(), nil
}

// List returns all events in creation order.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]model.Event, len(r.events))
	for i := range r.events {
		events[i] = r.events[i].Clone()
	}
	return events, nil
}

// GetBySlug returns a single event or ErrNotFound.
func (r *EventRepository) GetBySlug(ctx context.Context, slug string) (model.Event, error) {
	if err := ctx.Err(); err != nil {
		return model.Event{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(slug)
	if i < 0 {
		return model.Event{}, ErrNotFound
	}
	return r.events[i].Clone(), nil
}

// Count returns the number of stored events.
func (r *EventRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// Book appends attendee to the event identified by slug.
//
// Reading the attendee count and appending must not be split: two callers
// that both observe 49/50 would otherwise both append and leave the event at
// 51/50. Holding the write lock across the check and the append makes the
// pair atomic with respect to every other Book call.
func (r *EventRepository) Book(ctx context.Context, slug string, attendee model.Attendee) (model.Event, error) {
	if err := ctx.Err(); err != nil {
		return model.Event{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(slug)
	if i < 0 {
		return model.Event{}, ErrNotFound
	}

	event := &r.events[i]
	if event.IsFull() {
		return model.Event{}, ErrEventFull
	}

	event.Attendees = append(event.Attendees, attendee)
	return event.Clone(), nil
}

// ListByEvent returns all attendees of an event in registration order.
func (r *EventRepository) ListByEvent(ctx context.Context, slug string) ([]model.Attendee, error) {
	event, err := r.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return event.Attendees, nil
}

// indexOf returns the position of the first event with slug, or -1.
// Callers must hold r.mu.
func (r *EventRepository) indexOf(slug string) int {
	for i := range r.events {
		if r.events[i].Slug == slug {
			return i
		}
	}
	return -1
}
