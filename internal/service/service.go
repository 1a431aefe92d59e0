// Package service implements the event catalog: validation, slug derivation,
// listing and registration on top of the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/eventos/internal/metrics"
	"github.com/Shivanand-hulikatti/eventos/internal/model"
	"github.com/Shivanand-hulikatti/eventos/internal/repository"
	"github.com/Shivanand-hulikatti/eventos/internal/sanitize"
	"github.com/Shivanand-hulikatti/eventos/internal/telemetry"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// EventService orchestrates event-related business operations.
type EventService struct {
	events   *repository.EventRepository
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
	loc      *time.Location
}

// Option customises an EventService.
type Option func(*EventService)

// WithClock replaces time.Now, which decides "today" and registration times.
func WithClock(now func() time.Time) Option {
	return func(s *EventService) { s.now = now }
}

// WithLocation sets the timezone in which event dates and times are read.
func WithLocation(loc *time.Location) Option {
	return func(s *EventService) { s.loc = loc }
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events *repository.EventRepository, logger zerolog.Logger, opts ...Option) *EventService {
	s := &EventService{
		events:   events,
		validate: newValidator(),
		logger:   logger.With().Str("component", "catalog").Logger(),
		now:      time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	metrics.CatalogEvents.Set(float64(events.Count()))
	return s
}

// Categories returns the fixed category enumeration.
func (s *EventService) Categories() []model.Category {
	return model.Categories()
}

// GetEvent returns a single event by slug.
func (s *EventService) GetEvent(ctx context.Context, slug string) (model.Event, error) {
	if slug == "" {
		return model.Event{}, repository.ErrNotFound
	}
	event, err := s.events.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Event{}, repository.ErrNotFound
		}
		return model.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// ListUpcoming returns events dated on or after the calendar day of ref,
// ordered by start instant. Events starting at the same instant keep their
// creation order.
func (s *EventService) ListUpcoming(ctx context.Context, ref time.Time) ([]model.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	ref = ref.In(s.loc)
	today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, s.loc)

	upcoming := make([]model.Event, 0, len(events))
	for _, e := range events {
		day, err := time.ParseInLocation(model.DateLayout, e.Date, s.loc)
		if err != nil {
			s.logger.Warn().Str("slug", e.Slug).Str("date", e.Date).Msg("skipping event with unparseable date")
			continue
		}
		if !day.Before(today) {
			upcoming = append(upcoming, e)
		}
	}
	return s.sortByStart(upcoming), nil
}

// ListFeatured returns the featured events of events, order preserved.
func ListFeatured(events []model.Event) []model.Event {
	featured := make([]model.Event, 0)
	for _, e := range events {
		if e.Featured {
			featured = append(featured, e)
		}
	}
	return featured
}

// ListByCategory returns the events whose category matches category
// ignoring case, ordered by start instant with ties in creation order.
// An unknown category yields an empty list.
func (s *EventService) ListByCategory(ctx context.Context, category string) ([]model.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	filtered := make([]model.Event, 0)
	for _, e := range events {
		if sameCategory(string(e.Category), category) {
			filtered = append(filtered, e)
		}
	}
	return s.sortByStart(filtered), nil
}

// Home returns today's upcoming events, their featured subset and the
// category list.
func (s *EventService) Home(ctx context.Context) (model.HomeView, error) {
	upcoming, err := s.ListUpcoming(ctx, s.now())
	if err != nil {
		return model.HomeView{}, err
	}
	return model.HomeView{
		Events:     upcoming,
		Featured:   ListFeatured(upcoming),
		Categories: s.Categories(),
	}, nil
}

// CategoryView is Home restricted to one category, including past events.
func (s *EventService) CategoryView(ctx context.Context, category string) (model.HomeView, error) {
	events, err := s.ListByCategory(ctx, category)
	if err != nil {
		return model.HomeView{}, err
	}
	return model.HomeView{
		Events:     events,
		Featured:   ListFeatured(events),
		Categories: s.Categories(),
	}, nil
}

// CreateEvent validates the request and stores a new event.
//
// Errors, in the order they are checked: *ValidationError (ErrValidation),
// repository.ErrDuplicateSlug, ErrInvalidDateTime. The catalog is unchanged
// whenever an error is returned.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (event model.Event, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "catalog.CreateEvent")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	markup := plainText(map[string]*string{
		"title":    &req.Title,
		"location": &req.Location,
	})
	req.Description = sanitize.HTML(req.Description)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.Category = strings.TrimSpace(req.Category)

	if err := withFieldErrors(validateStruct(s.validate, req, ErrValidation), ErrValidation, markup); err != nil {
		metrics.EventsCreated.WithLabelValues("invalid").Inc()
		return model.Event{}, err
	}

	slug := Slugify(req.Title)
	if slug == "" {
		metrics.EventsCreated.WithLabelValues("invalid").Inc()
		return model.Event{}, &ValidationError{
			Kind:   ErrValidation,
			Fields: map[string]string{"title": "El título debe contener letras o números."},
		}
	}
	span.SetAttributes(attribute.String("event.slug", slug))

	// Checked before the date so a repeated title reports the conflict first;
	// repository.Create checks again under its lock.
	if _, err := s.events.GetBySlug(ctx, slug); err == nil {
		metrics.EventsCreated.WithLabelValues("duplicate_slug").Inc()
		return model.Event{}, repository.ErrDuplicateSlug
	}

	if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		metrics.EventsCreated.WithLabelValues("invalid_datetime").Inc()
		return model.Event{}, ErrInvalidDateTime
	}
	start, err := time.Parse(model.TimeLayout, req.Time)
	if err != nil {
		metrics.EventsCreated.WithLabelValues("invalid_datetime").Inc()
		return model.Event{}, ErrInvalidDateTime
	}
	// "15:04" also accepts a one-digit hour; store the canonical HH:MM.
	req.Time = start.Format(model.TimeLayout)

	event, err = s.events.Create(ctx, model.Event{
		Title:        req.Title,
		Slug:         slug,
		Description:  req.Description,
		Date:         req.Date,
		Time:         req.Time,
		Location:     req.Location,
		Category:     model.Category(req.Category),
		MaxAttendees: req.MaxAttendees,
		Featured:     req.Featured,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			metrics.EventsCreated.WithLabelValues("duplicate_slug").Inc()
			return model.Event{}, err
		}
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}

	metrics.EventsCreated.WithLabelValues("created").Inc()
	metrics.CatalogEvents.Set(float64(s.events.Count()))
	span.SetAttributes(attribute.Int("event.id", event.ID))

	s.logger.Info().
		Int("event_id", event.ID).
		Str("slug", event.Slug).
		Str("category", string(event.Category)).
		Int("max_attendees", event.MaxAttendees).
		Msg("event created")

	return event, nil
}

// Register adds an attendee to the event identified by slug.
//
// Errors, in the order they are checked: repository.ErrNotFound,
// repository.ErrEventFull, *ValidationError (ErrInvalidAttendee). The same
// email may register more than once.
func (s *EventService) Register(ctx context.Context, slug string, req model.RegisterRequest) (conf model.Confirmation, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "catalog.Register")
	span.SetAttributes(attribute.String("event.slug", slug))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	current, err := s.GetEvent(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.Registrations.WithLabelValues("not_found").Inc()
		}
		return model.Confirmation{}, err
	}
	if current.IsFull() {
		metrics.Registrations.WithLabelValues("full").Inc()
		return model.Confirmation{}, repository.ErrEventFull
	}

	markup := plainText(map[string]*string{"name": &req.Name})
	req.Email = strings.TrimSpace(req.Email)
	if err := withFieldErrors(validateStruct(s.validate, req, ErrInvalidAttendee), ErrInvalidAttendee, markup); err != nil {
		metrics.Registrations.WithLabelValues("invalid").Inc()
		return model.Confirmation{}, err
	}

	attendee := model.Attendee{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		RegisteredAt: s.now().UTC(),
	}

	event, err := s.events.Book(ctx, slug, attendee)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventFull):
			metrics.Registrations.WithLabelValues("full").Inc()
			return model.Confirmation{}, err
		case errors.Is(err, repository.ErrNotFound):
			metrics.Registrations.WithLabelValues("not_found").Inc()
			return model.Confirmation{}, err
		}
		return model.Confirmation{}, fmt.Errorf("register for event: %w", err)
	}

	metrics.Registrations.WithLabelValues("registered").Inc()
	s.logger.Info().
		Str("slug", slug).
		Str("attendee_id", attendee.ID).
		Int("attendees", len(event.Attendees)).
		Int("max_attendees", event.MaxAttendees).
		Msg("attendee registered")

	return model.Confirmation{
		Message:   MsgRegistered,
		EventSlug: event.Slug,
		Attendee:  attendee,
		Remaining: event.Remaining(),
	}, nil
}

// ListRegistrations returns all attendees of an event in registration order.
func (s *EventService) ListRegistrations(ctx context.Context, slug string) ([]model.Attendee, error) {
	attendees, err := s.events.ListByEvent(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return attendees, nil
}

// sortByStart stably orders events by their combined date and time.
func (s *EventService) sortByStart(events []model.Event) []model.Event {
	type keyed struct {
		event model.Event
		start time.Time
	}

	items := make([]keyed, len(events))
	for i := range events {
		start, err := events[i].StartsAt(s.loc)
		if err != nil {
			s.logger.Warn().Str("slug", events[i].Slug).Msg("event has unparseable date or time")
		}
		items[i] = keyed{event: events[i], start: start}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		return a.start.Compare(b.start)
	})

	sorted := make([]model.Event, len(items))
	for i := range items {
		sorted[i] = items[i].event
	}
	return sorted
}
