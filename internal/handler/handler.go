// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Shivanand-hulikatti/eventos/internal/model"
	"github.com/Shivanand-hulikatti/eventos/internal/repository"
	"github.com/Shivanand-hulikatti/eventos/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"
)

// EventHandler holds all HTTP handlers for the event catalog.
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// errBadForm reports a body that could not be read as JSON or a form.
var errBadForm = errors.New("malformed request body")

func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(1 << 20)
	}
	return r.ParseForm()
}

// pathParam returns the decoded chi URL parameter. chi matches against
// RawPath when the request carries one, leaving escapes such as %C3%B3 in
// the value.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

// checked reports whether a checkbox value means "on".
func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "y", "yes", "si", "sí":
		return true
	}
	return false
}

// decodeCreateEvent reads a create-event submission from JSON or form data.
// A non-numeric max_attendees in a form is reported as a field error.
func decodeCreateEvent(w http.ResponseWriter, r *http.Request) (model.CreateEventRequest, error) {
	var req model.CreateEventRequest
	if !isForm(r) {
		if err := decodeJSON(w, r, &req); err != nil {
			return req, errors.Join(errBadForm, err)
		}
		return req, nil
	}

	if err := parseForm(w, r); err != nil {
		return req, errors.Join(errBadForm, err)
	}
	req = model.CreateEventRequest{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Date:        r.PostFormValue("date"),
		Time:        r.PostFormValue("time"),
		Location:    r.PostFormValue("location"),
		Category:    r.PostFormValue("category"),
		Featured:    checked(r.PostFormValue("featured")),
	}
	if raw := strings.TrimSpace(r.PostFormValue("max_attendees")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, &service.ValidationError{
				Kind:   service.ErrValidation,
				Fields: map[string]string{"max_attendees": "Debe ser un número entero."},
			}
		}
		req.MaxAttendees = n
	}
	return req, nil
}

func decodeRegister(w http.ResponseWriter, r *http.Request) (model.RegisterRequest, error) {
	var req model.RegisterRequest
	if !isForm(r) {
		if err := decodeJSON(w, r, &req); err != nil {
			return req, errors.Join(errBadForm, err)
		}
		return req, nil
	}

	if err := parseForm(w, r); err != nil {
		return req, errors.Join(errBadForm, err)
	}
	return model.RegisterRequest{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
	}, nil
}

// writeServiceError maps catalog errors to status codes and user-facing
// messages. Validation failures echo per-field messages.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, errBadForm):
		writeError(w, http.StatusBadRequest, service.MsgInvalidRequest)
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
			Error:  service.MsgInvalidForm,
			Fields: verr.Fields,
		})
	case errors.Is(err, service.ErrInvalidDateTime):
		writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
			Error: service.MsgInvalidDateTime,
			Fields: map[string]string{
				"date": "Use el formato YYYY-MM-DD.",
				"time": "Use el formato HH:MM.",
			},
		})
	case errors.Is(err, repository.ErrDuplicateSlug):
		writeJSON(w, http.StatusConflict, model.ErrorResponse{
			Error:  service.MsgDuplicateTitle,
			Fields: map[string]string{"title": service.MsgDuplicateTitle},
		})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, service.MsgEventNotFound)
	case errors.Is(err, repository.ErrEventFull):
		writeError(w, http.StatusConflict, service.MsgEventFull)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, service.MsgInternalError)
	}
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// Home handles GET /
// Returns upcoming events, the featured subset and the category list.
func (h *EventHandler) Home(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Home(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Categories handles GET /categories
func (h *EventHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Categories())
}

// GetEvent handles GET /events/{slug}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.GetEvent(r.Context(), pathParam(r, "slug"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// CreateEvent handles POST /admin/events
// Accepts JSON or a form post and returns the stored event.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateEvent(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	event, err := h.svc.CreateEvent(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/events/"+event.Slug)
	writeJSON(w, http.StatusCreated, event)
}

// Register handles POST /events/{slug}/register
// Performs a capacity-checked registration for the specified event.
// An unknown slug is reported as 404 before the body is read.
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	slug := pathParam(r, "slug")
	if _, err := h.svc.GetEvent(r.Context(), slug); err != nil {
		writeServiceError(w, r, err)
		return
	}

	req, err := decodeRegister(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	conf, err := h.svc.Register(r.Context(), slug, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, conf)
}

// ListRegistrations handles GET /events/{slug}/registrations
// Returns all attendees of an event in registration order.
func (h *EventHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	attendees, err := h.svc.ListRegistrations(r.Context(), pathParam(r, "slug"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attendees)
}

// ListByCategory handles GET /events/category/{category}
// Unknown categories yield an empty list, not an error.
func (h *EventHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.CategoryView(r.Context(), pathParam(r, "category"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// CSRFToken handles GET /csrf
// The token is empty when CSRF protection is disabled.
func CSRFToken(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"token": csrf.Token(r)})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
