// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vibedev/internal/middleware"
	"vibedev/internal/models"
	"vibedev/internal/store"
)

// Events groups the community calendar handlers.
type Events struct {
	events *store.EventStore
}

// NewEvents creates a new Events handler group.
func NewEvents(events *store.EventStore) *Events {
	return &Events{events: events}
}

// Month returns the events of one calendar month. Defaults to the
// current month when year/month params are absent or malformed.
func (h *Events) Month(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		year = now.Year()
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	events, err := h.events.ListBetween(from, to)
	if err != nil {
		respondInternalError(w, "list events failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"year":   year,
		"month":  month,
	})
}

type eventRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	URL         *string    `json:"url"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

// Create inserts a calendar event. Admin-only.
func (h *Events) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateEvent(req.Title, deref(req.URL)); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.StartsAt.IsZero() {
		respondError(w, http.StatusBadRequest, "Start time is required.")
		return
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		respondError(w, http.StatusBadRequest, "End time must be after the start time.")
		return
	}

	event, err := h.events.Create(&models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		URL:         req.URL,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		CreatedBy:   sess.UserID,
	})
	if err != nil {
		respondInternalError(w, "create event failed", err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

// Update modifies an event. Admin-only.
func (h *Events) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event id")
		return
	}
	event, err := h.events.FindByID(id)
	if err != nil {
		respondInternalError(w, "find event failed", err)
		return
	}
	if event == nil {
		respondError(w, http.StatusNotFound, "Event not found")
		return
	}

	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateEvent(req.Title, deref(req.URL)); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		respondError(w, http.StatusBadRequest, "End time must be after the start time.")
		return
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.URL = req.URL
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt

	if err := h.events.Update(event); err != nil {
		respondInternalError(w, "update event failed", err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// Delete removes an event. Admin-only.
func (h *Events) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	if err := h.events.Delete(id); err != nil {
		respondInternalError(w, "delete event failed", err)
		return
	}
	respondSuccess(w)
}
