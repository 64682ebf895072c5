// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"vibedev/internal/ai"
	"vibedev/internal/engagement"
	"vibedev/internal/models"
	"vibedev/internal/store"
)

// System prompts for the editorial assist endpoints.
const (
	taglineSystemPrompt = "You write one-line taglines for software projects. " +
		"Answer with a single tagline of at most 12 words, no quotes, no preamble."

	descriptionSystemPrompt = "You edit software project descriptions. Improve clarity " +
		"and flow while keeping the author's facts and voice. Answer with the revised " +
		"description only, in Markdown."
)

// Assist groups the AI editorial handlers and the leaderboard.
type Assist struct {
	projects   *store.ProjectStore
	engagement *engagement.Service
	aiRegistry *ai.Registry // may be nil when no provider is configured
}

// NewAssist creates a new Assist handler group.
func NewAssist(projects *store.ProjectStore, eng *engagement.Service, aiRegistry *ai.Registry) *Assist {
	return &Assist{projects: projects, engagement: eng, aiRegistry: aiRegistry}
}

// Leaderboard returns the projects in the "ai" category ranked by the
// top comparator.
func (h *Assist) Leaderboard(w http.ResponseWriter, r *http.Request) {
	filter := store.ProjectFilter{Category: "ai", Page: pageParam(r)}

	projects, err := h.projects.List(filter)
	if err != nil {
		respondInternalError(w, "leaderboard list failed", err)
		return
	}

	ids := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	_, userID := viewer(r)

	statuses := h.engagement.BatchLikeStatus(r.Context(), models.EntityProject, ids, userID)
	joined := engagement.JoinEngagement(projects, statuses)
	engagement.SortProjects(joined, models.SortTop)

	respondJSON(w, http.StatusOK, map[string]any{
		"projects": joined,
		"page":     pageParam(r),
	})
}

type assistRequest struct {
	Text string `json:"text"`
}

// SuggestTagline generates a one-line tagline from a project description.
func (h *Assist) SuggestTagline(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, taglineSystemPrompt)
}

// ImproveDescription rewrites a project description for clarity.
func (h *Assist) ImproveDescription(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, descriptionSystemPrompt)
}

// generate runs the shared moderation-then-generation pipeline for the
// assist endpoints.
func (h *Assist) generate(w http.ResponseWriter, r *http.Request, systemPrompt string) {
	if h.aiRegistry == nil {
		respondError(w, http.StatusServiceUnavailable, "No AI provider configured")
		return
	}

	var req assistRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		respondError(w, http.StatusBadRequest, "Text is required.")
		return
	}
	if len(text) > maxDescriptionLen {
		respondError(w, http.StatusBadRequest, "Text is too long.")
		return
	}

	// Moderation first; a flagged prompt never reaches the provider.
	modResult, err := h.aiRegistry.CheckPrompt(r.Context(), text)
	if err != nil {
		respondInternalError(w, "moderation check failed", err)
		return
	}
	if !modResult.Safe {
		respondError(w, http.StatusBadRequest,
			"Your text was flagged by content moderation: "+strings.Join(modResult.Categories, ", "))
		return
	}

	result, err := h.aiRegistry.Generate(r.Context(), systemPrompt, text)
	if err != nil {
		respondInternalError(w, "ai generation failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"result":   strings.TrimSpace(result),
		"provider": h.aiRegistry.ActiveName(),
	})
}
