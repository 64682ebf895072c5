// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// ModerationResult contains the outcome of a prompt safety check.
type ModerationResult struct {
	Safe       bool     // true if the prompt passes moderation
	Categories []string // flagged category names (empty when safe)
}

// Moderator checks user text for policy violations before it reaches a
// generation endpoint or lands in a report triage note.
type Moderator interface {
	CheckSafety(ctx context.Context, text string) (*ModerationResult, error)
}

// moderationRequest is the wire format shared by the OpenAI and Mistral
// moderation endpoints.
type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged    bool            `json:"flagged"`
		Categories map[string]bool `json:"categories"`
	} `json:"results"`
}

// openAIModerator uses the OpenAI moderation API (POST /moderations),
// which is free for all OpenAI API key holders.
type openAIModerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newOpenAIModerator(apiKey, baseURL string) *openAIModerator {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &openAIModerator{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *openAIModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	body := moderationRequest{Model: "omni-moderation-latest", Input: text}
	headers := map[string]string{"Authorization": "Bearer " + m.apiKey}

	var result moderationResponse
	err := postJSON(ctx, m.client, m.baseURL+"/moderations", headers, body, &result, "moderation")
	if err != nil {
		return nil, err
	}

	if len(result.Results) == 0 || !result.Results[0].Flagged {
		return &ModerationResult{Safe: true}, nil
	}
	return &ModerationResult{
		Safe:       false,
		Categories: flaggedCategories(result.Results[0].Categories),
	}, nil
}

// mistralModerator uses the Mistral moderation API (POST /v1/moderations).
// Used when no OpenAI key is configured.
type mistralModerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newMistralModerator(apiKey, baseURL string) *mistralModerator {
	if baseURL == "" {
		baseURL = "https://api.mistral.ai"
	}
	return &mistralModerator{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *mistralModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	body := moderationRequest{Model: "mistral-moderation-latest", Input: text}
	headers := map[string]string{"Authorization": "Bearer " + m.apiKey}

	var result moderationResponse
	err := postJSON(ctx, m.client, m.baseURL+"/v1/moderations", headers, body, &result, "mistral moderation")
	if err != nil {
		return nil, err
	}

	if len(result.Results) == 0 {
		return &ModerationResult{Safe: true}, nil
	}

	// Mistral has no top-level flagged field; any flagged category
	// makes the text unsafe.
	flagged := flaggedCategories(result.Results[0].Categories)
	return &ModerationResult{
		Safe:       len(flagged) == 0,
		Categories: flagged,
	}, nil
}

// flaggedCategories converts the per-category flag map into readable
// names: "hate/threatening" becomes "hate (threatening)" and
// underscores become spaces.
func flaggedCategories(categories map[string]bool) []string {
	var flagged []string
	for cat, isFlagged := range categories {
		if !isFlagged {
			continue
		}
		display := strings.ReplaceAll(cat, "/", " (")
		if strings.Contains(cat, "/") {
			display += ")"
		}
		flagged = append(flagged, strings.ReplaceAll(display, "_", " "))
	}
	return flagged
}
