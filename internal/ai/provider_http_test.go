// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Wire-level provider tests against httptest servers. They pin the
// request shape each API expects (path, auth header, payload fields)
// and the parsing of well-formed, error, and empty responses.
package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const (
	testSystemPrompt = "You write one-line taglines for software projects."
	testUserPrompt   = "An open-source feature flag service with a Go SDK"
	testTagline      = "Flip features without redeploying"
)

func TestChatProviderGenerate(t *testing.T) {
	var gotReq chatRequest
	var gotAuth, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": testTagline}},
			},
		})
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL})

	got, err := p.Generate(context.Background(), testSystemPrompt, testUserPrompt)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != testTagline {
		t.Errorf("result: got %q, want %q", got, testTagline)
	}

	if gotPath != "/chat/completions" {
		t.Errorf("path: got %q, want /chat/completions", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth header: got %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("model: got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 ||
		gotReq.Messages[0].Role != "system" || gotReq.Messages[0].Content != testSystemPrompt ||
		gotReq.Messages[1].Role != "user" || gotReq.Messages[1].Content != testUserPrompt {
		t.Errorf("messages: got %+v", gotReq.Messages)
	}
}

func TestChatProviderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit exceeded"}}`))
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL})

	_, err := p.Generate(context.Background(), testSystemPrompt, testUserPrompt)
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "status 429") {
		t.Errorf("error should carry the status code: %v", err)
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("error should carry the API body: %v", err)
	}
}

func TestChatProviderEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL})

	if _, err := p.Generate(context.Background(), testSystemPrompt, testUserPrompt); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestChatProviderMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [`))
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL})

	if _, err := p.Generate(context.Background(), testSystemPrompt, testUserPrompt); err == nil {
		t.Error("expected error for truncated response body")
	}
}

func TestMistralUsesChatProtocol(t *testing.T) {
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": testTagline}},
			},
		})
	}))
	defer srv.Close()

	p := newMistral(ProviderConfig{APIKey: "mk-test", Model: "mistral-small-latest", BaseURL: srv.URL})

	got, err := p.Generate(context.Background(), testSystemPrompt, testUserPrompt)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != testTagline {
		t.Errorf("result: got %q", got)
	}
	if p.Name() != "mistral" {
		t.Errorf("Name: got %q, want mistral", p.Name())
	}
	if gotReq.Model != "mistral-small-latest" {
		t.Errorf("model: got %q", gotReq.Model)
	}
}

func TestClaudeGenerate(t *testing.T) {
	var gotReq claudeRequest
	var gotKey, gotVersion, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": testTagline},
			},
		})
	}))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "ak-test", Model: "claude-sonnet-4-20250514", BaseURL: srv.URL})

	got, err := p.Generate(context.Background(), testSystemPrompt, testUserPrompt)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != testTagline {
		t.Errorf("result: got %q", got)
	}

	if gotPath != "/v1/messages" {
		t.Errorf("path: got %q, want /v1/messages", gotPath)
	}
	if gotKey != "ak-test" {
		t.Errorf("x-api-key: got %q", gotKey)
	}
	if gotVersion != "2023-06-01" {
		t.Errorf("anthropic-version: got %q", gotVersion)
	}
	if gotReq.System != testSystemPrompt {
		t.Errorf("system: got %q", gotReq.System)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" || gotReq.Messages[0].Content != testUserPrompt {
		t.Errorf("messages: got %+v", gotReq.Messages)
	}
	if gotReq.MaxTokens == 0 {
		t.Error("max_tokens must be set, the Messages API rejects 0")
	}
}

func TestClaudeSkipsNonTextBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "thinking", "text": "considering options"},
				{"type": "text", "text": testTagline},
			},
		})
	}))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "ak-test", Model: "m", BaseURL: srv.URL})

	got, err := p.Generate(context.Background(), testSystemPrompt, testUserPrompt)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != testTagline {
		t.Errorf("expected first text block, got %q", got)
	}
}

func TestGeminiGenerate(t *testing.T) {
	var gotReq geminiRequest
	var gotKey, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": testTagline}}}},
			},
		})
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "gk-test", Model: "gemini-2.0-flash", BaseURL: srv.URL})

	got, err := p.Generate(context.Background(), testSystemPrompt, testUserPrompt)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != testTagline {
		t.Errorf("result: got %q", got)
	}

	if gotPath != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotKey != "gk-test" {
		t.Errorf("x-goog-api-key: got %q", gotKey)
	}
	if gotReq.SystemInstruction == nil ||
		len(gotReq.SystemInstruction.Parts) != 1 ||
		gotReq.SystemInstruction.Parts[0].Text != testSystemPrompt {
		t.Errorf("system_instruction: got %+v", gotReq.SystemInstruction)
	}
	if len(gotReq.Contents) != 1 ||
		len(gotReq.Contents[0].Parts) != 1 ||
		gotReq.Contents[0].Parts[0].Text != testUserPrompt {
		t.Errorf("contents: got %+v", gotReq.Contents)
	}
}

func TestGeminiNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "gk-test", Model: "gemini-2.0-flash", BaseURL: srv.URL})

	if _, err := p.Generate(context.Background(), testSystemPrompt, testUserPrompt); err == nil {
		t.Error("expected error for empty candidates")
	}
}

func TestOpenAIModeratorSafe(t *testing.T) {
	var gotAuth, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"flagged": false, "categories": map[string]bool{}},
			},
		})
	}))
	defer srv.Close()

	m := newOpenAIModerator("sk-test", srv.URL)

	result, err := m.CheckSafety(context.Background(), "Make my project pitch more concise")
	if err != nil {
		t.Fatalf("CheckSafety: %v", err)
	}
	if !result.Safe {
		t.Error("expected safe result")
	}
	if len(result.Categories) != 0 {
		t.Errorf("categories should be empty, got %v", result.Categories)
	}

	if gotPath != "/moderations" {
		t.Errorf("path: got %q, want /moderations", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth header: got %q", gotAuth)
	}
}

func TestOpenAIModeratorFlagged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"flagged": true,
					"categories": map[string]bool{
						"harassment":       true,
						"hate/threatening": true,
						"self_harm":        false,
					},
				},
			},
		})
	}))
	defer srv.Close()

	m := newOpenAIModerator("sk-test", srv.URL)

	result, err := m.CheckSafety(context.Background(), "some reported comment text")
	if err != nil {
		t.Fatalf("CheckSafety: %v", err)
	}
	if result.Safe {
		t.Fatal("expected flagged result")
	}
	if len(result.Categories) != 2 {
		t.Fatalf("categories: got %v, want 2 entries", result.Categories)
	}

	// Slash and underscore forms are rewritten for display.
	joined := strings.Join(result.Categories, "|")
	if !strings.Contains(joined, "hate (threatening)") {
		t.Errorf("expected readable category name, got %v", result.Categories)
	}
}

func TestMistralModeratorFlagsByCategory(t *testing.T) {
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		// Mistral responses carry no top-level flagged field.
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"categories": map[string]bool{"violence_and_threats": true, "pii": false}},
			},
		})
	}))
	defer srv.Close()

	m := newMistralModerator("mk-test", srv.URL)

	result, err := m.CheckSafety(context.Background(), "some reported comment text")
	if err != nil {
		t.Fatalf("CheckSafety: %v", err)
	}
	if result.Safe {
		t.Error("expected unsafe result when a category is flagged")
	}
	if len(result.Categories) != 1 || result.Categories[0] != "violence and threats" {
		t.Errorf("categories: got %v", result.Categories)
	}

	if gotPath != "/v1/moderations" {
		t.Errorf("path: got %q, want /v1/moderations", gotPath)
	}
}

func TestMistralModeratorAllClear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"categories": map[string]bool{"violence_and_threats": false}},
			},
		})
	}))
	defer srv.Close()

	m := newMistralModerator("mk-test", srv.URL)

	result, err := m.CheckSafety(context.Background(), "nice project, congrats on shipping")
	if err != nil {
		t.Fatalf("CheckSafety: %v", err)
	}
	if !result.Safe {
		t.Errorf("expected safe result, got categories %v", result.Categories)
	}
}

func TestModeratorAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer srv.Close()

	m := newOpenAIModerator("sk-bad", srv.URL)

	if _, err := m.CheckSafety(context.Background(), "text"); err == nil {
		t.Error("expected error for 401 response")
	}
}

func TestNewRegistryPrefersOpenAIModeration(t *testing.T) {
	openaiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"flagged": false}},
		})
	}))
	defer openaiSrv.Close()

	mistralSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("mistral moderation should not be called when an OpenAI key exists")
	}))
	defer mistralSrv.Close()

	reg := NewRegistry("openai", map[string]ProviderConfig{
		"openai":  {APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: openaiSrv.URL},
		"mistral": {APIKey: "mk-test", Model: "mistral-small-latest", BaseURL: mistralSrv.URL},
	})

	result, err := reg.CheckPrompt(context.Background(), "shorten this tagline")
	if err != nil {
		t.Fatalf("CheckPrompt: %v", err)
	}
	if !result.Safe {
		t.Error("expected safe result")
	}
}
