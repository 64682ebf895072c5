// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidateProject(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		tagline     string
		description string
		tags        []string
		wantErr     bool
	}{
		{
			name:    "valid minimal project",
			title:   "My Widget",
			wantErr: false,
		},
		{
			name:        "valid full project",
			title:       "My Widget",
			tagline:     "A widget that does widget things",
			description: "Long description here.",
			tags:        []string{"go", "cli"},
			wantErr:     false,
		},
		{
			name:    "empty title",
			title:   "",
			wantErr: true,
		},
		{
			name:    "whitespace-only title",
			title:   "   ",
			wantErr: true,
		},
		{
			name:    "title too long",
			title:   strings.Repeat("x", maxTitleLen+1),
			wantErr: true,
		},
		{
			name:    "tagline too long",
			title:   "ok",
			tagline: strings.Repeat("x", maxTaglineLen+1),
			wantErr: true,
		},
		{
			name:        "description too long",
			title:       "ok",
			description: strings.Repeat("x", maxDescriptionLen+1),
			wantErr:     true,
		},
		{
			name:    "too many tags",
			title:   "ok",
			tags:    make([]string, maxTagCount+1),
			wantErr: true,
		},
		{
			name:    "tag too long",
			title:   "ok",
			tags:    []string{strings.Repeat("x", maxTagLen+1)},
			wantErr: true,
		},
		{
			name:    "multibyte title at limit",
			title:   strings.Repeat("ü", maxTitleLen),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateProject(tt.title, tt.tagline, tt.description, tt.tags)
			if (got != "") != tt.wantErr {
				t.Errorf("validateProject: got %q, wantErr=%v", got, tt.wantErr)
			}
		})
	}
}

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		body    string
		wantErr bool
	}{
		{"valid post", "Hello World", "Some body text.", false},
		{"empty title", "", "body", true},
		{"title too long", strings.Repeat("x", maxTitleLen+1), "body", true},
		{"body too long", "ok", strings.Repeat("x", maxBodyLen+1), true},
		{"empty body is fine for drafts", "Draft title", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validatePost(tt.title, tt.body)
			if (got != "") != tt.wantErr {
				t.Errorf("validatePost: got %q, wantErr=%v", got, tt.wantErr)
			}
		})
	}
}

func TestValidateComment(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		guestName     string
		authenticated bool
		wantErr       bool
	}{
		{"authenticated comment", "Nice project!", "", true, false},
		{"guest comment with name", "Nice project!", "Visitor", false, false},
		{"guest comment missing name", "Nice project!", "", false, true},
		{"guest name whitespace only", "Nice project!", "   ", false, true},
		{"empty content", "", "Visitor", false, true},
		{"content too long", strings.Repeat("x", maxCommentLen+1), "", true, true},
		{"guest name too long", "hi", strings.Repeat("x", maxGuestNameLen+1), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateComment(tt.content, tt.guestName, tt.authenticated)
			if (got != "") != tt.wantErr {
				t.Errorf("validateComment: got %q, wantErr=%v", got, tt.wantErr)
			}
		})
	}
}

func TestValidateEvent(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		url     string
		wantErr bool
	}{
		{"valid event", "Go Meetup", "https://example.com/meetup", false},
		{"valid without url", "Go Meetup", "", false},
		{"empty title", "", "", true},
		{"url too long", "ok", "https://example.com/" + strings.Repeat("x", maxURLLen), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateEvent(tt.title, tt.url)
			if (got != "") != tt.wantErr {
				t.Errorf("validateEvent: got %q, wantErr=%v", got, tt.wantErr)
			}
		})
	}
}

func TestPageParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"page=0", 1},
		{"page=-3", 1},
		{"page=abc", 1},
		{"page=1", 1},
		{"page=7", 7},
	}

	for _, tt := range tests {
		t.Run("q="+tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/projects?"+tt.query, nil)
			if got := pageParam(r); got != tt.want {
				t.Errorf("pageParam(%q): got %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}
