// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func TestParseProjectSort(t *testing.T) {
	tests := []struct {
		input string
		want  ProjectSort
	}{
		{"newest", SortNewest},
		{"top", SortTop},
		{"trending", SortTrending},
		{"", SortTrending},
		{"TRENDING", SortTrending},
		{"garbage", SortTrending},
	}

	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			if got := ParseProjectSort(tt.input); got != tt.want {
				t.Errorf("ParseProjectSort(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPostIsPublished(t *testing.T) {
	tests := []struct {
		name   string
		status PostStatus
		want   bool
	}{
		{"published", PostStatusPublished, true},
		{"draft", PostStatusDraft, false},
		{"empty status", PostStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Post{Status: tt.status}
			if got := p.IsPublished(); got != tt.want {
				t.Errorf("IsPublished() = %v, want %v", got, tt.want)
			}
		})
	}
}
