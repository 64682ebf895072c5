// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a showcased community project. The slug is derived
// from the title at creation time and never changes afterwards, even if
// the title is edited.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Tagline     *string   `json:"tagline,omitempty"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	WebsiteURL  *string   `json:"website_url,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	FaviconURL  *string   `json:"favicon_url,omitempty"`
	Tags        []string  `json:"tags"`
	Featured    bool      `json:"featured"`
	AuthorID    uuid.UUID `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectWithEngagement is a project joined with its aggregated like data
// for the requesting user. Used by listing endpoints.
type ProjectWithEngagement struct {
	Project
	LikeCount int  `json:"like_count"`
	IsLiked   bool `json:"is_liked"`
}

// ProjectSort is the ordering mode for project listings.
type ProjectSort string

const (
	SortNewest   ProjectSort = "newest"
	SortTop      ProjectSort = "top"
	SortTrending ProjectSort = "trending"
)

// ParseProjectSort maps a query-parameter value onto a sort mode,
// defaulting to trending for unrecognized input.
func ParseProjectSort(s string) ProjectSort {
	switch s {
	case "newest":
		return SortNewest
	case "top":
		return SortTop
	default:
		return SortTrending
	}
}
