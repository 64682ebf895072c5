// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// EntityKind distinguishes the two content kinds that accrue views,
// likes, and comments. A like or view row references exactly one of them.
type EntityKind string

const (
	EntityProject EntityKind = "project"
	EntityPost    EntityKind = "post"
)

// Like records one user liking one entity. The (entity, user) pair is
// unique at the database level; that constraint, not application locking,
// is what keeps concurrent toggles from double-counting.
type Like struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	PostID    *uuid.UUID `json:"post_id,omitempty"`
	UserID    uuid.UUID  `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
}

// EntityID returns whichever entity reference is set.
func (l *Like) EntityID() uuid.UUID {
	if l.ProjectID != nil {
		return *l.ProjectID
	}
	if l.PostID != nil {
		return *l.PostID
	}
	return uuid.Nil
}

// View records one page view. At most one row exists per (entity,
// session, calendar day); rows with a null session are never deduplicated.
type View struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	PostID    *uuid.UUID `json:"post_id,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	SessionID *string    `json:"session_id,omitempty"`
	ViewDate  time.Time  `json:"view_date"`
	CreatedAt time.Time  `json:"created_at"`
}

// LikeStatus is the per-entity result of a batch like lookup.
type LikeStatus struct {
	TotalLikes int  `json:"total_likes"`
	IsLiked    bool `json:"is_liked"`
}
