// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engagement implements the view, like, and profile-stat
// counting rules on top of the row-level stores. Correctness under
// concurrency comes from database constraints, not locks: duplicate
// view and like inserts surface as unique violations and are absorbed
// here with the semantics each operation needs.
package engagement

import (
	"log/slog"
	"time"

	"vibedev/internal/store"
)

// viewTimeout bounds the detached goroutine that records a view after
// the response has already been written.
const viewTimeout = 5 * time.Second

// Service bundles the engagement operations. All methods are safe for
// concurrent use.
type Service struct {
	likes    *store.LikeStore
	views    *store.ViewStore
	projects *store.ProjectStore
	posts    *store.PostStore
	stats    *store.StatsStore
	log      *slog.Logger
}

// New creates an engagement Service on top of the given stores.
func New(likes *store.LikeStore, views *store.ViewStore, projects *store.ProjectStore, posts *store.PostStore, stats *store.StatsStore, log *slog.Logger) *Service {
	return &Service{
		likes:    likes,
		views:    views,
		projects: projects,
		posts:    posts,
		stats:    stats,
		log:      log,
	}
}
