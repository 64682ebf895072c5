// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vibedev/internal/models"
)

// StatsStore exposes the precomputed profile_stats database function.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore creates a new StatsStore with the given database connection.
func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// ProfileStats calls the profile_stats(uuid) function and scans its single
// row. If the function is missing from the schema the driver reports
// undefined_function; callers detect that with IsUndefinedFunction and
// fall back to composed queries.
func (s *StatsStore) ProfileStats(ctx context.Context, userID uuid.UUID) (*models.ProfileStats, error) {
	st := &models.ProfileStats{}
	err := s.db.QueryRowContext(ctx,
		`SELECT projects, posts, likes, views FROM profile_stats($1)`,
		userID,
	).Scan(&st.Projects, &st.Posts, &st.Likes, &st.Views)
	if err != nil {
		return nil, fmt.Errorf("profile stats function: %w", err)
	}
	return st, nil
}
