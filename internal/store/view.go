// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vibedev/internal/models"
)

// ViewStore handles the views table. Deduplication semantics live in the
// engagement package; the partial unique indexes on (entity, session,
// view_date) are the enforcement mechanism.
type ViewStore struct {
	db *sql.DB
}

// NewViewStore creates a new ViewStore with the given database connection.
func NewViewStore(db *sql.DB) *ViewStore {
	return &ViewStore{db: db}
}

// Insert adds a view row for the given entity on the given UTC calendar
// day. A unique-violation error is returned as-is so the caller can
// treat it as an idempotent no-op.
func (s *ViewStore) Insert(kind models.EntityKind, entityID uuid.UUID, sessionID *string, userID *uuid.UUID, day time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO views (`+entityColumn(kind)+`, session_id, user_id, view_date)
		 VALUES ($1, $2, $3, $4)`,
		entityID, sessionID, userID, day.UTC().Format("2006-01-02"),
	)
	if err != nil && !IsUniqueViolation(err) {
		return fmt.Errorf("insert view: %w", err)
	}
	return err
}

// CountByEntity returns the number of view rows for one entity.
func (s *ViewStore) CountByEntity(kind models.EntityKind, entityID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM views WHERE `+entityColumn(kind)+` = $1`,
		entityID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count views: %w", err)
	}
	return count, nil
}

// CountOnUserProjects returns the total views across all projects owned
// by the given user.
func (s *ViewStore) CountOnUserProjects(authorID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM views v
		JOIN projects p ON v.project_id = p.id
		WHERE p.author_id = $1
	`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count views on user projects: %w", err)
	}
	return count, nil
}

// CountOnUserPublishedPosts returns the total views across the user's
// published posts. Draft post views are not surfaced on profiles.
func (s *ViewStore) CountOnUserPublishedPosts(authorID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM views v
		JOIN posts p ON v.post_id = p.id
		WHERE p.author_id = $1 AND p.status = 'published'
	`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count views on user posts: %w", err)
	}
	return count, nil
}

// DeleteByEntity removes every view referencing an entity. Part of the
// explicit cascade executed before the parent row is deleted.
func (s *ViewStore) DeleteByEntity(kind models.EntityKind, entityID uuid.UUID) error {
	_, err := s.db.Exec(
		`DELETE FROM views WHERE `+entityColumn(kind)+` = $1`,
		entityID,
	)
	if err != nil {
		return fmt.Errorf("delete views by entity: %w", err)
	}
	return nil
}
