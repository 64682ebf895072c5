// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vibedev/internal/models"
)

// entityColumn maps an entity kind to its foreign-key column in the
// likes and views tables.
func entityColumn(kind models.EntityKind) string {
	if kind == models.EntityPost {
		return "post_id"
	}
	return "project_id"
}

// LikeStore handles the likes table. The higher-level toggle and batch
// semantics live in the engagement package; this store only exposes the
// row-level primitives.
type LikeStore struct {
	db *sql.DB
}

// NewLikeStore creates a new LikeStore with the given database connection.
func NewLikeStore(db *sql.DB) *LikeStore {
	return &LikeStore{db: db}
}

// Exists reports whether a like row exists for (entity, user).
func (s *LikeStore) Exists(kind models.EntityKind, entityID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM likes WHERE `+entityColumn(kind)+` = $1 AND user_id = $2)`,
		entityID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("like exists: %w", err)
	}
	return exists, nil
}

// Insert adds a like row for (entity, user). A unique-violation error is
// returned as-is so callers can treat the race as success.
func (s *LikeStore) Insert(kind models.EntityKind, entityID, userID uuid.UUID) error {
	_, err := s.db.Exec(
		`INSERT INTO likes (`+entityColumn(kind)+`, user_id) VALUES ($1, $2)`,
		entityID, userID,
	)
	if err != nil && !IsUniqueViolation(err) {
		return fmt.Errorf("insert like: %w", err)
	}
	return err
}

// Delete removes the like row for (entity, user), if any.
func (s *LikeStore) Delete(kind models.EntityKind, entityID, userID uuid.UUID) error {
	_, err := s.db.Exec(
		`DELETE FROM likes WHERE `+entityColumn(kind)+` = $1 AND user_id = $2`,
		entityID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	return nil
}

// ListByEntityIDs fetches every like row whose entity reference is in
// ids, in a single query. The engagement aggregator groups the result in
// memory; this avoids one count query per entity.
func (s *LikeStore) ListByEntityIDs(kind models.EntityKind, ids []uuid.UUID) ([]models.Like, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	// database/sql has no native uuid-slice binding; pass text[] and cast.
	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}

	rows, err := s.db.Query(
		`SELECT id, project_id, post_id, user_id, created_at
		 FROM likes WHERE `+entityColumn(kind)+` = ANY($1::uuid[])`,
		idStrs,
	)
	if err != nil {
		return nil, fmt.Errorf("list likes by entity ids: %w", err)
	}
	defer rows.Close()

	var likes []models.Like
	for rows.Next() {
		var l models.Like
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.PostID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}

// CountByEntity returns the number of likes on one entity.
func (s *LikeStore) CountByEntity(kind models.EntityKind, entityID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM likes WHERE `+entityColumn(kind)+` = $1`,
		entityID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

// CountOnUserProjects returns the total likes received across all
// projects owned by the given user.
func (s *LikeStore) CountOnUserProjects(authorID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM likes l
		JOIN projects p ON l.project_id = p.id
		WHERE p.author_id = $1
	`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes on user projects: %w", err)
	}
	return count, nil
}

// DeleteByEntity removes every like referencing an entity. Part of the
// explicit cascade executed before the parent row is deleted.
func (s *LikeStore) DeleteByEntity(kind models.EntityKind, entityID uuid.UUID) error {
	_, err := s.db.Exec(
		`DELETE FROM likes WHERE `+entityColumn(kind)+` = $1`,
		entityID,
	)
	if err != nil {
		return fmt.Errorf("delete likes by entity: %w", err)
	}
	return nil
}
