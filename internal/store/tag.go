package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vibedev/internal/models"
	"vibedev/internal/slug"
)

// TagStore handles blog tag operations, including the post_tags join table.
type TagStore struct {
	db *sql.DB
}

// NewTagStore creates a new TagStore with the given database connection.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

// EnsureByName returns the tag with the given name, creating it (with a
// derived slug) if it does not exist yet.
func (s *TagStore) EnsureByName(name string) (*models.Tag, error) {
	t := &models.Tag{}
	err := s.db.QueryRow(`
		INSERT INTO tags (name, slug) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, slug, created_at
	`, name, slug.Generate(name)).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ensure tag: %w", err)
	}
	return t, nil
}

// List returns all tags ordered by name.
func (s *TagStore) List() ([]models.Tag, error) {
	rows, err := s.db.Query(`SELECT id, name, slug, created_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// ListByPost returns the tags attached to a post, ordered by name.
func (s *TagStore) ListByPost(postID uuid.UUID) ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.slug, t.created_at
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list tags by post: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// SetPostTags replaces the tag set of a post. Tags are created on demand
// by name; the previous links are removed first.
func (s *TagStore) SetPostTags(postID uuid.UUID, names []string) error {
	if _, err := s.db.Exec(`DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}

	for _, name := range names {
		tag, err := s.EnsureByName(name)
		if err != nil {
			return err
		}
		_, err = s.db.Exec(`
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tag.ID)
		if err != nil {
			return fmt.Errorf("link post tag: %w", err)
		}
	}
	return nil
}

// ClearPostTags removes all tag links for a post. Part of the explicit
// cascade when deleting a post.
func (s *TagStore) ClearPostTags(postID uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	return nil
}
