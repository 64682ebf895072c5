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
	"vibedev/internal/slug"
)

// postColumns is the scan list shared by all post queries.
const postColumns = `id, slug, title, body, excerpt, cover_image_url, status, author_id, published_at, created_at, updated_at`

// PostStore handles all blog-post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// PostFilter narrows post listings. Zero values mean "all".
type PostFilter struct {
	Status   models.PostStatus
	Search   string
	AuthorID uuid.UUID
	Page     int // 1-based
}

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Body, &p.Excerpt, &p.CoverImageURL,
		&p.Status, &p.AuthorID, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRow(`
		SELECT `+postColumns+` FROM posts WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindPublishedBySlug retrieves a published post by its slug. Used for
// the public blog view. Returns nil if not found.
func (s *PostStore) FindPublishedBySlug(slugStr string) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRow(`
		SELECT `+postColumns+` FROM posts WHERE slug = $1 AND status = 'published'
	`, slugStr))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new post. The slug is derived from the title and
// resolved against existing slugs; if a concurrent insert still collides,
// the insert is retried exactly once with the next numeric suffix before
// giving up.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	if p.Slug == "" {
		base := slug.Generate(p.Title)
		taken, err := takenSlugs(s.db, "posts", base)
		if err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		p.Slug = slug.EnsureUnique(base, taken)
	}
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	created, err := s.insert(p, p.Slug)
	if IsUniqueViolation(err) {
		created, err = s.insert(p, slug.NextSuffix(p.Slug))
	}
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

func (s *PostStore) insert(p *models.Post, slugStr string) (*models.Post, error) {
	return scanPost(s.db.QueryRow(`
		INSERT INTO posts (slug, title, body, excerpt, cover_image_url, status, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+postColumns+`
	`, slugStr, p.Title, p.Body, p.Excerpt, p.CoverImageURL, p.Status, p.AuthorID, p.PublishedAt))
}

// Update modifies an existing post. The slug is never changed. If the
// post transitions to published with no published_at, it is stamped now.
func (s *PostStore) Update(p *models.Post) error {
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	_, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, body = $2, excerpt = $3, cover_image_url = $4,
			status = $5, published_at = $6, updated_at = NOW()
		WHERE id = $7
	`, p.Title, p.Body, p.Excerpt, p.CoverImageURL, p.Status, p.PublishedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post row. Callers must remove dependent likes, views,
// comments, and tag links first.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// List returns a page of posts matching the filter, newest first.
func (s *PostStore) List(f PostFilter) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR title ILIKE '%' || $2 || '%')
		  AND ($3::uuid IS NULL OR author_id = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`, string(f.Status), f.Search, nullableUUID(f.AuthorID),
		DefaultPageSize, PageOffset(f.Page))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// Count returns the number of posts matching the filter.
func (s *PostStore) Count(f PostFilter) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM posts
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR title ILIKE '%' || $2 || '%')
		  AND ($3::uuid IS NULL OR author_id = $3)
	`, string(f.Status), f.Search, nullableUUID(f.AuthorID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// CountPublishedByAuthor returns the number of published posts by a user.
func (s *PostStore) CountPublishedByAuthor(authorID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM posts WHERE author_id = $1 AND status = 'published'
	`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count published posts: %w", err)
	}
	return count, nil
}
