// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"vibedev/internal/models"
	"vibedev/internal/slug"
)

// projectColumns is the scan list shared by all project queries.
const projectColumns = `id, slug, title, tagline, description, category, website_url, image_url, favicon_url, tags, featured, author_id, created_at, updated_at`

// ProjectStore handles all project-related database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// ProjectFilter narrows project listings. Zero values mean "all".
type ProjectFilter struct {
	Category string
	Search   string
	AuthorID uuid.UUID
	Featured bool // only featured projects when true
	Page     int  // 1-based
}

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	p := &models.Project{}
	var tagsJSON []byte
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Tagline, &p.Description, &p.Category,
		&p.WebsiteURL, &p.ImageURL, &p.FaviconURL, &tagsJSON, &p.Featured,
		&p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
		return nil, fmt.Errorf("decode project tags: %w", err)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

// FindByID retrieves a project by its UUID. Returns nil if not found.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	p, err := scanProject(s.db.QueryRow(`
		SELECT `+projectColumns+` FROM projects WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a project by its slug. Returns nil if not found.
func (s *ProjectStore) FindBySlug(slugStr string) (*models.Project, error) {
	p, err := scanProject(s.db.QueryRow(`
		SELECT `+projectColumns+` FROM projects WHERE slug = $1
	`, slugStr))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new project. The slug is derived from the title and
// resolved against existing slugs; if a concurrent insert still collides,
// the insert is retried exactly once with the next numeric suffix before
// giving up.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	if p.Slug == "" {
		base := slug.Generate(p.Title)
		taken, err := takenSlugs(s.db, "projects", base)
		if err != nil {
			return nil, fmt.Errorf("create project: %w", err)
		}
		p.Slug = slug.EnsureUnique(base, taken)
	}

	created, err := s.insert(p, p.Slug)
	if IsUniqueViolation(err) {
		created, err = s.insert(p, slug.NextSuffix(p.Slug))
	}
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

func (s *ProjectStore) insert(p *models.Project, slugStr string) (*models.Project, error) {
	tagsJSON, err := json.Marshal(p.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode project tags: %w", err)
	}

	return scanProject(s.db.QueryRow(`
		INSERT INTO projects (slug, title, tagline, description, category,
		                      website_url, image_url, favicon_url, tags, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+projectColumns+`
	`, slugStr, p.Title, p.Tagline, p.Description, p.Category,
		p.WebsiteURL, p.ImageURL, p.FaviconURL, tagsJSON, p.AuthorID))
}

// Update modifies an existing project. The slug is deliberately left
// untouched: it is immutable after creation even when the title changes.
func (s *ProjectStore) Update(p *models.Project) error {
	tagsJSON, err := json.Marshal(p.Tags)
	if err != nil {
		return fmt.Errorf("encode project tags: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE projects SET
			title = $1, tagline = $2, description = $3, category = $4,
			website_url = $5, image_url = $6, favicon_url = $7, tags = $8,
			updated_at = NOW()
		WHERE id = $9
	`, p.Title, p.Tagline, p.Description, p.Category,
		p.WebsiteURL, p.ImageURL, p.FaviconURL, tagsJSON, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// SetFeatured toggles the featured flag on a project.
func (s *ProjectStore) SetFeatured(id uuid.UUID, featured bool) error {
	_, err := s.db.Exec(`
		UPDATE projects SET featured = $1, updated_at = NOW() WHERE id = $2
	`, featured, id)
	if err != nil {
		return fmt.Errorf("set featured: %w", err)
	}
	return nil
}

// Delete removes a project row. Callers must remove dependent likes,
// views, and comments first; this store does not rely on database-level
// cascades.
func (s *ProjectStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// List returns a page of projects matching the filter, ordered by
// creation date descending. The caller re-sorts in memory after joining
// like counts, since aggregated counts cannot be joined into this query
// cheaply.
func (s *ProjectStore) List(f ProjectFilter) ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT `+projectColumns+` FROM projects
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		  AND ($3::uuid IS NULL OR author_id = $3)
		  AND (NOT $4 OR featured)
		ORDER BY created_at DESC
		LIMIT $5 OFFSET $6
	`, f.Category, f.Search, nullableUUID(f.AuthorID), f.Featured,
		DefaultPageSize, PageOffset(f.Page))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// Count returns the number of projects matching the filter.
func (s *ProjectStore) Count(f ProjectFilter) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM projects
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		  AND ($3::uuid IS NULL OR author_id = $3)
		  AND (NOT $4 OR featured)
	`, f.Category, f.Search, nullableUUID(f.AuthorID), f.Featured).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}

// CountByAuthor returns the number of projects owned by a user.
func (s *ProjectStore) CountByAuthor(authorID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM projects WHERE author_id = $1`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count projects by author: %w", err)
	}
	return count, nil
}

// Categories returns the distinct project categories in use, ordered
// alphabetically. The result is cached by the handler layer.
func (s *ProjectStore) Categories() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT category FROM projects ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// nullableUUID maps the zero UUID to NULL for optional filter parameters.
func nullableUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}
