package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vibedev/internal/models"
)

// commentColumns is the scan list shared by all comment queries.
const commentColumns = `id, project_id, post_id, user_id, guest_name, content, report_state, report_note, created_at`

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	c := &models.Comment{}
	err := row.Scan(
		&c.ID, &c.ProjectID, &c.PostID, &c.UserID, &c.GuestName,
		&c.Content, &c.ReportState, &c.ReportNote, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindByID retrieves a comment by its UUID. Returns nil if not found.
func (s *CommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	c, err := scanComment(s.db.QueryRow(`
		SELECT ` + commentColumns + ` FROM comments WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// Create inserts a new comment authored by a member or a guest.
func (s *CommentStore) Create(c *models.Comment) (*models.Comment, error) {
	created, err := scanComment(s.db.QueryRow(`
		INSERT INTO comments (project_id, post_id, user_id, guest_name, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+commentColumns+`
	`, c.ProjectID, c.PostID, c.UserID, c.GuestName, c.Content))
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

// ListByEntity returns a page of comments on one entity, oldest first.
func (s *CommentStore) ListByEntity(kind models.EntityKind, entityID uuid.UUID, page int) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+` FROM comments
		WHERE `+entityColumn(kind)+` = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`, entityID, DefaultPageSize, PageOffset(page))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// ListReported returns a page of comments whose report state is pending,
// newest report first. Used by the moderation board.
func (s *CommentStore) ListReported(page int) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+` FROM comments
		WHERE report_state = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, models.ReportPending, DefaultPageSize, PageOffset(page))
	if err != nil {
		return nil, fmt.Errorf("list reported comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// List returns a page of all comments, newest first, optionally filtered
// by a content search term. Used by the admin comments board.
func (s *CommentStore) List(search string, page int) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+` FROM comments
		WHERE ($1 = '' OR content ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, search, DefaultPageSize, PageOffset(page))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// Count returns the number of comments matching the search filter.
func (s *CommentStore) Count(search string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM comments
		WHERE ($1 = '' OR content ILIKE '%' || $1 || '%')
	`, search).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

// SetReportState updates the moderation state and optional note of a comment.
func (s *CommentStore) SetReportState(id uuid.UUID, state models.ReportState, note *string) error {
	_, err := s.db.Exec(`
		UPDATE comments SET report_state = $1, report_note = $2 WHERE id = $3
	`, state, note, id)
	if err != nil {
		return fmt.Errorf("set report state: %w", err)
	}
	return nil
}

// Delete removes a single comment.
func (s *CommentStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// DeleteByEntity removes every comment on an entity. Part of the
// explicit cascade executed before the parent row is deleted.
func (s *CommentStore) DeleteByEntity(kind models.EntityKind, entityID uuid.UUID) error {
	_, err := s.db.Exec(
		`DELETE FROM comments WHERE `+entityColumn(kind)+` = $1`,
		entityID,
	)
	if err != nil {
		return fmt.Errorf("delete comments by entity: %w", err)
	}
	return nil
}

// CountByEntity returns the number of comments on one entity.
func (s *CommentStore) CountByEntity(kind models.EntityKind, entityID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM comments WHERE `+entityColumn(kind)+` = $1`,
		entityID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}
