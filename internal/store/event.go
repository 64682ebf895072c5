package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vibedev/internal/models"
)

// eventColumns is the scan list shared by all event queries.
const eventColumns = `id, title, description, location, url, starts_at, ends_at, created_by, created_at, updated_at`

// EventStore handles calendar event operations.
type EventStore struct {
	db *sql.DB
}

// NewEventStore creates a new EventStore with the given database connection.
func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	e := &models.Event{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Location, &e.URL,
		&e.StartsAt, &e.EndsAt, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// FindByID retrieves an event by its UUID. Returns nil if not found.
func (s *EventStore) FindByID(id uuid.UUID) (*models.Event, error) {
	e, err := scanEvent(s.db.QueryRow(`
		SELECT ` + eventColumns + ` FROM events WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find event by id: %w", err)
	}
	return e, nil
}

// Create inserts a new calendar event.
func (s *EventStore) Create(e *models.Event) (*models.Event, error) {
	created, err := scanEvent(s.db.QueryRow(`
		INSERT INTO events (title, description, location, url, starts_at, ends_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+eventColumns+`
	`, e.Title, e.Description, e.Location, e.URL, e.StartsAt, e.EndsAt, e.CreatedBy))
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return created, nil
}

// Update modifies an existing event.
func (s *EventStore) Update(e *models.Event) error {
	_, err := s.db.Exec(`
		UPDATE events SET
			title = $1, description = $2, location = $3, url = $4,
			starts_at = $5, ends_at = $6, updated_at = NOW()
		WHERE id = $7
	`, e.Title, e.Description, e.Location, e.URL, e.StartsAt, e.EndsAt, e.ID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes an event by ID.
func (s *EventStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// ListBetween returns events starting within [from, to), ordered by
// start time. Used for the month calendar view.
func (s *EventStore) ListBetween(from, to time.Time) ([]models.Event, error) {
	rows, err := s.db.Query(`
		SELECT `+eventColumns+` FROM events
		WHERE starts_at >= $1 AND starts_at < $2
		ORDER BY starts_at ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
