package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vibedev/internal/models"
)

// userColumns is the scan list shared by all user queries.
const userColumns = `id, username, email, password_hash, display_name, avatar_url, bio, location, role, suspended, joined_at, updated_at`

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.DisplayName,
		&u.AvatarURL, &u.Bio, &u.Location, &u.Role, &u.Suspended,
		&u.JoinedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindByUsername retrieves a user by username. Returns nil if not found.
func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(`
		SELECT `+userColumns+` FROM users WHERE username = $1
	`, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(`
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// List returns a page of users, optionally filtered by a username/display
// name search term. Ordered by join date descending.
func (s *UserStore) List(search string, page int) ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT `+userColumns+` FROM users
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%' OR display_name ILIKE '%' || $1 || '%')
		ORDER BY joined_at DESC
		LIMIT $2 OFFSET $3
	`, search, DefaultPageSize, PageOffset(page))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Count returns the number of users matching the search filter.
func (s *UserStore) Count(search string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM users
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%' OR display_name ILIKE '%' || $1 || '%')
	`, search).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// Create inserts a new user with a bcrypt-hashed password.
func (s *UserStore) Create(username, email, password, displayName string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := scanUser(s.db.QueryRow(`
		INSERT INTO users (username, email, password_hash, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns+`
	`, username, email, string(hash), displayName))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// UpdateProfile modifies the user-editable profile fields.
func (s *UserStore) UpdateProfile(id uuid.UUID, displayName string, avatarURL, bio, location *string) error {
	_, err := s.db.Exec(`
		UPDATE users SET display_name = $1, avatar_url = $2, bio = $3, location = $4, updated_at = NOW()
		WHERE id = $5
	`, displayName, avatarURL, bio, location, id)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// SetRole changes a user's role. Admin-only operation.
func (s *UserStore) SetRole(id uuid.UUID, role models.Role) error {
	_, err := s.db.Exec(`
		UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2
	`, role, id)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

// SetSuspended flips the suspension flag on a user account.
func (s *UserStore) SetSuspended(id uuid.UUID, suspended bool) error {
	_, err := s.db.Exec(`
		UPDATE users SET suspended = $1, updated_at = NOW() WHERE id = $2
	`, suspended, id)
	if err != nil {
		return fmt.Errorf("set suspended: %w", err)
	}
	return nil
}

// Delete removes a user by ID.
func (s *UserStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
