package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed inserts a development admin account if no users exist yet.
// It is a no-op when the users table already has rows, so it is safe to
// call on every startup in development.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("seed count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed hash password: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, email, password_hash, display_name, role)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin", "admin@vibedev.local", string(hash), "Administrator", 2)
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	slog.Info("seeded development admin user", "username", "admin")
	return nil
}
