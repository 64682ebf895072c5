// Package store provides database access methods for all VibeDev
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// DefaultPageSize is the fixed page size for all list endpoints.
const DefaultPageSize = 20

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// pgUndefinedFunction is the PostgreSQL error code for undefined_function.
const pgUndefinedFunction = "42883"

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. The engagement layer treats these as benign: a duplicate view
// insert is an idempotent no-op and a racing like insert still means "liked".
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsUndefinedFunction reports whether err means a called SQL function does
// not exist. Used to detect a database that predates the profile_stats
// function and fall back to composed count queries.
func IsUndefinedFunction(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUndefinedFunction
}

// PageOffset converts a 1-based page number to a LIMIT/OFFSET offset.
// Page values below 1 are clamped to the first page.
func PageOffset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * DefaultPageSize
}

// takenSlugs returns the existing slugs in table equal to base or carrying
// a numeric suffix of it, for collision resolution at create time. The
// table name is always a compile-time constant, never user input.
func takenSlugs(db *sql.DB, table, base string) (map[string]bool, error) {
	rows, err := db.Query(
		`SELECT slug FROM `+table+` WHERE slug = $1 OR slug LIKE $2`,
		base, base+"-%",
	)
	if err != nil {
		return nil, fmt.Errorf("list taken slugs: %w", err)
	}
	defer rows.Close()

	taken := make(map[string]bool)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan slug: %w", err)
		}
		taken[s] = true
	}
	return taken, rows.Err()
}
