// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"vibedev/internal/database"
	"vibedev/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "vibedev")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "vibedev")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser creates a throwaway user and registers cleanup of the user
// and every row that references it.
func testUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()

	users := NewUserStore(db)
	u, err := users.Create(username, username+"@test.local", "test-password-123", username)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM likes WHERE user_id = $1", u.ID)
		db.Exec("DELETE FROM views WHERE user_id = $1", u.ID)
		db.Exec("DELETE FROM comments WHERE user_id = $1", u.ID)
		users.Delete(u.ID)
	})
	return u
}

// testProject creates a throwaway project owned by authorID and
// registers cleanup of the project and its engagement rows.
func testProject(t *testing.T, db *sql.DB, authorID uuid.UUID, title string) *models.Project {
	t.Helper()

	projects := NewProjectStore(db)
	p, err := projects.Create(&models.Project{
		Title:    title,
		Category: "tools",
		AuthorID: authorID,
	})
	if err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM likes WHERE project_id = $1", p.ID)
		db.Exec("DELETE FROM views WHERE project_id = $1", p.ID)
		db.Exec("DELETE FROM comments WHERE project_id = $1", p.ID)
		db.Exec("DELETE FROM projects WHERE id = $1", p.ID)
	})
	return p
}

// cleanProjects removes test projects by slug. Call in t.Cleanup().
func cleanProjects(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM projects WHERE slug = $1", s)
	}
}

// cleanPosts removes test posts by slug. Call in t.Cleanup().
func cleanPosts(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM post_tags WHERE post_id IN (SELECT id FROM posts WHERE slug = $1)", s)
		db.Exec("DELETE FROM posts WHERE slug = $1", s)
	}
}
