// engagement_test.go provides a shared test harness for the
// database-backed engagement tests. Tests are skipped if PostgreSQL is
// not available.
package engagement

import (
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"vibedev/internal/database"
	"vibedev/internal/models"
	"vibedev/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "vibedev")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "vibedev")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

// testService opens the test database and builds a Service over it.
// Skips the test when the database is unreachable.
func testService(t *testing.T) (*Service, *sql.DB) {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)
	t.Cleanup(func() { db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(
		store.NewLikeStore(db),
		store.NewViewStore(db),
		store.NewProjectStore(db),
		store.NewPostStore(db),
		store.NewStatsStore(db),
		log,
	)
	return svc, db
}

// testUser creates a throwaway user and registers full cleanup.
func testUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()

	u, err := store.NewUserStore(db).Create(username, username+"@test.local", "test-password-123", username)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM likes WHERE user_id = $1", u.ID)
		db.Exec("DELETE FROM views WHERE user_id = $1", u.ID)
		db.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// testProject creates a throwaway project and registers full cleanup.
func testProject(t *testing.T, db *sql.DB, authorID uuid.UUID, title string) *models.Project {
	t.Helper()

	p, err := store.NewProjectStore(db).Create(&models.Project{
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
		db.Exec("DELETE FROM projects WHERE id = $1", p.ID)
	})
	return p
}
