// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"nzpt/internal/db"
	"nzpt/internal/models"
)

// TestDB creates a migrated test database and returns a cleanup function.
// Uses TEST_DATABASE_URL when set, otherwise an in-memory SQLite database.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		connString = "sqlite3://:memory:"
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		// Clean up test data
		cleanupTestData(ctx, database)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, database *db.DB) {
	database.Conn.ExecContext(ctx, "DELETE FROM bills")
	database.Conn.ExecContext(ctx, "DELETE FROM sitting_days")
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateSittingDay inserts a sitting day.
func CreateSittingDay(t *testing.T, database *db.DB, date time.Time, urgent bool, parliament int) {
	t.Helper()

	err := database.InsertSittingDay(context.Background(), models.SittingDay{
		Date:       date,
		InUrgency:  urgent,
		Parliament: parliament,
	})
	if err != nil {
		t.Fatalf("failed to create sitting day: %v", err)
	}
}

// CreateBill inserts a bill affected by urgency.
func CreateBill(t *testing.T, database *db.DB, name, url string, parliament int) {
	t.Helper()

	err := database.InsertUrgentBill(context.Background(), models.UrgentBill{
		Name:        name,
		URL:         url,
		Members:     "Hon Test Member",
		Description: "Test bill",
		Parliament:  parliament,
	})
	if err != nil {
		t.Fatalf("failed to create bill: %v", err)
	}
}

// WriteArtifacts writes lastupdate.txt and billcounter.txt into a temp dir
// and returns their paths.
func WriteArtifacts(t *testing.T, lastUpdated, counter string) (lastUpdatePath, counterPath string) {
	t.Helper()

	dir := t.TempDir()
	lastUpdatePath = filepath.Join(dir, "lastupdate.txt")
	counterPath = filepath.Join(dir, "billcounter.txt")

	if err := os.WriteFile(lastUpdatePath, []byte(lastUpdated), 0o600); err != nil {
		t.Fatalf("failed to write lastupdate.txt: %v", err)
	}
	if err := os.WriteFile(counterPath, []byte(counter), 0o600); err != nil {
		t.Fatalf("failed to write billcounter.txt: %v", err)
	}

	return lastUpdatePath, counterPath
}
