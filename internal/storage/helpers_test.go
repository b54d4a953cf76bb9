// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides isolated SQLite databases and raw row insertion.
package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/trainerlog/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, _ := setupTestDBWithLog(t)
	return db
}

func setupTestDBWithLog(t *testing.T) (*DB, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	dbPath := filepath.Join(t.TempDir(), "sessions.db")
	db, err := Open(dbPath, WithLogger(logger))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db, hook
}

// insertRawSession writes a row bypassing payload encoding.
func insertRawSession(t *testing.T, db *DB, id, clientKey, handle, date, name, payload string) {
	t.Helper()
	_, err := db.db.Exec(
		`INSERT INTO workout_sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		id, nullString(clientKey), nullString(handle), date, name, payload)
	if err != nil {
		t.Fatalf("insert raw session: %v", err)
	}
}

func day(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mustCreate(t *testing.T, db *DB, s *models.Session) {
	t.Helper()
	if err := db.CreateSession(context.Background(), s); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
}
