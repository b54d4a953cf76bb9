// ABOUTME: Repository interfaces for the session log.
// ABOUTME: Readers only fetch; ingestion writes through SessionWriter.
package storage

import (
	"context"
	"time"

	"github.com/harperreed/trainerlog/internal/models"
)

// SessionReader is the read-only view of the session log.
type SessionReader interface {
	// FetchSessions returns sessions for the client dated within [from, to],
	// newest first. No matches is an empty result, not an error.
	FetchSessions(ctx context.Context, id models.ClientIdentity, from, to time.Time) ([]models.Session, error)
	ListClients(ctx context.Context) ([]ClientSummary, error)
}

// SessionWriter appends to and prunes the session log.
type SessionWriter interface {
	CreateSession(ctx context.Context, s *models.Session) error
	ImportSessions(ctx context.Context, sessions []models.Session) (int, error)
	DeleteSession(ctx context.Context, idOrPrefix string) error
}

// Repository combines read and write access.
type Repository interface {
	SessionReader
	SessionWriter
	Close() error
}

// Compile-time check that DB implements Repository.
var _ Repository = (*DB)(nil)
