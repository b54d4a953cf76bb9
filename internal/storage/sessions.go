// ABOUTME: Session reads and ingestion writes for SQLite storage.
// ABOUTME: Reads match a client on either identity column and recover from corrupt payloads.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/trainerlog/internal/models"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const sessionColumns = `session_id, client_name_key, ig_username, workout_date, workout_name, exercises_json`

// ClientSummary describes one client found in the session log.
type ClientSummary struct {
	ClientKey    string    `json:"client_name_key"`
	IGUsername   string    `json:"ig_username,omitempty"`
	SessionCount int       `json:"session_count"`
	LastSession  time.Time `json:"last_session"`
}

// FetchSessions retrieves a client's sessions dated within [from, to] inclusive.
// Results are sorted by date descending (most recent first).
func (d *DB) FetchSessions(ctx context.Context, id models.ClientIdentity, from, to time.Time) ([]models.Session, error) {
	from, to = models.DateOf(from), models.DateOf(to)
	if from.After(to) {
		return nil, fmt.Errorf("fetch sessions: from %s is after to %s", models.FormatDate(from), models.FormatDate(to))
	}
	if id.IsZero() {
		return nil, fmt.Errorf("fetch sessions: empty client identity")
	}

	var match []string
	args := []any{}
	if id.Key != "" {
		match = append(match, "client_name_key = ?")
		args = append(args, id.Key)
	}
	if handle := id.Handle(); handle != "" {
		match = append(match, "ig_username = ?")
		args = append(args, handle)
	}
	args = append(args, models.FormatDate(from), models.FormatDate(to))

	query := `
		SELECT ` + sessionColumns + `
		FROM workout_sessions
		WHERE (` + strings.Join(match, " OR ") + `)
		  AND workout_date BETWEEN ? AND ?
		ORDER BY workout_date DESC
	`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("fetch sessions", err)
	}
	defer rows.Close()

	sessions, err := d.scanSessions(rows)
	if err != nil {
		return nil, storeError("fetch sessions", err)
	}

	d.log.WithFields(logrus.Fields{
		"client": id.String(),
		"from":   models.FormatDate(from),
		"to":     models.FormatDate(to),
		"count":  len(sessions),
	}).Debug("fetched sessions")

	return sessions, nil
}

// ListClients returns every client key/handle pair with its session count,
// most recently active first.
func (d *DB) ListClients(ctx context.Context) ([]ClientSummary, error) {
	query := `
		SELECT COALESCE(client_name_key, ''), COALESCE(ig_username, ''), COUNT(*), MAX(workout_date)
		FROM workout_sessions
		GROUP BY COALESCE(client_name_key, ''), COALESCE(ig_username, '')
		ORDER BY MAX(workout_date) DESC
	`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeError("list clients", err)
	}
	defer rows.Close()

	var clients []ClientSummary
	for rows.Next() {
		var c ClientSummary
		var last sql.NullString
		if err := rows.Scan(&c.ClientKey, &c.IGUsername, &c.SessionCount, &last); err != nil {
			return nil, storeError("scan client", err)
		}
		if parsed, err := models.ParseDate(last.String); err == nil {
			c.LastSession = parsed
		} else {
			d.log.WithFields(logrus.Fields{
				"client_name_key": c.ClientKey,
				"ig_username":     c.IGUsername,
			}).WithError(err).Warn("client has no readable last session date")
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("list clients", err)
	}
	return clients, nil
}

// CreateSession stores a new session in the database.
func (d *DB) CreateSession(ctx context.Context, s *models.Session) error {
	if d.readOnly {
		return ErrReadOnly
	}
	return insertSession(ctx, d.db, s)
}

// ImportSessions stores sessions in a single transaction. Sessions without
// an ID get a generated one. Every invalid session is reported; nothing is
// written unless all succeed.
func (d *DB) ImportSessions(ctx context.Context, sessions []models.Session) (int, error) {
	if d.readOnly {
		return 0, ErrReadOnly
	}
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeError("begin import", err)
	}

	var errs error
	for i := range sessions {
		if sessions[i].ID == "" {
			sessions[i].ID = uuid.New().String()
		}
		if err := insertSession(ctx, tx, &sessions[i]); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("session %d: %w", i, err))
		}
	}

	if errs != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("import sessions: %w", errs)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	return len(sessions), nil
}

// DeleteSession removes a session by ID or unique ID prefix.
func (d *DB) DeleteSession(ctx context.Context, idOrPrefix string) error {
	if d.readOnly {
		return ErrReadOnly
	}
	id, err := d.resolveSessionID(ctx, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	result, err := d.db.ExecContext(ctx, "DELETE FROM workout_sessions WHERE session_id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}

	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertSession(ctx context.Context, db execer, s *models.Session) error {
	if s.ID == "" {
		return errors.New("session id is required")
	}
	if s.ClientKey == "" && s.IGUsername == "" {
		return fmt.Errorf("session %s has no client identity", s.ID)
	}
	if s.Date.IsZero() {
		return fmt.Errorf("session %s has no date", s.ID)
	}

	payload, err := models.EncodeExercises(s.Exercises)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO workout_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = db.ExecContext(ctx, query,
		s.ID,
		nullString(s.ClientKey),
		nullString(s.IGUsername),
		models.FormatDate(s.Date),
		s.Name,
		payload,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// resolveSessionID finds the full ID from a prefix.
func (d *DB) resolveSessionID(ctx context.Context, idOrPrefix string) (string, error) {
	if strings.TrimSpace(idOrPrefix) == "" {
		return "", errors.New("empty session ID")
	}

	query := `SELECT session_id FROM workout_sessions WHERE session_id = ? OR session_id LIKE ? || '%'`
	rows, err := d.db.QueryContext(ctx, query, idOrPrefix, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve session ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan session ID: %w", err)
		}
		if id == idOrPrefix {
			return id, nil
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve session ID: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("not found: %s", idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}

	return matches[0], nil
}

// scanSessions scans rows into sessions. Every column is scanned nullable and
// rows whose exercise payload or date cannot be decoded are recovered here, so
// one corrupt record never fails a fetch. A missing date skips the row.
func (d *DB) scanSessions(rows *sql.Rows) ([]models.Session, error) {
	sessions := []models.Session{}

	for rows.Next() {
		var s models.Session
		var id, clientKey, handle, date, name, payload sql.NullString

		if err := rows.Scan(&id, &clientKey, &handle, &date, &name, &payload); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.ID = id.String
		s.ClientKey = clientKey.String
		s.IGUsername = handle.String
		s.Name = name.String

		parsed, err := models.ParseDate(date.String)
		if err != nil {
			d.log.WithField("session_id", s.ID).WithError(err).Warn("skipping session with unreadable date")
			continue
		}
		s.Date = parsed

		exercises, err := models.DecodeExercises(payload.String)
		if err != nil {
			d.log.WithField("session_id", s.ID).WithError(err).Warn("recovered malformed exercise data")
			s.Malformed = true
			exercises = nil
		}
		s.Exercises = exercises

		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
