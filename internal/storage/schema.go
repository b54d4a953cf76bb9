// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the workout_sessions table written by ingestion and read by reports.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workout_sessions (
		session_id TEXT PRIMARY KEY,
		client_name_key TEXT,
		ig_username TEXT,
		workout_date TEXT NOT NULL,
		workout_name TEXT NOT NULL DEFAULT '',
		exercises_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_client_date ON workout_sessions(client_name_key, workout_date DESC);
	CREATE INDEX IF NOT EXISTS idx_sessions_handle_date ON workout_sessions(ig_username, workout_date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
