// Package store persists wizard sessions, cleaning runs and audit logs in
// sqlite. The in-memory history engine stays authoritative while the
// process runs; the store records the latest committed state and the
// trail of what happened.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-dashboard-wizard/internal/model"
)

var db *sql.DB

// InitDB opens the database and creates tables if needed.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	sessionTable := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		step TEXT,
		status TEXT,
		filename TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	runTable := `
	CREATE TABLE IF NOT EXISTS cleaning_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		summary TEXT,
		cleaned TEXT,
		removed TEXT,
		cleaned_count INTEGER,
		removed_count INTEGER,
		created_at DATETIME,
		FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);
	`
	logTable := `
	CREATE TABLE IF NOT EXISTS session_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		stage TEXT,
		level TEXT,
		message TEXT,
		metadata TEXT,
		created_at DATETIME,
		FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS session_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		error_message TEXT,
		created_at DATETIME,
		FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);
	`

	for _, stmt := range []string{sessionTable, runTable, logTable, errorTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveSession stores a new wizard session.
func SaveSession(sessionID string, step model.Step) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO sessions (id, step, status, filename, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, string(step), "idle", "", now, now)
	return err
}

// UpdateSession updates a session's step, status and uploaded filename.
func UpdateSession(sessionID string, step model.Step, status, filename string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE sessions SET step = ?, status = ?, filename = ?, updated_at = ? WHERE id = ?`,
		string(step), status, filename, now, sessionID)
	return err
}

// UpdateSessionStatus updates only the status column.
func UpdateSessionStatus(sessionID, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE sessions SET status = ?, updated_at = ? WHERE id = ?`, status, now, sessionID)
	return err
}

// GetSession fetches basic session info.
func GetSession(sessionID string) (map[string]interface{}, error) {
	var step, status, filename string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT step, status, filename, created_at, updated_at FROM sessions WHERE id = ?`, sessionID).
		Scan(&step, &status, &filename, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        sessionID,
		"step":      step,
		"status":    status,
		"filename":  filename,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// ListSessions returns all sessions with basic info.
func ListSessions() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, step, status, filename, created_at, updated_at FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []map[string]interface{}
	for rows.Next() {
		var id, step, status, filename string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &step, &status, &filename, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, map[string]interface{}{
			"id":        id,
			"step":      step,
			"status":    status,
			"filename":  filename,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return sessions, rows.Err()
}

// SaveCleaningRun records the committed state of a cleaning run. Called on
// the initial commit and after every restore/undo/redo so the stored state
// always mirrors the history engine's present.
func SaveCleaningRun(sessionID, summary string, state model.CleaningState) error {
	cleanedJSON, err := json.Marshal(state.Cleaned)
	if err != nil {
		return fmt.Errorf("marshal cleaned data: %w", err)
	}
	removedJSON, err := json.Marshal(state.Removed)
	if err != nil {
		return fmt.Errorf("marshal removed rows: %w", err)
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO cleaning_runs (session_id, summary, cleaned, removed, cleaned_count, removed_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sessionID, summary, cleanedJSON, removedJSON, len(state.Cleaned), len(state.Removed), now)
	return err
}

// GetLatestCleaningRun returns the most recently committed state for a
// session, or sql.ErrNoRows when no run ever completed.
func GetLatestCleaningRun(sessionID string) (string, model.CleaningState, error) {
	var summary, cleanedJSON, removedJSON string
	err := db.QueryRow(`SELECT summary, cleaned, removed FROM cleaning_runs WHERE session_id = ? ORDER BY id DESC LIMIT 1`, sessionID).
		Scan(&summary, &cleanedJSON, &removedJSON)
	if err != nil {
		return "", model.CleaningState{}, err
	}

	var state model.CleaningState
	if err := json.Unmarshal([]byte(cleanedJSON), &state.Cleaned); err != nil {
		return "", model.CleaningState{}, fmt.Errorf("unmarshal cleaned data: %w", err)
	}
	if err := json.Unmarshal([]byte(removedJSON), &state.Removed); err != nil {
		return "", model.CleaningState{}, fmt.Errorf("unmarshal removed rows: %w", err)
	}
	return summary, state, nil
}

// SaveSessionLog records one structured audit entry for a session.
func SaveSessionLog(sessionID, stage, level, message string, metadata map[string]interface{}) error {
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		metaJSON = []byte("{}")
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO session_logs (session_id, stage, level, message, metadata, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, stage, level, message, metaJSON, now)
	return err
}

// GetSessionLogs returns up to limit recent log entries, newest first.
func GetSessionLogs(sessionID string, limit int) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT stage, level, message, metadata, created_at FROM session_logs
		WHERE session_id = ? ORDER BY id DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []map[string]interface{}
	for rows.Next() {
		var stage, level, message, metaJSON string
		var createdAt time.Time
		if err := rows.Scan(&stage, &level, &message, &metaJSON, &createdAt); err != nil {
			return nil, err
		}
		var metadata map[string]interface{}
		_ = json.Unmarshal([]byte(metaJSON), &metadata)
		logs = append(logs, map[string]interface{}{
			"stage":     stage,
			"level":     level,
			"message":   message,
			"metadata":  metadata,
			"createdAt": createdAt,
		})
	}
	return logs, rows.Err()
}

// SaveSessionError records an error for a session.
func SaveSessionError(sessionID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO session_errors (session_id, error_message, created_at) VALUES (?, ?, ?)`,
		sessionID, err.Error(), now)
	return e
}

// GetSessionErrors returns all recorded errors for a session.
func GetSessionErrors(sessionID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM session_errors WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var msg string
		var createdAt time.Time
		if err := rows.Scan(&msg, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, map[string]interface{}{
			"error":     msg,
			"createdAt": createdAt,
		})
	}
	return out, rows.Err()
}

// DeleteSession removes a session and, via cascading foreign keys, its
// runs, logs and errors.
func DeleteSession(sessionID string) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE id = ?`, sessionID)
	return err
}
