// Package store handles SQLite persistence of the placement journal.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/keyseq/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for journal data.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			layout_path TEXT NOT NULL,
			ranking_path TEXT NOT NULL,
			universe INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			at TEXT NOT NULL,
			action TEXT NOT NULL,
			seq TEXT NOT NULL,
			position INTEGER NOT NULL,
			ordered INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);`,
		`CREATE INDEX IF NOT EXISTS idx_events_session_id ON events(session_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// StartSession stores a new sorting session and returns its id.
func (s *Store) StartSession(ctx context.Context, info model.SessionInfo) (string, error) {
	id := uuid.NewString()
	startedAt := info.StartedAt
	if startedAt.IsZero() {
		startedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, layout_path, ranking_path, universe)
		 VALUES (?, ?, ?, ?, ?)`,
		id,
		startedAt.Format(time.RFC3339Nano),
		info.LayoutPath,
		info.RankingPath,
		info.Universe,
	)
	if err != nil {
		return "", fmt.Errorf("failed to start journal session: %w", err)
	}
	return id, nil
}

// RecordEvent appends a placement event to a session.
func (s *Store) RecordEvent(ctx context.Context, event model.PlacementEvent) error {
	if event.SessionID == "" {
		return fmt.Errorf("journal event without session")
	}
	at := event.At
	if at.IsZero() {
		at = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (session_id, at, action, seq, position, ordered)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		event.SessionID,
		at.Format(time.RFC3339Nano),
		event.Action,
		event.Seq.String(),
		event.Position,
		event.Ordered,
	)
	if err != nil {
		return fmt.Errorf("failed to record %s event: %w", event.Action, err)
	}
	return nil
}

// ListSessions returns session summaries, newest first. limit <= 0 returns
// all sessions.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]model.SessionSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT s.id, s.started_at, s.layout_path, s.ranking_path, s.universe,
		COALESCE(SUM(CASE WHEN e.action = ? THEN 1 ELSE 0 END), 0) AS placed,
		COALESCE(SUM(CASE WHEN e.action = ? THEN 1 ELSE 0 END), 0) AS saves,
		COALESCE((SELECT e2.ordered FROM events e2 WHERE e2.session_id = s.id ORDER BY e2.id DESC LIMIT 1), 0) AS last_ordered
	FROM sessions s
	LEFT JOIN events e ON e.session_id = s.id
	GROUP BY s.id
	ORDER BY s.started_at DESC
	LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, model.ActionPlace, model.ActionSave, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionSummary
	for rows.Next() {
		var sum model.SessionSummary
		var startedAt string
		if err := rows.Scan(&sum.ID, &startedAt, &sum.LayoutPath, &sum.RankingPath, &sum.Universe, &sum.Placed, &sum.Saves, &sum.LastOrdered); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		sum.StartedAt = parsed
		sessions = append(sessions, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListEvents returns the events of a session in recording order.
func (s *Store) ListEvents(ctx context.Context, sessionID string) ([]model.PlacementEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, at, action, seq, position, ordered
		 FROM events
		 WHERE session_id = ?
		 ORDER BY id ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var events []model.PlacementEvent
	for rows.Next() {
		var ev model.PlacementEvent
		var at, seq string
		if err := rows.Scan(&ev.SessionID, &at, &ev.Action, &seq, &ev.Position, &ev.Ordered); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, err
		}
		ev.At = parsed
		if seq != "" {
			ks, err := model.ParseKeySeq(seq)
			if err != nil {
				return nil, err
			}
			ev.Seq = ks
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
