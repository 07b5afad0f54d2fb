package store

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is the single-file repository used for local play.
type SQLite struct {
	db *sql.DB
}

func openSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrap(err, "open sqlite")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, wrap(err, "ping sqlite")
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) RecordRun(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, insertRunSQL, runArgs(e)...)
	return wrap(err, "record run")
}

func (s *SQLite) TopRuns(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, topRunsSQL, limit)
	if err != nil {
		return nil, wrap(err, "query leaderboard")
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, wrap(err, "scan leaderboard")
		}
		out = append(out, e)
	}
	return out, wrap(rows.Err(), "iterate leaderboard")
}

// Unlock records an achievement and reports whether it was new.
func (s *SQLite) Unlock(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, unlockSQL, id, time.Now().UnixMilli())
	if err != nil {
		return false, wrap(err, "unlock achievement")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrap(err, "unlock achievement")
	}
	return n > 0, nil
}

func (s *SQLite) Unlocked(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, unlockedSQL)
	if err != nil {
		return nil, wrap(err, "list achievements")
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrap(err, "scan achievement")
		}
		ids = append(ids, id)
	}
	return ids, wrap(rows.Err(), "iterate achievements")
}
