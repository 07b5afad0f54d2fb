package store

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps gorm.DB for the PostgreSQL repository and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error   { return d.sql.Close() }
func (d *DB) Gorm() *gorm.DB { return d.gorm }

func openPostgres(ctx context.Context, dsn string) (*DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, wrap(err, "open postgres")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, wrap(err, "postgres handle")
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(10)
	sdb.SetMaxIdleConns(5)
	if err := sdb.PingContext(ctx); err != nil {
		_ = sdb.Close()
		return nil, wrap(err, "ping postgres")
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

func (d *DB) RecordRun(ctx context.Context, e Entry) error {
	return wrap(d.gorm.WithContext(ctx).Exec(insertRunSQL, runArgs(e)...).Error, "record run")
}

func (d *DB) TopRuns(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := d.gorm.WithContext(ctx).Raw(topRunsSQL, limit).Rows()
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
func (d *DB) Unlock(ctx context.Context, id string) (bool, error) {
	var added bool
	err := d.WithTx(ctx, func(tx *gorm.DB) error {
		res := tx.Exec(unlockSQL, id, time.Now().UnixMilli())
		added = res.RowsAffected > 0
		return res.Error
	})
	return added, wrap(err, "unlock achievement")
}

func (d *DB) Unlocked(ctx context.Context) ([]string, error) {
	rows, err := d.gorm.WithContext(ctx).Raw(unlockedSQL).Rows()
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
