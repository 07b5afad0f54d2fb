package store

import (
	"context"
	errs "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/DaanHessen/cmmc-trail/internal/engine"
	"github.com/DaanHessen/cmmc-trail/internal/util"
)

var ErrNoChange = errs.New("no change")

// Dialect is the database family behind a DSN.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectFor picks the dialect from the DSN scheme.
func DialectFor(dsn string) (Dialect, error) {
	switch {
	case dsn == "":
		return "", fmt.Errorf("missing DSN")
	case strings.HasPrefix(dsn, "sqlite://"):
		return DialectSQLite, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported DSN scheme in %q", dsn)
	}
}

func sqlitePath(dsn string) string { return strings.TrimPrefix(dsn, "sqlite://") }

// ensureSQLiteDir creates the parent directory of a sqlite database file.
func ensureSQLiteDir(dsn string) error {
	dir := filepath.Dir(sqlitePath(dsn))
	if dir == "." {
		return nil
	}
	return wrap(os.MkdirAll(dir, 0o755), "create sqlite directory")
}

// Entry is one finished run on the leaderboard.
type Entry struct {
	ID         uuid.UUID
	Leader     string
	Seed       string
	Difficulty string
	Outcome    string
	Miles      int
	SPRSScore  int
	Accuracy   int
	Survivors  int
	PartySize  int
	Questions  int
	CreatedAt  time.Time
}

// NewEntry builds a leaderboard row from a finished run.
func NewEntry(st engine.RunStats, seed string, now time.Time) Entry {
	leader := ""
	switch {
	case len(st.Survivors) > 0:
		leader = st.Survivors[0]
	case len(st.Fallen) > 0:
		leader = st.Fallen[0]
	}
	return Entry{
		ID:         uuid.New(),
		Leader:     leader,
		Seed:       seed,
		Difficulty: string(st.Difficulty),
		Outcome:    string(st.Outcome),
		Miles:      st.Miles,
		SPRSScore:  st.SPRSScore,
		Accuracy:   st.Accuracy,
		Survivors:  len(st.Survivors),
		PartySize:  st.PartySize,
		Questions:  st.QuestionsAnswered,
		CreatedAt:  now.UTC().Truncate(time.Millisecond),
	}
}

// Repository persists the leaderboard and unlocked achievements.
type Repository interface {
	RecordRun(ctx context.Context, e Entry) error
	TopRuns(ctx context.Context, limit int) ([]Entry, error)
	Unlock(ctx context.Context, id string) (bool, error)
	Unlocked(ctx context.Context) ([]string, error)
	Close() error
}

const (
	insertRunSQL = `INSERT INTO runs(id, leader, seed, difficulty, outcome, miles, sprs_score, accuracy, survivors, party_size, questions, created_ms)
	VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`
	topRunsSQL = `SELECT id, leader, seed, difficulty, outcome, miles, sprs_score, accuracy, survivors, party_size, questions, created_ms
	FROM runs
	ORDER BY CASE WHEN outcome = 'victory' THEN 1 ELSE 0 END DESC, sprs_score DESC, miles DESC, accuracy DESC, created_ms ASC
	LIMIT ?`
	unlockSQL   = `INSERT INTO achievements(id, unlocked_ms) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`
	unlockedSQL = `SELECT id FROM achievements ORDER BY unlocked_ms, id`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		e  Entry
		ms int64
	)
	if err := row.Scan(&e.ID, &e.Leader, &e.Seed, &e.Difficulty, &e.Outcome, &e.Miles, &e.SPRSScore, &e.Accuracy, &e.Survivors, &e.PartySize, &e.Questions, &ms); err != nil {
		return Entry{}, err
	}
	e.CreatedAt = time.UnixMilli(ms).UTC()
	return e, nil
}

func runArgs(e Entry) []any {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return []any{e.ID, e.Leader, e.Seed, e.Difficulty, e.Outcome, e.Miles, e.SPRSScore, e.Accuracy, e.Survivors, e.PartySize, e.Questions, e.CreatedAt.UnixMilli()}
}

// Open connects to the database named by cfg.DSN. Migrations must already be applied.
func Open(ctx context.Context, cfg util.Config) (Repository, error) {
	dialect, err := DialectFor(cfg.DSN)
	if err != nil {
		return nil, err
	}
	switch dialect {
	case DialectPostgres:
		db, err := openPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		if err := ensureSQLiteDir(cfg.DSN); err != nil {
			return nil, err
		}
		db, err := openSQLite(ctx, sqlitePath(cfg.DSN))
		if err != nil {
			return nil, err
		}
		return db, nil
	}
}

// Helper error wrap
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
