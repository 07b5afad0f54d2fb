package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DaanHessen/cmmc-trail/internal/engine"
	"github.com/DaanHessen/cmmc-trail/internal/util"
)

func openTemp(t *testing.T) Repository {
	t.Helper()
	ctx := context.Background()
	dsn := "sqlite://" + filepath.ToSlash(filepath.Join(t.TempDir(), "data", "trail.db"))
	mig, err := NewMigrator(dsn, "")
	if err != nil {
		t.Fatalf("NewMigrator: %v", err)
	}
	if err := mig.Up(ctx); err != nil {
		t.Fatalf("migrate up into a missing directory: %v", err)
	}
	if err := mig.Up(ctx); err != ErrNoChange {
		t.Fatalf("second up should be a no-op, got %v", err)
	}
	repo, err := Open(ctx, util.Config{DSN: dsn})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestDialectFor(t *testing.T) {
	cases := map[string]Dialect{
		"sqlite://x.db":                 DialectSQLite,
		"postgres://u:p@localhost/db":   DialectPostgres,
		"postgresql://u:p@localhost/db": DialectPostgres,
	}
	for dsn, want := range cases {
		got, err := DialectFor(dsn)
		if err != nil || got != want {
			t.Fatalf("DialectFor(%q) = %s, %v", dsn, got, err)
		}
	}
	for _, bad := range []string{"", "mysql://x", "trail.db"} {
		if _, err := DialectFor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	ctx := context.Background()
	repo := openTemp(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	runs := []engine.RunStats{
		{Outcome: engine.OutcomeDefeat, Miles: 1900, SPRSScore: 110, Survivors: nil, Fallen: []string{"Ana"}, PartySize: 1},
		{Outcome: engine.OutcomeVictory, Miles: 2000, SPRSScore: 20, Survivors: []string{"Bo"}, PartySize: 2, Accuracy: 80},
		{Outcome: engine.OutcomeVictory, Miles: 2000, SPRSScore: 60, Survivors: []string{"Cy", "Di"}, PartySize: 2, Accuracy: 90},
	}
	for i, st := range runs {
		if err := repo.RecordRun(ctx, NewEntry(st, "seed", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}
	top, err := repo.TopRuns(ctx, 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	if top[0].Leader != "Cy" || top[1].Leader != "Bo" || top[2].Leader != "Ana" {
		t.Fatalf("unexpected order: %s, %s, %s", top[0].Leader, top[1].Leader, top[2].Leader)
	}
	if top[0].Survivors != 2 || top[0].Accuracy != 90 || !top[0].CreatedAt.Equal(base.Add(2*time.Minute)) {
		t.Fatalf("entry not round-tripped: %+v", top[0])
	}
	if limited, _ := repo.TopRuns(ctx, 1); len(limited) != 1 {
		t.Fatalf("limit ignored: %d", len(limited))
	}
}

func TestUnlockIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := openTemp(t)
	added, err := repo.Unlock(ctx, "first_win")
	if err != nil || !added {
		t.Fatalf("first unlock: %v %v", added, err)
	}
	added, err = repo.Unlock(ctx, "first_win")
	if err != nil || added {
		t.Fatalf("second unlock should report false: %v %v", added, err)
	}
	if _, err := repo.Unlock(ctx, "konami"); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	ids, err := repo.Unlocked(ctx)
	if err != nil {
		t.Fatalf("Unlocked: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v", ids)
	}
}

func TestMigratorDownAndVersion(t *testing.T) {
	ctx := context.Background()
	dsn := "sqlite://" + filepath.ToSlash(filepath.Join(t.TempDir(), "m.db"))
	mig, err := NewMigrator(dsn, "")
	if err != nil {
		t.Fatalf("NewMigrator: %v", err)
	}
	if _, _, err := mig.Version(ctx); err != ErrNoChange {
		t.Fatalf("fresh database should have no version, got %v", err)
	}
	if err := mig.Up(ctx); err != nil {
		t.Fatalf("up: %v", err)
	}
	if v, dirty, err := mig.Version(ctx); err != nil || v != 1 || dirty {
		t.Fatalf("version = %d dirty=%v err=%v", v, dirty, err)
	}
	if err := mig.Down(ctx); err != nil {
		t.Fatalf("down: %v", err)
	}
}
