package store

import (
	"context"
	"embed"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFS embed.FS

// Migrator handles DB schema migrations using golang-migrate.
// Migrations are read from dir/<dialect> when dir is set, otherwise from the embedded copy.
type Migrator struct {
	dsn     string
	dir     string
	dialect Dialect
}

func NewMigrator(dsn, dir string) (*Migrator, error) {
	dialect, err := DialectFor(dsn)
	if err != nil {
		return nil, err
	}
	return &Migrator{dsn: dsn, dir: dir, dialect: dialect}, nil
}

func (m *Migrator) sourceURL() (string, error) {
	p, err := filepath.Abs(filepath.Join(m.dir, string(m.dialect)))
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
	return u.String(), nil
}

func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, func(mig *migrate.Migrate) error { return mig.Up() })
}

func (m *Migrator) Down(ctx context.Context) error {
	return m.run(ctx, func(mig *migrate.Migrate) error { return mig.Steps(-1) })
}

// Version reports the applied schema version; ErrNoChange means nothing has been applied yet.
func (m *Migrator) Version(ctx context.Context) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := m.run(ctx, func(mig *migrate.Migrate) error {
		var err error
		version, dirty, err = mig.Version()
		if err == migrate.ErrNilVersion {
			return migrate.ErrNoChange
		}
		return err
	})
	return version, dirty, err
}

func (m *Migrator) run(ctx context.Context, fn func(*migrate.Migrate) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mig, closer, err := m.migrateInstance()
	if err != nil {
		return err
	}
	defer closer()
	if err := fn(mig); err != nil {
		if err == migrate.ErrNoChange {
			return ErrNoChange
		}
		return wrap(err, "migrate")
	}
	return nil
}

func (m *Migrator) migrateInstance() (*migrate.Migrate, func(), error) {
	var (
		mig *migrate.Migrate
		err error
	)
	if m.dialect == DialectSQLite {
		if err := ensureSQLiteDir(m.dsn); err != nil {
			return nil, func() {}, err
		}
	}
	if m.dir != "" {
		src, serr := m.sourceURL()
		if serr != nil {
			return nil, func() {}, serr
		}
		mig, err = migrate.New(src, m.dsn)
	} else {
		src, serr := iofs.New(migrationFS, fmt.Sprintf("migrations/%s", m.dialect))
		if serr != nil {
			return nil, func() {}, serr
		}
		mig, err = migrate.NewWithSourceInstance("iofs", src, m.dsn)
	}
	if err != nil {
		return nil, func() {}, wrap(err, "init migrations")
	}
	return mig, func() { mig.Close() }, nil
}
