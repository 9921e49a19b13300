package database

import (
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

//go:embed migrations
var dbMigrations embed.FS

// Migrate brings the schema up to date. Running it on an up-to-date database
// is a no-op.
func (s *Store) Migrate() error {
	return storeError("init", migrateDB(s))
}

func migrateDB(s *Store) error {
	src, err := iofs.New(dbMigrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "migrations source")
	}

	dst, err := sqlite3.WithInstance(s.db, &sqlite3.Config{})
	if err != nil {
		return errors.Wrap(err, "migrations target")
	}

	migrator, err := migrate.NewWithInstance("iofs", src, "sqlite3", dst)
	if err != nil {
		return errors.Wrap(err, "migrator")
	}

	err = migrator.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		// db already up to date
	case err != nil:
		return errors.Wrap(err, "migrate up")
	}
	return nil
}
