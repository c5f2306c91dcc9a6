package common

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies every pending migration found at source (for example "file://migrations") to the database at dsn.
func Migrate(source, dsn string) error {
	m, err := newMigrate(source, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	return nil
}

func newMigrate(source, dsn string) (*migrate.Migrate, error) {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		m.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	return m, nil
}
