// Package migration aplica las migraciones SQL del esquema.
package migration

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"

	_ "github.com/golang-migrate/migrate/v4/database/postgres" // driver postgres
	_ "github.com/golang-migrate/migrate/v4/source/file"       // fuente file://

	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// Migrate aplica todas las migraciones pendientes de sourceURL (file://...)
// contra dbURL. Sin cambios pendientes no es error.
func Migrate(dbURL, sourceURL string, log *logger.Logger) error {
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	log.Info().Str("source", sourceURL).Msg("aplicando migraciones")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("esquema al día, sin cambios")
			return nil
		}
		return err
	}
	log.Info().Msg("migraciones aplicadas")
	return nil
}
