package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	appconfig "pantry-planner/internal/config"
)

// ConnectDB opens the postgres connection for the given snapshot. GORM
// is told not to create foreign keys on its own; the receipt FK is
// added by the final migration step, after dangling references have
// been repaired.
func ConnectDB(cfg appconfig.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}
