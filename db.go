package main

import (
	"fintrack/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// openDB connects to Postgres and, unless disabled via DB_AUTO_MIGRATE,
// runs schema migrations. Migration failures are logged and ignored so a
// restricted DB role can still serve traffic against an existing schema.
func openDB(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			logger.Warn().Err(err).Msg("migration warning (users)")
		}
		if err := db.AutoMigrate(&models.Transaction{}); err != nil {
			logger.Warn().Err(err).Msg("migration warning (transactions)")
		}
		if err := db.AutoMigrate(&models.Category{}); err != nil {
			logger.Warn().Err(err).Msg("migration warning (categories)")
		}
	}
	return db, nil
}
