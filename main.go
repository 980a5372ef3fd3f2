package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	// Load ./.env if present before reading config; real environment
	// variables take precedence over file values.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := openDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres database")
	}

	// Support a lightweight migrate command: `./fintrack migrate`
	// It runs AutoMigrate and exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		logger.Info().Msg("migration completed")
		return
	}

	store := NewStore(db)
	auth := NewAuth(store, []byte(cfg.JWTSecret))
	server := NewServer(store, auth)

	r := gin.Default()
	server.setupRoutes(r)

	logger.Info().Str("port", cfg.Port).Msg("listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
