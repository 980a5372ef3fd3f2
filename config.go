package main

import "github.com/joeshaw/envdecode"

// Config holds process configuration, all supplied through the environment
// (optionally via a local .env file loaded at startup).
type Config struct {
	DatabaseDSN string `env:"DB_DSN,required"`
	JWTSecret   string `env:"JWT_SECRET,default=dev-insecure-secret-change"`
	Port        string `env:"PORT,default=8080"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE,default=true"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
