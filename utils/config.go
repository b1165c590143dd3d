package utils

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Config holds everything the server and the catalog tool read from the
// environment.
type Config struct {
	Env             string
	Port            string
	Storage         string // "mongo" or "memory"
	MongoURI        string
	DBName          string
	JWTSecret       string
	SessionKey      string
	SessionTTL      time.Duration
	SendGridAPIKey  string
	EmailSender     string
	ProductsFile    string
	SeedOnStart     bool
	MaxStockDefault int

	// DotEnvLoaded is false when no .env file was read.
	DotEnvLoaded bool
}

// Production reports whether APP_ENV is "production".
func (c Config) Production() bool {
	return c.Env == "production"
}

// Validate refuses a production config that still relies on the development
// signing secrets.
func (c Config) Validate() error {
	if !c.Production() {
		return nil
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.SessionKey == "" {
		return errors.New("SESSION_KEY must be set in production")
	}
	return nil
}

// LoadConfig reads .env when present and falls back to process variables.
// Outside production the secrets default to fixed development values; in
// production they stay empty until set.
func LoadConfig() Config {
	loaded := godotenv.Load() == nil
	mode := env("APP_ENV", "development")
	devSecret := func(key, def string) string {
		if mode == "production" {
			return os.Getenv(key)
		}
		return env(key, def)
	}
	return Config{
		DotEnvLoaded:    loaded,
		Env:             mode,
		Port:            env("PORT", "8000"),
		Storage:         env("STORAGE", "mongo"),
		MongoURI:        env("MONGO_URI", "mongodb://localhost:27017"),
		DBName:          env("DB_NAME", "storefront"),
		JWTSecret:       devSecret("JWT_SECRET", "change-me"),
		SessionKey:      devSecret("SESSION_KEY", "change-me-too"),
		SessionTTL:      cast.ToDuration(env("SESSION_TTL", "24h")),
		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		EmailSender:     env("EMAIL_SENDER", "orders@slayerforge.com"),
		ProductsFile:    env("PRODUCTS_FILE", "products.json"),
		SeedOnStart:     cast.ToBool(env("SEED_ON_START", "true")),
		MaxStockDefault: cast.ToInt(env("MAX_STOCK_DEFAULT", "100")),
	}
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
