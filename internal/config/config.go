package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	DBDriver             string
	DatabaseURL          string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	AdminPassword string
	AdminSecret   string
	CookieSecure  bool

	LogLevel string
}

// Load reads the environment, after merging a .env file when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DBDriver:             strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DatabaseURL:          getenv("DATABASE_URL", ""),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
		AdminPassword:        getenv("ADMIN_PASSWORD", ""),
		AdminSecret:          getenv("ADMIN_SECRET", ""),
		CookieSecure:         getenv("COOKIE_SECURE", "true") == "true",
		LogLevel:             strings.ToLower(getenv("LOG_LEVEL", "info")),
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, missing("DATABASE_URL")
	}
	return cfg, nil
}

// RequireAdmin checks the settings the HTTP server needs on top of Load.
func (c Config) RequireAdmin() error {
	if c.AdminPassword == "" {
		return missing("ADMIN_PASSWORD")
	}
	if c.AdminSecret == "" {
		return missing("ADMIN_SECRET")
	}
	return nil
}

// Level maps LogLevel onto slog. Unknown values fall back to info.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func missing(key string) error {
	return fmt.Errorf("missing env: %s", key)
}
