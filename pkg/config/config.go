package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

const (
	EnvDev = "dev"

	// devSessionSecret is public. It is only filled in when APP_ENV=dev.
	devSessionSecret = "this-should-be-something-unguessable"
)

type Config struct {
	AppEnv   string
	LogLevel string

	GRPCPort int
	HTTPPort int

	SessionSecret string
	SessionTTL    time.Duration
	SessionSecure bool

	// CatalogSource selects the product store: "file" or "postgres".
	CatalogSource string
	// CatalogPath and CustomersPath point at YAML seed files. Empty means
	// the seed data embedded in the binary.
	CatalogPath   string
	CustomersPath string
	// CatalogSeed copies the YAML catalog into Postgres on startup.
	CatalogSeed bool

	Postgres Postgres
}

type Postgres struct {
	Host string
	Port int
	User string
	Pass string
	DB   string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first; variables already set win.
func Load() Config {
	_ = godotenv.Load()

	appEnv := getEnv("APP_ENV", EnvDev)
	secret := getEnv("SESSION_SECRET", "")
	if secret == "" && appEnv == EnvDev {
		secret = devSessionSecret
	}

	return Config{
		AppEnv:   appEnv,
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		GRPCPort: getEnvInt("GRPC_PORT", 8081),

		SessionSecret: secret,
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionSecure: getEnvBool("SESSION_SECURE", false),

		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceFile)),
		CatalogPath:   getEnv("CATALOG_PATH", ""),
		CustomersPath: getEnv("CUSTOMERS_PATH", ""),
		CatalogSeed:   getEnvBool("CATALOG_SEED", false),

		Postgres: Postgres{
			Host: getEnv("POSTGRES_HOST", "localhost"),
			Port: getEnvInt("POSTGRES_PORT", 5432),
			User: getEnv("POSTGRES_USER", "shopping"),
			Pass: getEnv("POSTGRES_PASSWORD", "shoppingpassword"),
			DB:   getEnv("POSTGRES_DB", "shopping_db"),
		},
	}
}

// Validate reports settings the shop must not start with. Outside dev a
// real SESSION_SECRET is required.
func (c Config) Validate() error {
	if c.AppEnv != EnvDev && (c.SessionSecret == "" || c.SessionSecret == devSessionSecret) {
		return errors.New("SESSION_SECRET must be set outside dev")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
