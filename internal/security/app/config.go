package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer  string // Required: issuer claim expected in access tokens
	JWKSURL string // Optional: identity service JWKS endpoint; empty means local dev keys

	NumKeys             int           // Optional: number of dev signing keys to generate (default: 3, min: 1, max: 10)
	JWKSRefreshInterval time.Duration // Optional: how often to re-fetch the identity service JWKS (default: 15m)
	TOTPIssuer          string        // Optional: issuer label in authenticator provisioning URIs (default: Hearth)
	MasterKeyPath       string        // Optional: path to master encryption key file for TOTP secrets
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./security.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	CORSOrigins         []string      // Optional: allowed CORS origins (default: *)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Audit log sweep interval (default: 1h)
	AuditRetention       time.Duration // How long audit entries are kept (default: 90 days)
}

func LoadConfig() Config {
	// A .env file is a dev convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := Config{
		Issuer:              getEnvOrDefault("SECURITY_ISSUER", "hearth-identity"),
		JWKSURL:             os.Getenv("SECURITY_JWKS_URL"), // Optional: unset means mint local dev keys
		JWKSRefreshInterval: getEnvDurationOrDefault("SECURITY_JWKS_REFRESH_INTERVAL", 15*time.Minute),
		TOTPIssuer:          getEnvOrDefault("SECURITY_TOTP_ISSUER", "Hearth"),
		MasterKeyPath:       os.Getenv("SECURITY_MASTER_KEY_PATH"), // Optional
		DatabaseFile:        getEnvOrDefault("SECURITY_DATABASE_FILE", "security.db"),
		PepperFile:          getEnvOrDefault("SECURITY_PEPPER_FILE", "pepper"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		AuditRetention:       getEnvDurationOrDefault("AUDIT_RETENTION", 90*24*time.Hour),
	}

	// An unset or unparseable SECURITY_NUM_KEYS stays 0 and the key manager
	// substitutes its default.
	if raw := os.Getenv("SECURITY_NUM_KEYS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.NumKeys = n
		}
	}

	// Comma-separated list of allowed browser origins
	if origins := os.Getenv("SECURITY_CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if d, err := time.ParseDuration(value); err == nil {
		return d
	}

	// Bare integers are read as minutes, matching older deploy configs.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
