package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/harentsoaR/dental-booking/internal/store"
)

const EnvProduction = "production"

type Config struct {
	Env           string
	Port          string
	MongoURI      string
	MongoDatabase string
	StorageDriver string
	JWTSecret     string
	JWTExpire     time.Duration
	CookieSecure  bool
	CORSOrigins   []string
	TextbeltKey   string
	BcryptCost    int

	// Admin seeded at startup when AdminEmail is set. Public sign-up
	// only creates the user role.
	AdminName      string
	AdminEmail     string
	AdminPassword  string
	AdminTelephone string
}

// Load reads a .env file when present, then the process environment.
// It reports whether a .env file was found so the caller can log it.
func Load(files ...string) (*Config, bool, error) {
	loadedFile := godotenv.Load(files...) == nil

	cfg := &Config{
		Env:           getEnv("APP_ENV", "development"),
		Port:          getEnv("API_PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "dental_booking"),
		StorageDriver: getEnv("STORAGE_DRIVER", store.DriverMongo),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TextbeltKey:   os.Getenv("TEXTBELT_API_KEY"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		AdminName:      getEnv("ADMIN_NAME", "Clinic Admin"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		AdminTelephone: getEnv("ADMIN_TELEPHONE", "0000000000"),
	}

	var err error
	if cfg.JWTExpire, err = time.ParseDuration(getEnv("JWT_EXPIRE", "720h")); err != nil {
		return nil, loadedFile, fmt.Errorf("JWT_EXPIRE: %w", err)
	}
	if cfg.CookieSecure, err = strconv.ParseBool(getEnv("JWT_COOKIE_SECURE", "false")); err != nil {
		return nil, loadedFile, fmt.Errorf("JWT_COOKIE_SECURE: %w", err)
	}
	if cfg.BcryptCost, err = strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost))); err != nil {
		return nil, loadedFile, fmt.Errorf("BCRYPT_COST: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, loadedFile, err
	}
	return cfg, loadedFile, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.JWTExpire <= 0 {
		return fmt.Errorf("JWT_EXPIRE must be positive, got %s", c.JWTExpire)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.AdminEmail != "" && c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required when ADMIN_EMAIL is set")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	switch c.StorageDriver {
	case store.DriverMongo, store.DriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER %q is not supported", c.StorageDriver)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
