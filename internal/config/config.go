// Package config loads service configuration from environment once at startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds every externally injected setting the service consumes.
// It is loaded once in main and passed down explicitly; nothing mutates
// it afterwards, so concurrent reads need no synchronization.
type Config struct {
	Port        int
	AllowOrigin []string

	Database DatabaseConfig
	Admin    AdminConfig
	Google   GoogleConfig

	RateLimitPerSec uint
	LogoBucket      string
}

// DatabaseConfig holds the connection parameters for Postgres.
// When UseConnStr is set, ConnStr wins over the discrete fields.
type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	ConnStr    string
	UseConnStr bool
}

// AdminConfig carries the admin allow-list. The set is built once at load
// time and never mutated at runtime.
type AdminConfig struct {
	allowed map[string]struct{}
}

// GoogleConfig holds the OAuth client and the endpoints used to turn a
// sign-in code or access token into a verified email.
type GoogleConfig struct {
	ClientID          string
	ClientSecret      string
	RedirectURL       string
	UserInfoEndpoint  string
	TokenInfoEndpoint string

	JWTSecret string
}

// NewAdminConfig builds an allow-list from a list of admin emails.
// Matching is case-insensitive.
func NewAdminConfig(emails []string) AdminConfig {
	allowed := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			allowed[e] = struct{}{}
		}
	}
	return AdminConfig{allowed: allowed}
}

// IsAdmin reports whether the given identity is on the allow-list.
func (a AdminConfig) IsAdmin(email string) bool {
	_, ok := a.allowed[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Size returns the number of allow-listed identities.
func (a AdminConfig) Size() int {
	return len(a.allowed)
}

// LoadDatabase reads just the database connection settings from the
// environment. Command-line tools use this directly so they work without
// the rest of the service configuration.
func LoadDatabase() DatabaseConfig {
	useConnStr, _ := strconv.ParseBool(os.Getenv("USE_CONNECTION_STR"))
	return DatabaseConfig{
		Host:       os.Getenv("DB_HOST"),
		Port:       os.Getenv("DB_PORT"),
		User:       os.Getenv("DB_USERNAME"),
		Password:   os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_DATABASE"),
		ConnStr:    os.Getenv("DB_CONNECTION_STR"),
		UseConnStr: useConnStr,
	}
}

// Load reads configuration from environment variables.
// ADMIN_EMAILS and SECRET_KEY are required: without an allow-list no
// mutating route could ever be authorized, and without a signing key no
// identity could be trusted.
func Load() (*Config, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	adminEmails := strings.Split(os.Getenv("ADMIN_EMAILS"), ",")
	admin := NewAdminConfig(adminEmails)
	if admin.Size() == 0 {
		return nil, fmt.Errorf("ADMIN_EMAILS is empty, at least one admin email is required")
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("SECRET_KEY is not set")
	}

	rate, err := strconv.Atoi(os.Getenv("RATE_LIMIT_REQUESTS_PER_SECOND"))
	if err != nil || rate <= 0 {
		rate = 5
	}

	cfg := &Config{
		Port:        port,
		AllowOrigin: strings.Split(os.Getenv("ALLOW_ORIGIN"), ","),
		Database:    LoadDatabase(),
		Admin:       admin,
		Google: GoogleConfig{
			ClientID:          os.Getenv("GOOGLE_AUTH_CLIENT"),
			ClientSecret:      os.Getenv("GOOGLE_AUTH_SECRET"),
			RedirectURL:       os.Getenv("OAUTH_REDIRECT_URL"),
			UserInfoEndpoint:  "https://www.googleapis.com/oauth2/v2/userinfo",
			TokenInfoEndpoint: "https://www.googleapis.com/oauth2/v3/tokeninfo",
			JWTSecret:         secret,
		},
		RateLimitPerSec: uint(rate),
		LogoBucket:      os.Getenv("LOGO_BUCKET"),
	}

	return cfg, nil
}
