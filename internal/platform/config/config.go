// Package config reads process configuration from environment variables so
// main stays lean. Development defaults mirror the deployment at the
// institute; production overrides everything.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr     string
	LogLevel string

	PostgresDSN string
	Redis       RedisConfig

	OCR OCRConfig

	Appointments AppointmentsConfig
	Roster       RosterConfig

	Templates TemplatesConfig
	Artifacts ArtifactsConfig

	Staff StaffConfig

	Audit AuditConfig
}

// RedisConfig controls the optional roster snapshot cache. An empty URL
// disables Redis; the roster service then reads the store directly.
type RedisConfig struct {
	URL          string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// OCRConfig points at the external text-extraction service.
type OCRConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AppointmentsConfig bounds the slot allocator.
type AppointmentsConfig struct {
	MaxPerSlot  int
	MaxPerDay   int
	HorizonDays int
	DateFormat  string
}

// RosterConfig tunes roster matching and caching.
type RosterConfig struct {
	MatchThreshold int
	CacheTTL       time.Duration
}

// TemplatesConfig locates the certificate templates.
type TemplatesConfig struct {
	MalePath   string
	FemalePath string
}

// ArtifactsConfig locates on-disk artifact directories.
type ArtifactsConfig struct {
	Root string
}

// StaffConfig secures the staff dashboard API.
type StaffConfig struct {
	PasswordHash  string
	JWTSigningKey string
	TokenTTL      time.Duration
}

// AuditConfig points at the optional Kafka audit sink. Empty brokers keep
// audit events in memory.
type AuditConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:        envString("WATHIQ_ADDR", ":8080"),
		LogLevel:    envString("WATHIQ_LOG_LEVEL", "info"),
		PostgresDSN: envString("WATHIQ_POSTGRES_DSN", "host=localhost port=5432 user=postgres password=postgres dbname=wathiq sslmode=disable"),
		Redis: RedisConfig{
			URL:          os.Getenv("WATHIQ_REDIS_URL"),
			DialTimeout:  envDuration("WATHIQ_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("WATHIQ_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("WATHIQ_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		OCR: OCRConfig{
			BaseURL: envString("WATHIQ_OCR_URL", "http://localhost:9090"),
			Timeout: envDuration("WATHIQ_OCR_TIMEOUT", 15*time.Second),
		},
		Appointments: AppointmentsConfig{
			MaxPerSlot:  envInt("WATHIQ_MAX_PER_SLOT", 20),
			MaxPerDay:   envInt("WATHIQ_MAX_PER_DAY", 100),
			HorizonDays: envInt("WATHIQ_SLOT_HORIZON_DAYS", 365),
			DateFormat:  "2006-01-02",
		},
		Roster: RosterConfig{
			MatchThreshold: envInt("WATHIQ_MATCH_THRESHOLD", 90),
			CacheTTL:       envDuration("WATHIQ_ROSTER_CACHE_TTL", 5*time.Minute),
		},
		Templates: TemplatesConfig{
			MalePath:   envString("WATHIQ_TEMPLATE_MALE", "templates/male_template.docx"),
			FemalePath: envString("WATHIQ_TEMPLATE_FEMALE", "templates/female_template.docx"),
		},
		Artifacts: ArtifactsConfig{
			Root: envString("WATHIQ_ARTIFACTS_DIR", "artifacts"),
		},
		Staff: StaffConfig{
			// bcrypt hash; the development default is the hash of "password".
			PasswordHash:  envString("WATHIQ_STAFF_PASSWORD_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
			JWTSigningKey: envString("WATHIQ_STAFF_JWT_KEY", "dev-secret-key-change-in-production"),
			TokenTTL:      envDuration("WATHIQ_STAFF_TOKEN_TTL", 8*time.Hour),
		},
		Audit: AuditConfig{
			Brokers: splitNonEmpty(os.Getenv("WATHIQ_AUDIT_BROKERS")),
			Topic:   envString("WATHIQ_AUDIT_TOPIC", "wathiq.audit"),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
