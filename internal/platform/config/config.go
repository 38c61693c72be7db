// Package config reads process-level configuration from the environment so
// main stays lean. Tenant-level configuration lives in the tenant document
// and is resolved at runtime, not here.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	tenantcfg "gatehouse/internal/tenant/config"
)

// TokenTTL is the default lifetime of issued session tokens.
var TokenTTL = 15 * time.Minute

// App captures client-side configuration: where the origin lives, which
// host identity derives from, and the environment-level tracing defaults
// a tenant document can override.
type App struct {
	OriginURL     string
	Host          string
	SessionPath   string
	LogLevel      string
	Observability tenantcfg.Observability
}

// Server captures configuration for the demo origin server.
type Server struct {
	Addr          string
	JWTSigningKey string
	TokenTTL      time.Duration
}

// FromEnv builds an App config from GATEHOUSE_* environment variables.
func FromEnv() App {
	origin := os.Getenv("GATEHOUSE_ORIGIN_URL")
	if origin == "" {
		origin = "http://localhost:8080"
	}
	host := os.Getenv("GATEHOUSE_HOST")
	if host == "" {
		host = "localhost"
	}
	sessionPath := os.Getenv("GATEHOUSE_SESSION_FILE")
	if sessionPath == "" {
		if cacheDir, err := os.UserCacheDir(); err == nil {
			sessionPath = filepath.Join(cacheDir, "gatehouse", "session.json")
		} else {
			sessionPath = "session.json"
		}
	}

	return App{
		OriginURL:     origin,
		Host:          host,
		SessionPath:   sessionPath,
		LogLevel:      os.Getenv("GATEHOUSE_LOG_LEVEL"),
		Observability: observabilityFromEnv(),
	}
}

// ServerFromEnv builds a Server config from GATEHOUSE_* environment variables.
func ServerFromEnv() Server {
	addr := os.Getenv("GATEHOUSE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	tokenTTL := TokenTTL
	if raw := os.Getenv("GATEHOUSE_TOKEN_TTL"); raw != "" {
		if duration, err := time.ParseDuration(raw); err == nil {
			tokenTTL = duration
		}
	}
	signingKey := os.Getenv("GATEHOUSE_JWT_SIGNING_KEY")
	if signingKey == "" {
		// Development default, must be overridden in production.
		signingKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: signingKey,
		TokenTTL:      tokenTTL,
	}
}

// observabilityFromEnv reads the environment-level tracing block. Unset
// variables leave the corresponding field empty so the tenant document and
// hardcoded defaults can fill it in.
func observabilityFromEnv() tenantcfg.Observability {
	obs := tenantcfg.Observability{
		ServerURL:   os.Getenv("GATEHOUSE_APM_SERVER_URL"),
		ServiceName: os.Getenv("GATEHOUSE_APM_SERVICE_NAME"),
		Environment: os.Getenv("GATEHOUSE_APM_ENVIRONMENT"),
		LogLevel:    os.Getenv("GATEHOUSE_APM_LOG_LEVEL"),
	}
	if raw := os.Getenv("GATEHOUSE_APM_ACTIVE"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			obs.Active = &active
		}
	}
	if raw := os.Getenv("GATEHOUSE_APM_SAMPLE_RATE"); raw != "" {
		if rate, err := strconv.ParseFloat(raw, 64); err == nil {
			obs.SampleRate = &rate
		}
	}
	return obs
}
