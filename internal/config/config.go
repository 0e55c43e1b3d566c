// Package config loads application settings from environment variables,
// falling back to defaults suitable for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	defaultAPIAddr         = ":8080"
	defaultSourceLang      = "en" // all speech input is assumed spoken in this language
	defaultTranslateTimeMS = 5000
	defaultCacheTTLSec     = 60 * 60 // cached translations live 1 hour
	defaultCacheBackend    = "memory"
	defaultRedisAddr       = "localhost:6379"
)

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// Config holds every runtime setting for the server.
type Config struct {
	APIAddr            string   // HTTP listen address
	SourceLanguage     string   // fixed language all speech is spoken in
	TranslateURL       string   // external translation endpoint; empty enables the stub
	TranslateAPIKey    string   // optional api key for the translation endpoint
	TranslateTimeoutMS int      // per-language translation deadline
	CacheBackend       string   // "memory" or "redis"
	RedisAddr          string   // redis address, used when CacheBackend is "redis"
	CacheTTLSec        int      // TTL for cached translations
	TTSURL             string   // external text-to-speech endpoint; empty enables the stub
	STTURL             string   // external speech-to-text endpoint; empty disables audio ingest
	AllowedOrigins     []string // CORS origins for browser clients
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		APIAddr:            envOr("API_ADDR", defaultAPIAddr),
		SourceLanguage:     envOr("SOURCE_LANG", defaultSourceLang),
		TranslateURL:       os.Getenv("TRANSLATE_URL"),
		TranslateAPIKey:    os.Getenv("TRANSLATE_API_KEY"),
		TranslateTimeoutMS: envInt("TRANSLATE_TIMEOUT_MS", defaultTranslateTimeMS),
		CacheBackend:       envOr("TRANSLATION_CACHE", defaultCacheBackend),
		RedisAddr:          envOr("REDIS_ADDR", defaultRedisAddr),
		CacheTTLSec:        envInt("CACHE_TTL_SEC", defaultCacheTTLSec),
		TTSURL:             os.Getenv("TTS_URL"),
		STTURL:             os.Getenv("STT_URL"),
		AllowedOrigins:     envCSV("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid %s=%s, fallback to default (%d)", key, v, def)
			return def
		}
		return i
	}
	return def
}

func envCSV(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
