package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":5000"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)
	DevMode   bool   // true => include error details in 5xx responses

	CategoryTimeout time.Duration // wall-clock budget per aggregation category (default: 120s)
	SearchTimeout   time.Duration // outer budget for a whole search request, looser than CategoryTimeout
	CacheTTL        time.Duration // result cache time-to-live (default: 1h)

	ScrapeTimeout  time.Duration // HTTP timeout for a single scraper request
	ScrapeRetries  int           // max attempts per scraper request
	ScrapeBackoff  time.Duration // fixed wait between scraper retries
	BrowserTimeout time.Duration // navigation budget for headless-browser adapters

	FlightSeed  int64  // extra seed mixed into the flight generator (0 = query-derived only)
	TransitFile string // optional YAML overriding the embedded transit tables

	AIAPIKey  string // OpenAI-compatible API key (empty = assistant disabled)
	AIBaseURL string // OpenAI-compatible endpoint base URL
	AIModel   string // model name for chat and itinerary generation

	AllowedOrigins []string // CORS allowed origins ("*" = any)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("TRAVELSCOUT_LISTEN_PORT", ":5000"),
		ShutdownTimeout: mustDuration("TRAVELSCOUT_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("TRAVELSCOUT_LOG_LEVEL", "info"),
		PrettyLog: mustBool("TRAVELSCOUT_PRETTY_LOG", true),
		DevMode:   mustBool("TRAVELSCOUT_DEV_MODE", false),

		// Aggregation budgets
		CategoryTimeout: mustDuration("TRAVELSCOUT_CATEGORY_TIMEOUT", 120*time.Second),
		SearchTimeout:   mustDuration("TRAVELSCOUT_SEARCH_TIMEOUT", 150*time.Second),
		CacheTTL:        mustDuration("TRAVELSCOUT_CACHE_TTL", time.Hour),

		// Scraper settings
		ScrapeTimeout:  mustDuration("TRAVELSCOUT_SCRAPE_TIMEOUT", 15*time.Second),
		ScrapeRetries:  getenvInt("TRAVELSCOUT_SCRAPE_RETRIES", 3),
		ScrapeBackoff:  mustDuration("TRAVELSCOUT_SCRAPE_BACKOFF", 5*time.Second),
		BrowserTimeout: mustDuration("TRAVELSCOUT_BROWSER_TIMEOUT", 60*time.Second),

		// Transit data
		FlightSeed:  getenvInt64("TRAVELSCOUT_FLIGHT_SEED", 0),
		TransitFile: getenv("TRAVELSCOUT_TRANSIT_FILE", ""),

		// AI assistant (optional)
		AIAPIKey:  getenv("TRAVELSCOUT_AI_API_KEY", ""),
		AIBaseURL: getenv("TRAVELSCOUT_AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),
		AIModel:   getenv("TRAVELSCOUT_AI_MODEL", "gemini-2.5-flash"),

		// Access
		AllowedOrigins: splitAndTrim(getenv("TRAVELSCOUT_ALLOWED_ORIGINS", "*")),
	}

	// Category budget must fit inside the outer search budget.
	if cfg.SearchTimeout < cfg.CategoryTimeout {
		cfg.SearchTimeout = cfg.CategoryTimeout + 30*time.Second
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.AIAPIKey != "" {
			cfgCopy.AIAPIKey = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
