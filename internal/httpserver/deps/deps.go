package deps

import (
	"time"

	"github.com/asifrahman/travelscout/internal/assistant"
	"github.com/asifrahman/travelscout/internal/logger"
	"github.com/asifrahman/travelscout/internal/search"
	"github.com/asifrahman/travelscout/internal/search/cache"
	"github.com/asifrahman/travelscout/internal/sources"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	DevMode   bool // include error details in 5xx responses

	AllowedOrigins []string // CORS allowed origins

	Orchestrator *search.Orchestrator // runs the full trip search
	Sources      *sources.Registry    // declared sources, for introspection
	Cache        *cache.Cache         // result cache, for health and manual clear
	Assistant    *assistant.Assistant // nil when no API key is configured
}
