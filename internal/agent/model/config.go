package model

import (
	"strings"
	"time"
)

// ================ Config ================
type ServerConfig struct {
	Addr            string        `envconfig:"SERVER_ADDR" default:":5055"`
	CORSOrigins     []string      `envconfig:"SERVER_CORS_ORIGINS"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"5s"`
}

type BackendConfig struct {
	URL             string        `envconfig:"BACKEND_URL" required:"true"`
	Timeout         time.Duration `envconfig:"BACKEND_TIMEOUT" default:"10s"`
	BreakerFailures uint32        `envconfig:"BACKEND_BREAKER_FAILURES" default:"5"`
	BreakerCooldown time.Duration `envconfig:"BACKEND_BREAKER_COOLDOWN" default:"30s"`
}

type CacheConfig struct {
	InfoTTL time.Duration `envconfig:"CACHE_INFO_TTL" default:"1h"`
}

// CatalogConfig holds the allow-lists the validators check user input against.
type CatalogConfig struct {
	Countries    []string `envconfig:"CATALOG_COUNTRIES" default:"Switzerland,Japan,Thailand,South Korea,Czech Republic,France,Italy,Spain"`
	Destinations []string `envconfig:"CATALOG_DESTINATIONS" default:"Praha,Kalovy Vary,Fuengirola,Madrid,Versailles Palace,Mont Saint-Michel,Venice,Pompeii,Chiangmai,Bangkok,Seoul,Busan,Lucerne,Zurich,Hokkaido,Kobe"`
	BatchSize    int      `envconfig:"CATALOG_BATCH_SIZE" default:"4"`
}

// DefaultCatalog returns the catalog used when nothing is configured.
func DefaultCatalog() CatalogConfig {
	return CatalogConfig{
		Countries: []string{
			"Switzerland", "Japan", "Thailand", "South Korea",
			"Czech Republic", "France", "Italy", "Spain",
		},
		Destinations: []string{
			"Praha", "Kalovy Vary", "Fuengirola", "Madrid",
			"Versailles Palace", "Mont Saint-Michel", "Venice", "Pompeii",
			"Chiangmai", "Bangkok", "Seoul", "Busan",
			"Lucerne", "Zurich", "Hokkaido", "Kobe",
		},
		BatchSize: 4,
	}
}

// Normalize trims entries, drops empty ones and applies the batch default.
func (c CatalogConfig) Normalize() CatalogConfig {
	c.Countries = trimAll(c.Countries)
	c.Destinations = trimAll(c.Destinations)
	if c.BatchSize <= 0 {
		c.BatchSize = 4
	}
	return c
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
