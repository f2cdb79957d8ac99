package app

import (
	"strings"

	"github.com/voltstack/commerce-backend/internal/platform/envutil"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

// Config carries the process-level settings; database and redis settings are
// read by their own packages.
type Config struct {
	Environment string
	Port        string
	ServiceName string
	CORSOrigins []string
	SeedOnStart bool
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Environment: envutil.GetEnv("ENVIRONMENT", "development", log),
		Port:        envutil.GetEnv("PORT", "8080", log),
		ServiceName: envutil.GetEnv("SERVICE_NAME", "commerce-backend", log),
		SeedOnStart: envutil.GetEnvAsBool("SEED_ON_START", false, log),
	}
	if raw := envutil.GetEnv("CORS_ORIGINS", "", log); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return cfg
}
