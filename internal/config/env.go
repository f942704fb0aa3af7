package config

import (
	"os"
	"strconv"
)

// applyEnvOverrides lets SREACH_WORKERS / SREACH_LOG_LEVEL tune the
// resolved config without adding new positional arguments; malformed
// overrides are ignored rather than made fatal, since an empty or garbled
// .env value should fall back to the computed default, not abort startup.
func applyEnvOverrides(cfg *Config) {
	if raw, ok := os.LookupEnv("SREACH_WORKERS"); ok {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			cfg.Workers = n
		}
	}
	if raw, ok := os.LookupEnv("SREACH_LOG_LEVEL"); ok && raw != "" {
		cfg.LogLevel = raw
	}
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
