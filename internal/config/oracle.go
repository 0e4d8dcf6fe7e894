package config

import (
	"os"
	"time"
)

// OracleConfig holds configuration for the external scoring oracle.
type OracleConfig struct {
	// URL is the oracle endpoint. Empty means no oracle is configured
	// and evaluation degrades to an empty-scores fallback.
	URL string

	// APIKey, when set, is sent as a Bearer token.
	APIKey string

	Timeout time.Duration
}

// LoadOracleConfig reads the oracle configuration from the environment.
func LoadOracleConfig() *OracleConfig {
	return &OracleConfig{
		URL:     os.Getenv("LLM_EVAL_URL"),
		APIKey:  os.Getenv("LLM_EVAL_KEY"),
		Timeout: getEnvAsDuration("LLM_EVAL_TIMEOUT", 30*time.Second),
	}
}

// IsEnabled returns true if an oracle endpoint is configured.
func (c *OracleConfig) IsEnabled() bool {
	return c.URL != ""
}
