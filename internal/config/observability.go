package config

import (
	"fmt"
	"time"
)

// ServiceName identifies this service in logs and APM dashboards.
const ServiceName = "crm"

// NewRelicConfig holds configuration for New Relic APM and tracing.
//
// An empty LicenseKey means New Relic is disabled; the service then runs
// with plain zerolog output and no-op tracing middleware.
type NewRelicConfig struct {
	// LicenseKey is the New Relic ingest key.
	LicenseKey string `koanf:"license_key"`

	// AppLogForwardingEnabled forwards application logs to New Relic.
	AppLogForwardingEnabled bool `koanf:"app_log_forwarding_enabled"`

	// DistributedTracingEnabled enables distributed tracing across services.
	DistributedTracingEnabled bool `koanf:"distributed_tracing_enabled"`

	// DebugLogging enables the agent's own debug output.
	// Usually off in production to avoid noisy logs and format pollution.
	DebugLogging bool `koanf:"debug_logging"`
}

// Enabled reports whether a license key is configured.
func (c NewRelicConfig) Enabled() bool {
	return c.LicenseKey != ""
}

// HealthChecksConfig controls the dependency checks behind GET /status.
type HealthChecksConfig struct {
	// Enabled toggles the /status endpoint.
	Enabled bool `koanf:"enabled"`

	// Timeout is the max time allowed for a single dependency check.
	Timeout time.Duration `koanf:"timeout"`
}

// DefaultNewRelicConfig returns New Relic defaults: disabled, with log
// forwarding and distributed tracing on once a key is supplied.
func DefaultNewRelicConfig() NewRelicConfig {
	return NewRelicConfig{
		AppLogForwardingEnabled:   true,
		DistributedTracingEnabled: true,
		DebugLogging:              false, // Disabled by default to avoid mixed log formats
	}
}

// DefaultHealthChecksConfig enables /status with a 5 second check budget.
func DefaultHealthChecksConfig() HealthChecksConfig {
	return HealthChecksConfig{
		Enabled: true,
		Timeout: 5 * time.Second,
	}
}

// ValidateObservability applies rules that go beyond struct tags.
//
// Returns:
//   - nil if configuration is valid
//   - an error describing the first validation failure
func (c *Config) ValidateObservability() error {
	if c.Logging.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	if c.Health.Enabled && c.Health.Timeout < time.Second {
		return fmt.Errorf("health timeout must be at least 1s, got %s", c.Health.Timeout)
	}

	return nil
}

// IsProduction reports whether the application is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
