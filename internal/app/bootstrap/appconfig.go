// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS). AppConfig carries everything specific to this
// service: the MongoDB connection, the external platform endpoint and
// credentials, and operation defaults.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// External platform (GitLab-compatible API)
	PlatformBaseURL    string // Base URL of the platform, e.g. https://gitlab.example.com
	PlatformAdminToken string // Admin token used for privileged platform calls

	// Group defaults
	DefaultVisibility string // Visibility assigned when a create request carries none

	// Operation deadlines. Zero values keep the built-in defaults.
	OpTimeoutMedium time.Duration // single lookups and probes
	OpTimeoutLong   time.Duration // mutations that round-trip the platform
	OpTimeoutBatch  time.Duration // best-effort batch operations
}
