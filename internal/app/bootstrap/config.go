// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"

	"github.com/modelcove/groupsync/internal/domain/models"
)

// appConfigKeys defines the configuration keys for the group sync service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, platform_base_url, etc.
//   - Environment variables: GROUPSYNC_MONGO_URI, GROUPSYNC_PLATFORM_BASE_URL, etc.
//   - Command-line flags: --mongo_uri, --platform_base_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "groupsync", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// External platform configuration
	{Name: "platform_base_url", Default: "", Desc: "Base URL of the GitLab-compatible platform (e.g., https://gitlab.example.com)"},
	{Name: "platform_admin_token", Default: "", Desc: "Admin token for privileged platform calls"},

	// Group defaults
	{Name: "default_visibility", Default: "private", Desc: "Visibility for new groups when the request carries none: private, internal, or public"},

	// Operation deadlines
	{Name: "op_timeout_medium", Default: "", Desc: "Deadline for lookups and probes (e.g., 5s); blank keeps the default"},
	{Name: "op_timeout_long", Default: "", Desc: "Deadline for platform-mirrored mutations (e.g., 30s); blank keeps the default"},
	{Name: "op_timeout_batch", Default: "", Desc: "Deadline for batch operations (e.g., 2m); blank keeps the default"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific to
// this app. WAFFLE's config.LoadWithAppConfig merges .env files, config
// files, environment variables (WAFFLE_* for core, GROUPSYNC_* for app),
// and command-line flags, with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "GROUPSYNC", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		PlatformBaseURL:    appValues.String("platform_base_url"),
		PlatformAdminToken: appValues.String("platform_admin_token"),

		DefaultVisibility: appValues.String("default_visibility"),

		OpTimeoutMedium: appValues.Duration("op_timeout_medium", 0),
		OpTimeoutLong:   appValues.Duration("op_timeout_long", 0),
		OpTimeoutBatch:  appValues.Duration("op_timeout_batch", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI and the platform endpoint are both validated here so
// misconfiguration fails at boot instead of on the first request.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.PlatformBaseURL == "" {
		return fmt.Errorf("platform_base_url is required (e.g., https://gitlab.example.com)")
	}
	if u, err := url.Parse(appCfg.PlatformBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("platform_base_url %q is not an absolute URL", appCfg.PlatformBaseURL)
	}
	if appCfg.PlatformAdminToken == "" {
		return fmt.Errorf("platform_admin_token is required")
	}

	if !models.ValidVisibility(appCfg.DefaultVisibility) {
		return fmt.Errorf("default_visibility %q is not one of private, internal, public", appCfg.DefaultVisibility)
	}

	return nil
}
