// Package config provides 12-factor configuration management for deskd.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, CORS origins)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Storage: Persistence backend and data directory
//   - Desktop: First-run theme probe and catalog override
//   - Widgets: Weather/news endpoints for the widget refresher
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, CORS_ORIGINS
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - DESKD_STORAGE, DESKD_DATA_DIR
//   - DESKD_PREFERS_DARK, DESKD_CATALOG
//   - WIDGET_WEATHER_URL, WIDGET_NEWS_URL, WIDGET_TIMEOUT
package config
