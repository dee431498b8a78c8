// Package middleware provides the HTTP middleware stack of the desktop API.
//
//   - CORS: origins from configuration, trace headers exposed
//   - RateLimit: per-IP token bucket with idle client eviction
//   - GlobalRateLimit: one bucket for every client
//   - Logger and Recovery: zap request logging and panic recovery
//
// Example Usage:
//
//	router.Use(middleware.Recovery(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.CORSOrigins...)))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
