// Package main is the entry point for deskd, the desktop session server.
//
// The server owns the state of a browser-rendered desktop shell: running
// and installed apps, window stacking, context menus and settings. The
// shell reads snapshots and sends intents over HTTP or WebSocket.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -storage sqlite -data /var/lib/deskd
//
//	# Development mode (colored logs, debug level)
//	./server -dev -storage memory
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
