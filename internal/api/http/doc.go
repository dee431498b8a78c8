// Package http provides the REST surface of the desktop session.
//
// Endpoints:
//   - Health: / and /health
//   - Session: /session, /intents
//   - Menus: /menus/:id/open, /menus/intents, /menus
//   - Apps: /apps, /apps/:name, /apps/:name/focus, /apps/:name/minimize
//   - Layout: /desktop, /taskbar
//   - Settings: /settings
//   - Widgets: /widgets, /widgets/refresh
//   - Logs: /logs (shell log sink)
//
// Domain errors map to status codes in one place (statusFor), so every
// handler answers a duplicate name with 409 and an unknown app with 404.
//
// Example Usage:
//
//	handlers := http.NewHandlers(sess, refresher, tracer, logger)
//	handlers.Register(router)
package http
