// Package server wires configuration, storage, the desktop session and the
// HTTP and WebSocket surfaces into one runnable server.
package server
