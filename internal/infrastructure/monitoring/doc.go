/*
Package monitoring provides metrics collection for deskd.

# Overview

Metrics live on a per-instance Prometheus registry, so tests and multiple
servers in one process never collide on registration. A nil *Metrics is a
valid no-op collector.

# Metrics

- HTTP request metrics (latency, throughput, size)
- Intent dispatches by kind and result (applied, ignored, error)
- Registry gauges and window stack events (focus, install, ...)
- Context menu opens
- Storage loads (hit, miss, corrupt) and writes
- WebSocket connections and messages
- Widget refresh attempts

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "action")
	// ... dispatch ...
	timer.Stop("applied")
*/
package monitoring
