/*
Package tracing provides lightweight request tracing.

# Overview

Each HTTP request gets a span. Handlers open child spans around dispatch,
and the widget refresher injects the trace context into its outbound
requests so a slow feed can be matched to the refresh that hit it.
Finished spans are logged through zap by a background collector.

# Usage

	tracer := tracing.New("deskd", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	err := tracer.Trace(ctx, "dispatch", func(ctx context.Context) error {
		return doWork(ctx)
	})

# Trace Format

Traces use HTTP headers for propagation:
- X-Trace-ID: Unique identifier for entire request flow
- X-Span-ID: Identifier for current operation
*/
package tracing
