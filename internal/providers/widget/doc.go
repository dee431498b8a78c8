// Package widget refreshes the desktop's weather and news widgets.
//
// Refresh is fire-and-forget: each configured source is fetched once in
// the background with no retries. A failure leaves the previous data in
// place, and a per-source circuit breaker stops a dead endpoint from being
// hit on every refresh.
package widget
