/*
Package observability turns game lifecycle hooks into Prometheus metrics.

Metrics are registered on the Registerer passed to NewMetrics, so servers can
expose them on their own registry (see the HTTP adapter's /metrics).
*/
package observability
