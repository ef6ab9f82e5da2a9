// Package metrics provides Prometheus metrics for the governor service.
//
// The Collector owns a private registry and exposes recording methods for
// the two hot paths (admission checks and tracked calls) plus budget
// utilization gauges. Gauges are refreshed out of band by the Snapshotter,
// which runs on a cron schedule so scrapes stay cheap and never touch the
// ledger lock.
package metrics
