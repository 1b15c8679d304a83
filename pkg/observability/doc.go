/*
Package observability turns engine lifecycle hooks into Prometheus metrics.

A Metrics value registers its collectors once and hands out domain.LifecycleHooks
that can be merged with any other hooks (logging, auditing) the caller needs.
*/
package observability
