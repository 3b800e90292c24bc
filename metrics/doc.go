// Package metrics exposes Prometheus collectors for recommendation and
// ingestion. Collectors register with the default registry on import.
package metrics
