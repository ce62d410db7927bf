// Package metrics exposes Prometheus counters for the metadata engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequests counts outbound fetches per provider and operation.
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Subsystem: "metadata",
		Name:      "provider_requests_total",
		Help:      "Number of provider fetch and search calls issued.",
	}, []string{"provider", "op"})

	// ProviderFailures counts failed provider calls by failure class.
	ProviderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Subsystem: "metadata",
		Name:      "provider_failures_total",
		Help:      "Number of provider calls that failed, by class (transient, permanent).",
	}, []string{"provider", "class"})

	// CacheHits counts metadata cache hits per provider.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Subsystem: "metadata",
		Name:      "cache_hits_total",
		Help:      "Number of provider responses served from the on-disk cache.",
	}, []string{"provider", "kind"})

	// Enrichments counts secondary player-count enrichment passes that
	// contributed data.
	Enrichments = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory",
		Subsystem: "metadata",
		Name:      "enrichments_total",
		Help:      "Number of titles whose player counts were filled by an enrichment pass.",
	})
)
