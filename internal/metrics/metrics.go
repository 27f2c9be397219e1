// Package metrics holds Prometheus instruments that are used across the
// site.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ContactSubmissionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Cumulative number of contact submissions accepted.",
		})

	NewsletterSignupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletter_signups_total",
			Help: "Cumulative number of newsletter signups accepted.",
		})

	IntakeValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_validation_failures_total",
			Help: "Cumulative number of rejected intake submissions.",
		},
		[]string{"form"},
	)

	IntakeDuplicatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_duplicates_total",
			Help: "Cumulative number of submissions rejected on the unique email constraint.",
		})

	RelatedComputationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "related_computations_total",
			Help: "Cumulative number of related-post rankings computed.",
		})

	SearchQueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "search_queries_total",
			Help: "Cumulative number of full-text search queries served.",
		})

	PostCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "post_cache_hits_total",
			Help: "Cumulative number of post responses served from the LRU cache.",
		})
)

func init() {
	prometheus.MustRegister(
		ContactSubmissionsTotal,
		NewsletterSignupsTotal,
		IntakeValidationFailuresTotal,
		IntakeDuplicatesTotal,
		RelatedComputationsTotal,
		SearchQueriesTotal,
		PostCacheHitsTotal,
	)
}
