// Package metrics exposes Prometheus collectors for the scrape pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesFetched tracks the number of pages retrieved successfully.
	PagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mkb_pages_fetched_total",
		Help: "The total number of pages retrieved successfully.",
	})
	// FetchErrors tracks requests that failed after exhausting retries.
	FetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mkb_fetch_errors_total",
		Help: "The total number of pages abandoned after retries.",
	})
	// FetchRetries tracks individual retry attempts.
	FetchRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mkb_fetch_retries_total",
		Help: "The total number of fetch retry attempts.",
	})
	// EntriesParsed tracks entries extracted from HTML.
	EntriesParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mkb_entries_parsed_total",
		Help: "The total number of MKB entries parsed out of HTML.",
	})
	// EntriesDropped tracks markup nodes rejected by code validation.
	EntriesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mkb_entries_dropped_total",
		Help: "The total number of markup nodes dropped as malformed.",
	})
	// DuplicateCodes tracks entries that collided with an already seen code.
	DuplicateCodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mkb_duplicate_codes_total",
		Help: "The total number of entries whose code was already collected.",
	})
)
