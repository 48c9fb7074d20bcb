// Package metrics records octoscope activity in a private Prometheus registry.
//
// There is no scrape endpoint: the registry is written once, in text
// exposition format, when the program exits with --metrics-file set. The
// file can be picked up by node_exporter's textfile collector.
package metrics

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/octoscope/pkg/errors"
	"github.com/matzehuels/octoscope/pkg/observability"
)

// Metrics holds the collectors and the registry they are registered with.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	HTTPErrors     *prometheus.CounterVec
	Searches       *prometheus.CounterVec
	SearchDuration prometheus.Histogram
	Pages          *prometheus.CounterVec
	ReposLoaded    prometheus.Counter
	Suggestions    *prometheus.CounterVec
	Stale          *prometheus.CounterVec
}

// New creates the collectors under namespace.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "GitHub API responses by endpoint and status code.",
			},
			[]string{"endpoint", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "GitHub API response latency by endpoint.",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint"},
		),
		HTTPErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_errors_total",
				Help:      "GitHub API requests that never received a response.",
			},
			[]string{"endpoint"},
		),
		Searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Settled searches by outcome.",
			},
			[]string{"outcome"},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Time from submit until profile and first page settled.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		Pages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "load_more_total",
				Help:      "Load-more requests by outcome.",
			},
			[]string{"outcome"},
		),
		ReposLoaded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "repos_loaded_total",
				Help:      "Repositories appended by load-more.",
			},
		),
		Suggestions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "suggestion_lookups_total",
				Help:      "Suggestion lookups by outcome.",
			},
			[]string{"outcome"},
		),
		Stale: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stale_results_total",
				Help:      "Results dropped because a newer request superseded them.",
			},
			[]string{"operation"},
		),
	}

	registry.MustRegister(
		m.HTTPRequests, m.HTTPDuration, m.HTTPErrors,
		m.Searches, m.SearchDuration, m.Pages, m.ReposLoaded,
		m.Suggestions, m.Stale,
	)
	return m
}

// Install registers m as the process-wide HTTP and search hooks.
func (m *Metrics) Install() {
	observability.SetHTTPHooks(httpHooks{m})
	observability.SetSearchHooks(searchHooks{m})
}

// WriteFile writes the registry to path in text exposition format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

// outcome labels a result by its error code.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code := errors.GetCode(err); code != "" {
		return strings.ToLower(string(code))
	}
	return "unknown"
}

// endpoint collapses a request path to its route so usernames never become
// label values.
func endpoint(path string) string {
	switch {
	case path == "/search/users":
		return "/search/users"
	case strings.HasPrefix(path, "/users/") && strings.HasSuffix(path, "/repos"):
		return "/users/{user}/repos"
	case strings.HasPrefix(path, "/users/"):
		return "/users/{user}"
	default:
		return "other"
	}
}

// =============================================================================
// Hooks
// =============================================================================

type httpHooks struct{ m *Metrics }

func (h httpHooks) OnRequest(context.Context, string, string, string) {}

func (h httpHooks) OnResponse(_ context.Context, _, _, path string, status int, d time.Duration) {
	ep := endpoint(path)
	h.m.HTTPRequests.WithLabelValues(ep, strconv.Itoa(status)).Inc()
	h.m.HTTPDuration.WithLabelValues(ep).Observe(d.Seconds())
}

func (h httpHooks) OnError(_ context.Context, _, _, path string, _ error) {
	h.m.HTTPErrors.WithLabelValues(endpoint(path)).Inc()
}

type searchHooks struct{ m *Metrics }

func (h searchHooks) OnSearchStart(context.Context, string) {}

func (h searchHooks) OnSearchComplete(_ context.Context, _ string, d time.Duration, err error) {
	h.m.Searches.WithLabelValues(outcome(err)).Inc()
	h.m.SearchDuration.Observe(d.Seconds())
}

func (h searchHooks) OnLoadMore(_ context.Context, _ string, _, count int, err error) {
	h.m.Pages.WithLabelValues(outcome(err)).Inc()
	h.m.ReposLoaded.Add(float64(count))
}

func (h searchHooks) OnSuggestions(_ context.Context, _ int, err error) {
	h.m.Suggestions.WithLabelValues(outcome(err)).Inc()
}

func (h searchHooks) OnStale(_ context.Context, operation string) {
	h.m.Stale.WithLabelValues(operation).Inc()
}
