package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const jobName = "catalog_scraper"

// Metrics holds all Prometheus metrics for a scraper run.
type Metrics struct {
	registry *prometheus.Registry

	PagesFetched      prometheus.Counter
	ItemsExtracted    *prometheus.CounterVec
	ItemsInserted     *prometheus.CounterVec
	ErrorsTotal       *prometheus.CounterVec
	PageFetchDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PagesFetched: factory.NewCounter(prometheus.CounterOpts{
			Name: "catalog_pages_fetched_total",
			Help: "The total number of listing pages fetched",
		}),
		ItemsExtracted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_items_extracted_total",
			Help: "The total number of listings extracted from pages",
		}, []string{"genre"}),
		ItemsInserted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_items_inserted_total",
			Help: "The total number of listings stored in the catalog",
		}, []string{"genre"}),
		ErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_errors_total",
			Help: "The total number of errors encountered",
		}, []string{"type"}), // e.g. 'timeout', 'extraction_mismatch', 'persistence'
		PageFetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_page_fetch_duration_seconds",
			Help:    "Duration of listing page fetches.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

func (m *Metrics) ObservePageFetch(d time.Duration) {
	m.PagesFetched.Inc()
	m.PageFetchDuration.Observe(d.Seconds())
}

func (m *Metrics) AddExtracted(genre string, n int) {
	m.ItemsExtracted.WithLabelValues(genre).Add(float64(n))
}

func (m *Metrics) AddInserted(genre string, n int) {
	m.ItemsInserted.WithLabelValues(genre).Add(float64(n))
}

func (m *Metrics) IncErrorsTotal(errorType string) {
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

// Registry exposes the private registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Push sends the collected metrics to a Pushgateway, grouped by run id.
func (m *Metrics) Push(ctx context.Context, gatewayURL, runID string) error {
	err := push.New(gatewayURL, jobName).
		Gatherer(m.registry).
		Grouping("run_id", runID).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
