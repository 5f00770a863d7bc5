package infrastructure

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"climaterisk.app/internal/ports"
)

const metricsNamespace = "climaterisk"

// MetricsCollectorAdapter records domain metrics as Prometheus series on its own
// registry and keeps a small in-process summary for the JSON metrics endpoint.
type MetricsCollectorAdapter struct {
	registry *prometheus.Registry

	windowCache     *prometheus.CounterVec
	cacheOperations *prometheus.CounterVec
	cacheLatency    *prometheus.HistogramVec
	providerCalls   *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
	riskAssessments *prometheus.CounterVec

	mu           sync.Mutex
	windowHits   int64
	windowMisses int64
	providers    map[string]*providerSummary
	riskLevels   map[string]int64
	cacheMetrics ports.CacheMetrics
}

type providerSummary struct {
	Calls         int64   `json:"calls"`
	Failures      int64   `json:"failures"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
	total         time.Duration
}

// NewMetricsCollectorAdapter registers the collector's series on registry.
// A nil registry gets a fresh one.
func NewMetricsCollectorAdapter(registry *prometheus.Registry) *MetricsCollectorAdapter {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	return &MetricsCollectorAdapter{
		registry: registry,
		windowCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "climate_window_cache_total",
				Help:      "Climate window cache lookups by result",
			},
			[]string{"result"},
		),
		cacheOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "cache_operations_total",
				Help:      "Cache provider operations by cache, operation and result",
			},
			[]string{"cache", "operation", "result"},
		),
		cacheLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "cache_operation_seconds",
				Help:      "Cache provider operation latency in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"cache", "operation"},
		),
		providerCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "provider_calls_total",
				Help:      "Historical data provider calls by provider and status",
			},
			[]string{"provider", "status"},
		),
		providerLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "provider_call_seconds",
				Help:      "Historical data provider call latency in seconds",
				Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"provider"},
		),
		riskAssessments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "risk_assessments_total",
				Help:      "Activity risk evaluations by resulting level",
			},
			[]string{"level"},
		),
		providers:  make(map[string]*providerSummary),
		riskLevels: make(map[string]int64),
	}
}

// SetCacheMetrics attaches the cache provider whose stats GetMetrics reports.
// The provider is built after the collector because the collector observes it.
func (m *MetricsCollectorAdapter) SetCacheMetrics(cacheMetrics ports.CacheMetrics) {
	m.mu.Lock()
	m.cacheMetrics = cacheMetrics
	m.mu.Unlock()
}

// Registry returns the registry the collector's series live on
func (m *MetricsCollectorAdapter) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *MetricsCollectorAdapter) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *MetricsCollectorAdapter) RecordCacheHit(ctx context.Context) {
	m.windowCache.WithLabelValues(ports.CacheResultHit).Inc()
	m.mu.Lock()
	m.windowHits++
	m.mu.Unlock()
}

func (m *MetricsCollectorAdapter) RecordCacheMiss(ctx context.Context) {
	m.windowCache.WithLabelValues(ports.CacheResultMiss).Inc()
	m.mu.Lock()
	m.windowMisses++
	m.mu.Unlock()
}

func (m *MetricsCollectorAdapter) RecordProviderCall(ctx context.Context, provider string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.providerCalls.WithLabelValues(provider, status).Inc()
	m.providerLatency.WithLabelValues(provider).Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	summary, ok := m.providers[provider]
	if !ok {
		summary = &providerSummary{}
		m.providers[provider] = summary
	}
	summary.Calls++
	if !success {
		summary.Failures++
	}
	summary.total += duration
	summary.AvgDurationMS = float64(summary.total.Milliseconds()) / float64(summary.Calls)
}

func (m *MetricsCollectorAdapter) RecordRiskAssessment(ctx context.Context, level string) {
	m.riskAssessments.WithLabelValues(level).Inc()
	m.mu.Lock()
	m.riskLevels[level]++
	m.mu.Unlock()
}

// ObserveCacheOperation implements ports.CacheObserver
func (m *MetricsCollectorAdapter) ObserveCacheOperation(cache, operation, result string, duration time.Duration) {
	m.cacheOperations.WithLabelValues(cache, operation, result).Inc()
	m.cacheLatency.WithLabelValues(cache, operation).Observe(duration.Seconds())
}

// GetMetrics returns a JSON-friendly snapshot of the collected metrics
func (m *MetricsCollectorAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lookups := m.windowHits + m.windowMisses
	var hitRatio float64
	if lookups > 0 {
		hitRatio = float64(m.windowHits) / float64(lookups)
	}

	providers := make(map[string]providerSummary, len(m.providers))
	for name, summary := range m.providers {
		providers[name] = *summary
	}

	levels := make(map[string]int64, len(m.riskLevels))
	for level, count := range m.riskLevels {
		levels[level] = count
	}

	metrics := map[string]interface{}{
		"climate_window_cache": map[string]interface{}{
			"hits":      m.windowHits,
			"misses":    m.windowMisses,
			"hit_ratio": hitRatio,
		},
		"providers":        providers,
		"risk_assessments": levels,
	}
	if m.cacheMetrics != nil {
		metrics["cache"] = m.cacheMetrics.GetStats()
	}
	return metrics, nil
}
