// Package metrics Prometheus监控指标
//
// 控制台本身不存数据，可观测性的重点是"对远端借阅后端的依赖健康度"：
// 后端调用延迟、缓存命中率、熔断器状态。这三组指标足以回答
// "页面为什么慢"这个运维时最常见的问题。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal 控制台自身HTTP请求总数
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration 控制台自身HTTP请求耗时分布
	HTTPRequestDuration *prometheus.HistogramVec

	// BackendRequestsTotal 对远端后端的调用总数（按资源与结果分类）
	BackendRequestsTotal *prometheus.CounterVec

	// BackendRequestDuration 对远端后端的调用耗时分布
	BackendRequestDuration *prometheus.HistogramVec

	// CacheLookupsTotal 缓存查询总数（result: hit/stale/miss）
	CacheLookupsTotal *prometheus.CounterVec

	// CacheInvalidationsTotal 缓存失效总数（按kind分类）
	CacheInvalidationsTotal *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态（0=关闭, 1=打开, 2=半开）
	CircuitBreakerState *prometheus.GaugeVec
)

var initialized bool

// InitMetrics 初始化所有指标（只执行一次）
func InitMetrics(namespace string) {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Total number of requests to the lending backend",
		},
		[]string{"resource", "operation", "result"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Lending backend request latency in seconds",
			// 后端单次调用超时为10秒，桶上限与之对齐
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"resource", "operation"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by result (hit/stale/miss)",
		},
		[]string{"kind", "result"},
	)

	CacheInvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidations_total",
			Help:      "Cache invalidations by entity kind",
		},
		[]string{"kind"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)
}

// ObserveCacheLookup 记录一次缓存查询结果
func ObserveCacheLookup(kind, result string) {
	if CacheLookupsTotal != nil {
		CacheLookupsTotal.WithLabelValues(kind, result).Inc()
	}
}

// ObserveCacheInvalidation 记录一次缓存失效
func ObserveCacheInvalidation(kind string) {
	if CacheInvalidationsTotal != nil {
		CacheInvalidationsTotal.WithLabelValues(kind).Inc()
	}
}

// SetCircuitBreakerState 更新熔断器状态指标
func SetCircuitBreakerState(name string, state float64) {
	if CircuitBreakerState != nil {
		CircuitBreakerState.WithLabelValues(name).Set(state)
	}
}
