package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "ges_billing_"

	resultSuccess  = "success"
	resultError    = "error"
	resultInvalid  = "invalid"
	resultConflict = "conflict"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	cycleWrites          *prometheus.CounterVec
	apportionmentTotal   *prometheus.CounterVec
	apportionmentLatency *prometheus.HistogramVec

	obligationsTotal *prometheus.CounterVec
	checkoutTotal    *prometheus.CounterVec
)

// Init registers the service metrics on the default registry.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		)

		cycleWrites = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "cycle_writes_total",
				Help: "Total billing cycle writes by operation and result",
			},
			[]string{"operation", "result"},
		)
		apportionmentTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "apportionment_total",
				Help: "Total apportionment computations by result",
			},
			[]string{"result"},
		)
		apportionmentLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "apportionment_latency_seconds",
				Help:    "Apportionment latency in seconds",
				Buckets: []float64{.00005, .0001, .0005, .001, .005, .01, .05},
			},
			[]string{"result"},
		)

		obligationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "payment_obligations_total",
				Help: "Total payment obligations written by operation",
			},
			[]string{"operation"},
		)
		checkoutTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "checkout_total",
				Help: "Total online checkouts by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			cycleWrites,
			apportionmentTotal,
			apportionmentLatency,
			obligationsTotal,
			checkoutTotal,
		)
	})
}

// GinMiddleware records request count and latency per matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if httpRequests != nil {
			httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		}
		if httpLatency != nil {
			httpLatency.WithLabelValues(route, c.Request.Method).Observe(time.Since(started).Seconds())
		}
	}
}

// ObserveCycleWrite counts a billing cycle create/update/delete.
func ObserveCycleWrite(operation, result string) {
	if result == "" {
		result = resultSuccess
	}
	if cycleWrites != nil {
		cycleWrites.WithLabelValues(operation, result).Inc()
	}
}

// ObserveApportionment records apportionment latency and result.
func ObserveApportionment(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if apportionmentTotal != nil {
		apportionmentTotal.WithLabelValues(result).Inc()
	}
	if apportionmentLatency != nil {
		apportionmentLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveObligations adds count obligations written by operation.
func ObserveObligations(operation string, count int) {
	if count <= 0 {
		return
	}
	if obligationsTotal != nil {
		obligationsTotal.WithLabelValues(operation).Add(float64(count))
	}
}

// ObserveCheckout counts an online checkout attempt.
func ObserveCheckout(result string) {
	if result == "" {
		result = resultSuccess
	}
	if checkoutTotal != nil {
		checkoutTotal.WithLabelValues(result).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess  = resultSuccess
	ResultError    = resultError
	ResultInvalid  = resultInvalid
	ResultConflict = resultConflict
)
