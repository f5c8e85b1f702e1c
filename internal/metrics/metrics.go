package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.DefaultRegisterer

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by path/method/code.",
		},
		[]string{"path", "method", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests by path/method/code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "code"},
	)

	repoEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repo_events_total",
			Help: "Repository write operations by op and result with error label.",
		},
		[]string{"op", "result", "error"},
	)

	repoDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repo_operation_duration_seconds",
			Help:    "Duration of repository write operations by op and result.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "result"},
	)

	competitorsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "competitors_total",
			Help: "Approximate number of registered competitors maintained by app flow.",
		},
	)

	squadsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "squads_total",
			Help: "Approximate number of squads maintained by app flow.",
		},
	)
)

func GinMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	code := strconv.Itoa(c.Writer.Status())
	path := c.FullPath()

	// unmatched routes (404s) have no FullPath
	if path == "" {
		path = c.Request.URL.Path
	}

	if path == "/metrics" || strings.HasPrefix(path, "/debug/pprof/") {
		return
	}

	method := c.Request.Method

	httpRequests.WithLabelValues(path, method, code).Inc()
	httpDuration.WithLabelValues(path, method, code).Observe(time.Since(start).Seconds())
}

func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func ObserveRepoOp(op string, start time.Time, err error) {
	result := "success"
	errLabel := ""
	if err != nil {
		result = "error"
		errLabel = err.Error()
	}
	repoEvents.WithLabelValues(op, result, errLabel).Inc()
	repoDuration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}

func AddCompetitors(delta float64) {
	competitorsTotal.Add(delta)
}

func AddSquads(delta float64) {
	squadsTotal.Add(delta)
}

func init() {
	collectors := []prometheus.Collector{
		httpRequests,
		httpDuration,
		repoEvents,
		repoDuration,
		competitorsTotal,
		squadsTotal,
	}

	for _, c := range collectors {
		_ = registry.Register(c)
	}
}
