package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"code"},
	)
	Latency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "campaign_http_request_duration_seconds",
		Help:    "Request latency seconds",
		Buckets: prometheus.DefBuckets,
	})
	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "campaign_http_in_flight",
		Help: "In-flight HTTP requests",
	})
	RunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campaign_generation_runs_total",
		Help: "Completed payload generation runs",
	})
	ItemsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campaign_items_generated_total",
		Help: "Items a payload was generated for",
	})
	ItemsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campaign_items_skipped_total",
		Help: "Campaign items missing from the catalog",
	})
	RunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "campaign_generation_run_duration_seconds",
		Help:    "Payload generation run duration seconds",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal, Latency, InFlight,
		RunsTotal, ItemsGenerated, ItemsSkipped, RunDuration,
	)
}

func MetricsHandler() http.Handler { return promhttp.Handler() }

// RecordRun updates the generation counters after one run.
func RecordRun(generated, skipped int, elapsed time.Duration) {
	RunsTotal.Inc()
	ItemsGenerated.Add(float64(generated))
	ItemsSkipped.Add(float64(skipped))
	RunDuration.Observe(elapsed.Seconds())
}

type rec struct {
	http.ResponseWriter
	code int
}

func (r *rec) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func Measure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		InFlight.Inc()
		defer InFlight.Dec()

		rr := &rec{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rr, r)

		Latency.Observe(time.Since(start).Seconds())
		RequestsTotal.WithLabelValues(strconv.Itoa(rr.code)).Inc()
	})
}
