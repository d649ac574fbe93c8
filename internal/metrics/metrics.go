package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Registry owns the service collectors. It satisfies the recorder interfaces of the
// repositories, the dispatcher and the push handler.
type Registry struct {
	reg *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	repoWrites       *prometheus.CounterVec
	repoDuration     *prometheus.HistogramVec
	eventDeliveries  *prometheus.CounterVec
	pushDeliveries   *prometheus.CounterVec
	deadLetterPurged prometheus.Counter
}

func New(namespace string) *Registry {
	if namespace == "" {
		namespace = "journal"
	}
	r := &Registry{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		repoWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "writes_total",
			Help:      "Repository writes by operation and outcome.",
		}, []string{"op", "status"}),
		repoDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "write_duration_seconds",
			Help:      "Duration of repository writes including their transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"op"}),
		eventDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "deliveries_total",
			Help:      "Domain event deliveries by event, handler and outcome.",
		}, []string{"event", "handler", "status"}),
		pushDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "push",
			Name:      "deliveries_total",
			Help:      "Push notification deliveries by outcome.",
		}, []string{"status"}),
		deadLetterPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dead_letters",
			Name:      "purged_total",
			Help:      "Dead letters removed by retention cleanup.",
		}),
	}
	r.reg.MustRegister(
		r.httpRequests,
		r.httpDuration,
		r.repoWrites,
		r.repoDuration,
		r.eventDeliveries,
		r.pushDeliveries,
		r.deadLetterPurged,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return r
}

// Gatherer exposes the underlying registry, mostly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

func (r *Registry) ObserveRepositoryWrite(op, status string, dur time.Duration) {
	r.repoWrites.WithLabelValues(op, status).Inc()
	r.repoDuration.WithLabelValues(op).Observe(dur.Seconds())
}

func (r *Registry) ObserveDispatch(event, handler, status string) {
	r.eventDeliveries.WithLabelValues(event, handler, status).Inc()
}

func (r *Registry) ObservePush(status string) {
	r.pushDeliveries.WithLabelValues(status).Inc()
}

func (r *Registry) ObserveDeadLettersPurged(n int) {
	if n > 0 {
		r.deadLetterPurged.Add(float64(n))
	}
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}))
}

// Instrument records count and latency per matched route. route names the pattern,
// not the concrete path, so ids do not explode the label space.
func (r *Registry) Instrument(route string, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		method := string(ctx.Method())
		r.httpRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Response.StatusCode())).Inc()
		r.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
