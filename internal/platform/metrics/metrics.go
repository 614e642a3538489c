package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process-wide Prometheus registry and HTTP metrics.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP requests by route pattern, method and status code
	Requests *prometheus.CounterVec
}

// New creates a registry with Go runtime and process collectors plus the HTTP
// request counter. Module metrics register against Registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Metrics{
		Registry: reg,
		Requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "foiagate_http_requests_total",
			Help: "Total HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
	}
}

// IncrementRequest records one served request.
func (m *Metrics) IncrementRequest(route, method, status string) {
	if m != nil {
		m.Requests.WithLabelValues(route, method, status).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
