// Package telemetry expone métricas Prometheus de la estación.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry registro propio (no el global) para que los tests puedan crear varios.
type Registry struct {
	reg *prometheus.Registry

	remoteRequests *prometheus.CounterVec
	remoteDuration *prometheus.HistogramVec
	statusUpdates  *prometheus.CounterVec
	scans          *prometheus.CounterVec
}

// New registra los collectors del proceso y las métricas de la estación.
func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		reg: reg,
		remoteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sdt_remote_requests_total",
			Help: "Llamadas a la API remota por endpoint, método y código HTTP (0 = error de red).",
		}, []string{"endpoint", "method", "code"}),
		remoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sdt_remote_request_duration_seconds",
			Help:    "Duración de las llamadas a la API remota.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "method"}),
		statusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sdt_status_updates_total",
			Help: "Actualizaciones de estado por resultado (success, failed, auth_expired).",
		}, []string{"outcome"}),
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sdt_scans_total",
			Help: "Códigos leídos por formato reconocido.",
		}, []string{"format"}),
	}
	reg.MustRegister(r.remoteRequests, r.remoteDuration, r.statusUpdates, r.scans)
	return r
}

// ObserveRemote registra una llamada a la API remota.
func (r *Registry) ObserveRemote(endpoint, method string, code int, d time.Duration) {
	r.remoteRequests.WithLabelValues(endpoint, method, strconv.Itoa(code)).Inc()
	r.remoteDuration.WithLabelValues(endpoint, method).Observe(d.Seconds())
}

// StatusUpdate cuenta el resultado de un envío de estado.
func (r *Registry) StatusUpdate(outcome string) {
	r.statusUpdates.WithLabelValues(outcome).Inc()
}

// Scan cuenta un código leído.
func (r *Registry) Scan(format string) {
	r.scans.WithLabelValues(format).Inc()
}

// Handler handler HTTP para /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer acceso directo para tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
