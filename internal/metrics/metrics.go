// Package metrics exposes explorer activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ziadkadry99/asset-atlas/internal/view"
)

// Registry holds the explorer metrics on a private Prometheus registry.
type Registry struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ViewChangesTotal *prometheus.CounterVec
	PicksTotal       *prometheus.CounterVec
	StreamClients    prometheus.Gauge

	CatalogAssets prometheus.Gauge
	EntityEdges   prometheus.Gauge
	AreaEdges     prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric initialised.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Registry{
		registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atlas_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ViewChangesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_view_changes_total",
			Help: "View transitions by destination view",
		}, []string{"view"}),
		PicksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_picks_total",
			Help: "Node picks by view kind and outcome",
		}, []string{"kind", "status"}),
		StreamClients: f.NewGauge(prometheus.GaugeOpts{
			Name: "atlas_stream_clients",
			Help: "Connected view-change stream clients",
		}),
		CatalogAssets: f.NewGauge(prometheus.GaugeOpts{
			Name: "atlas_catalog_assets",
			Help: "Assets in the loaded catalog",
		}),
		EntityEdges: f.NewGauge(prometheus.GaugeOpts{
			Name: "atlas_entity_edges",
			Help: "Edges in the entity graph",
		}),
		AreaEdges: f.NewGauge(prometheus.GaugeOpts{
			Name: "atlas_area_edges",
			Help: "Edges in the area overview graph",
		}),
	}
}

// Prometheus returns the underlying Prometheus registry.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// SetGraphSize records the size of the loaded catalog and graphs.
func (r *Registry) SetGraphSize(assets, entityEdges, areaEdges int) {
	r.CatalogAssets.Set(float64(assets))
	r.EntityEdges.Set(float64(entityEdges))
	r.AreaEdges.Set(float64(areaEdges))
}

// ViewChanged implements view.Notifier.
func (r *Registry) ViewChanged(c view.Change) {
	r.ViewChangesTotal.WithLabelValues(c.Label).Inc()
}

// RecordPick counts a pick. kind is "area" or "asset".
func (r *Registry) RecordPick(kind string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.PicksTotal.WithLabelValues(kind, status).Inc()
}

// Middleware records request counts and latency per chi route pattern.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rc := chi.RouteContext(req.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.HTTPRequestsTotal.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
		r.HTTPRequestDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}
