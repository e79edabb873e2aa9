package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the Prometheus collectors for one server instance. Each
// server gets its own registry so tests can run servers side by side.
type metrics struct {
	registry     *prometheus.Registry
	pageRenders  *prometheus.CounterVec
	renderErrors prometheus.Counter
	themeToggles prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		pageRenders: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scholarsite_page_renders_total",
			Help: "Pages rendered, by page name.",
		}, []string{"page"}),
		renderErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "scholarsite_render_errors_total",
			Help: "Page renders that failed.",
		}),
		themeToggles: factory.NewCounter(prometheus.CounterOpts{
			Name: "scholarsite_theme_toggles_total",
			Help: "Theme toggle requests handled.",
		}),
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
