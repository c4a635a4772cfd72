package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector métricas de sincronización y de acciones mutantes.
type Collector struct {
	registry  *prometheus.Registry
	fetches   *prometheus.CounterVec
	mutations *prometheus.CounterVec
	ticks     prometheus.Counter
	lastSync  prometheus.Gauge
}

// NewCollector registra las métricas en un registro propio (sin estado global).
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_sync_fetch_total",
				Help: "Lecturas de colecciones por resultado",
			},
			[]string{"collection", "outcome"},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_mutation_total",
				Help: "Acciones mutantes por resultado",
			},
			[]string{"action", "outcome"},
		),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "console_sync_cycles_total",
			Help: "Ciclos de sincronización completados",
		}),
		lastSync: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "console_sync_last_completed_timestamp_seconds",
			Help: "Marca de tiempo del último ciclo completado",
		}),
	}
	reg.MustRegister(c.fetches, c.mutations, c.ticks, c.lastSync)
	return c
}

// ObserveFetch cuenta una lectura de colección.
func (c *Collector) ObserveFetch(collection, outcome string) {
	if c == nil {
		return
	}
	c.fetches.WithLabelValues(collection, outcome).Inc()
}

// ObserveMutation cuenta una acción mutante.
func (c *Collector) ObserveMutation(action, outcome string) {
	if c == nil {
		return
	}
	c.mutations.WithLabelValues(action, outcome).Inc()
}

// ObserveCycle registra el fin de un ciclo de sincronización.
func (c *Collector) ObserveCycle() {
	if c == nil {
		return
	}
	c.ticks.Inc()
	c.lastSync.SetToCurrentTime()
}

// Registry registro subyacente (tests).
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler expone /metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
