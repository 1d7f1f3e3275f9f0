package system

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts visibility work. Register it on the caller's registry.
type Metrics struct {
	Recomputes      prometheus.Counter
	TilesDiscovered prometheus.Counter
	Failures        *prometheus.CounterVec
}

// NewMetrics creates and registers the visibility metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Recomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roguecore_visibility_recomputes_total",
			Help: "Total number of per-viewer field of view recomputations",
		}),
		TilesDiscovered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roguecore_tiles_discovered_total",
			Help: "Total number of tiles remembered for the first time",
		}),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roguecore_visibility_errors_total",
				Help: "Total number of visibility update failures by reason",
			},
			[]string{"reason"},
		),
	}

	reg.MustRegister(m.Recomputes)
	reg.MustRegister(m.TilesDiscovered)
	reg.MustRegister(m.Failures)

	return m
}
