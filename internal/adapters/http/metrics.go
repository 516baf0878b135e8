package http

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pagelift/pagelift/pkg/view"
)

type metrics struct {
	renders  *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pagelift_renders_total",
			Help: "Render pipeline completions by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pagelift_render_seconds",
			Help:    "Wall time of render requests.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.renders, m.duration)
	return m
}

// hooks bridges view lifecycle events into the counters.
func (m *metrics) hooks() view.Hooks {
	return view.Hooks{
		OnRenderFinished: func(renderMethod string, err error) {
			outcome := "success"
			if err != nil {
				outcome = "error"
			}
			m.renders.WithLabelValues(outcome).Inc()
		},
	}
}
