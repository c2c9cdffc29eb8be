package render

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks tile render counters for observability. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	tiles    *prometheus.CounterVec
	faces    prometheus.Counter
	columns  prometheus.Counter
	inflight prometheus.Gauge
	duration prometheus.Histogram
}

// NewMetrics creates Metrics and registers them with reg. If reg is nil, the
// Metrics are not registered anywhere.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		tiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxelmap",
			Name:      "tiles_total",
			Help:      "Tiles processed by the render scheduler, by outcome.",
		}, []string{"outcome"}),
		faces: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelmap",
			Name:      "faces_total",
			Help:      "Faces added to hires tile models.",
		}),
		columns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelmap",
			Name:      "columns_total",
			Help:      "Columns scanned while rendering tiles.",
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxelmap",
			Name:      "tiles_inflight",
			Help:      "Tiles currently being rendered.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxelmap",
			Name:      "tile_render_duration_seconds",
			Help:      "Time spent rendering a single tile.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.tiles, m.faces, m.columns, m.inflight, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// start marks a tile render as started.
func (m *Metrics) start() {
	if m == nil {
		return
	}
	m.inflight.Inc()
}

// stop marks a tile render started with start as finished, whatever its
// outcome.
func (m *Metrics) stop() {
	if m == nil {
		return
	}
	m.inflight.Dec()
}

// rendered records a tile that was rendered successfully.
func (m *Metrics) rendered(faces, columns int, d time.Duration) {
	if m == nil {
		return
	}
	m.tiles.WithLabelValues("rendered").Inc()
	m.faces.Add(float64(faces))
	m.columns.Add(float64(columns))
	m.duration.Observe(d.Seconds())
}

// failed records a tile that could not be rendered or handled.
func (m *Metrics) failed() {
	if m == nil {
		return
	}
	m.tiles.WithLabelValues("failed").Inc()
}

// skipped records n tiles that were never rendered because the batch was
// cancelled.
func (m *Metrics) skipped(n int) {
	if m == nil || n == 0 {
		return
	}
	m.tiles.WithLabelValues("skipped").Add(float64(n))
}
