// Package metrics exposes frame and growth statistics to Prometheus.
package metrics

import (
	"github.com/phanxgames/arbor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Recorder turns arbor.FrameStats into Prometheus series.
type Recorder struct {
	registry *prometheus.Registry

	frames    prometheus.Counter
	progress  prometheus.Gauge
	marks     *prometheus.GaugeVec
	fruits    prometheus.Gauge
	open      prometheus.Gauge
	passTime  prometheus.Histogram
	completed prometheus.Counter

	grown bool
	total float64
}

// NewRecorder registers arbor's collectors, plus the Go runtime and
// process collectors, on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_frames_total",
			Help: "Total number of tree ticks.",
		}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbor_growth_progress",
			Help: "Growth progress in instructions revealed.",
		}),
		marks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "arbor_marks_drawn",
			Help: "Marks drawn in the last tick, by pass.",
		}, []string{"pass"}),
		fruits: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbor_fruits_drawn",
			Help: "Fruits drawn in the last tick.",
		}),
		open: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbor_open_branches",
			Help: "Branches left open at the end of the word.",
		}),
		passTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbor_tick_duration_seconds",
			Help:    "Wall time spent in both passes of a tick.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_growth_completed_total",
			Help: "Trees that reached full growth.",
		}),
	}
	r.registry.MustRegister(
		r.frames, r.progress, r.marks, r.fruits, r.open, r.passTime, r.completed,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the registry the collectors live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// SetTotal sets the instruction count at which growth counts as complete.
func (r *Recorder) SetTotal(n int) {
	r.total = float64(n)
}

// Observe records one tick. It matches screen.Game's OnFrame hook.
func (r *Recorder) Observe(s arbor.FrameStats) {
	r.frames.Inc()
	r.progress.Set(s.Progress)
	r.marks.WithLabelValues("wood").Set(float64(s.Wood.Drawn))
	r.marks.WithLabelValues("fruit").Set(float64(s.Fruit.Drawn))
	r.fruits.Set(float64(s.Fruit.Fruits))
	r.open.Set(float64(s.Wood.OpenBranches))
	r.passTime.Observe(s.Elapsed.Seconds())

	if !r.grown && r.total > 0 && s.Progress >= r.total {
		r.grown = true
		r.completed.Inc()
	}
}
