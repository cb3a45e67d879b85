package profiling

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the world pipeline.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	generated     prometheus.Counter
	published     prometheus.Counter
	hidden        prometheus.Counter
	shown         prometheus.Counter
	evicted       prometheus.Counter
	remeshes      prometheus.Counter
	storedChunks  prometheus.Gauge
	frameSeconds  prometheus.Histogram
	trackDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which tests rely on.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minivoxel",
			Subsystem: "streaming",
			Name:      "chunks_generated_total",
			Help:      "Chunks produced by the generation worker.",
		}),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minivoxel",
			Subsystem: "streaming",
			Name:      "chunks_published_total",
			Help:      "Chunks meshed and inserted into the store.",
		}),
		hidden: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minivoxel",
			Subsystem: "streaming",
			Name:      "chunks_hidden_total",
			Help:      "Visibility toggles from visible to hidden.",
		}),
		shown: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minivoxel",
			Subsystem: "streaming",
			Name:      "chunks_shown_total",
			Help:      "Visibility toggles from hidden back to visible.",
		}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minivoxel",
			Subsystem: "streaming",
			Name:      "chunks_evicted_total",
			Help:      "Chunks dropped from the store by the eviction tier.",
		}),
		remeshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minivoxel",
			Subsystem: "world",
			Name:      "remeshes_total",
			Help:      "Synchronous mesh rebuilds after block edits.",
		}),
		storedChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "minivoxel",
			Subsystem: "world",
			Name:      "stored_chunks",
			Help:      "Chunks currently held in the store.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "minivoxel",
			Name:      "frame_seconds",
			Help:      "Wall time of one simulation frame.",
			Buckets:   []float64{0.001, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1, 0.25},
		}),
		trackDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "minivoxel",
			Name:      "tracked_seconds",
			Help:      "Durations recorded through profiling.Track, by name.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}, []string{"name"}),
	}
	if reg != nil {
		reg.MustRegister(m.generated, m.published, m.hidden, m.shown, m.evicted,
			m.remeshes, m.storedChunks, m.frameSeconds, m.trackDuration)
	}
	return m
}

// ObserveTracked feeds durations recorded by Track into a histogram.
// Install with SetObserver(m.ObserveTracked).
func (m *Metrics) ObserveTracked(name string, d time.Duration) {
	if m == nil {
		return
	}
	m.trackDuration.WithLabelValues(name).Observe(d.Seconds())
}

func (m *Metrics) ChunkGenerated() {
	if m != nil {
		m.generated.Inc()
	}
}

func (m *Metrics) ChunkPublished(stored int) {
	if m != nil {
		m.published.Inc()
		m.storedChunks.Set(float64(stored))
	}
}

func (m *Metrics) ChunkHidden() {
	if m != nil {
		m.hidden.Inc()
	}
}

func (m *Metrics) ChunkShown() {
	if m != nil {
		m.shown.Inc()
	}
}

func (m *Metrics) ChunksEvicted(n, stored int) {
	if m != nil {
		m.evicted.Add(float64(n))
		m.storedChunks.Set(float64(stored))
	}
}

func (m *Metrics) Remeshed() {
	if m != nil {
		m.remeshes.Inc()
	}
}

func (m *Metrics) FrameDone(d time.Duration) {
	if m != nil {
		m.frameSeconds.Observe(d.Seconds())
	}
}

// Serve exposes the default registry on addr/metrics in the background.
// Errors other than a clean shutdown are logged.
func Serve(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("metrics endpoint listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server stopped", "err", err)
		}
	}()
	return srv
}
