package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Ingestion latency buckets in milliseconds.
	latencyBuckets = []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500}

	// TrafficEventsTotal counts ingestion requests by outcome:
	// accepted, blocked, unauthorized, unknown_domain, failed.
	TrafficEventsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bottracker_traffic_events_total",
			Help: "Traffic events received by outcome",
		},
		[]string{"outcome"},
	)

	BotDetectionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bottracker_bot_detections_total",
			Help: "Accepted traffic events attributed to a known bot",
		},
		[]string{"bot", "risk_level"},
	)

	BehaviorLabelsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bottracker_behavior_labels_total",
			Help: "Behavior labels assigned to accepted traffic events",
		},
		[]string{"label"},
	)

	IngestLatency = promauto.With(registerer).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bottracker_ingest_latency_ms",
			Help:    "Time spent handling one traffic event in milliseconds",
			Buckets: latencyBuckets,
		},
	)

	AlertsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bottracker_alerts_total",
			Help: "Alert notifications by type and delivery result",
		},
		[]string{"type", "result"},
	)

	DroppedTasksTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bottracker_dropped_tasks_total",
			Help: "Background tasks dropped because the queue was full",
		},
		[]string{"kind"},
	)

	LiveFeedConnections = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "bottracker_live_feed_connections",
			Help: "Open live traffic websocket connections",
		},
	)
)

type MetricsConfig struct {
	// EnableBotLabels adds per-bot label values to BotDetectionsTotal.
	EnableBotLabels bool
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{EnableBotLabels: true}
}

var Config = DefaultMetricsConfig()

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

// Gatherer exposes the private registry, mostly for tests.
func Gatherer() prometheus.Gatherer {
	return registry
}
