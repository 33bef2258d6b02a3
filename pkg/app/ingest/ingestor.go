package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	appAlert "github.com/NeuralTrust/BotTracker/pkg/app/alert"
	appApiKey "github.com/NeuralTrust/BotTracker/pkg/app/apikey"
	appPolicy "github.com/NeuralTrust/BotTracker/pkg/app/policy"
	"github.com/NeuralTrust/BotTracker/pkg/app/worker"
	"github.com/NeuralTrust/BotTracker/pkg/common"
	"github.com/NeuralTrust/BotTracker/pkg/detection"
	"github.com/NeuralTrust/BotTracker/pkg/domain"
	"github.com/NeuralTrust/BotTracker/pkg/domain/apikey"
	"github.com/NeuralTrust/BotTracker/pkg/domain/site"
	"github.com/NeuralTrust/BotTracker/pkg/domain/traffic"
	"github.com/NeuralTrust/BotTracker/pkg/infra/behavior"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/event"
	"github.com/NeuralTrust/BotTracker/pkg/infra/fingerprint"
	"github.com/NeuralTrust/BotTracker/pkg/infra/geo"
	"github.com/NeuralTrust/BotTracker/pkg/infra/prometheus"
	"github.com/NeuralTrust/BotTracker/pkg/infra/telemetry"
	"github.com/NeuralTrust/BotTracker/pkg/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultAlertMinConfidence = 0.5

	TaskKindAlert    = "alert_check"
	TaskKindExport   = "traffic_export"
	TaskKindLiveFeed = "live_feed"
)

var (
	ErrUnauthorized  = errors.New("invalid API key")
	ErrUnknownDomain = errors.New("domain not found or not verified")
	ErrBlocked       = errors.New("blocked by bot policy")
	ErrStoreFailed   = errors.New("failed to store traffic log")
)

// Event is one traffic observation reported by a tenant's site.
type Event struct {
	Domain    string
	APIKey    string
	IP        string
	UserAgent string
	Path      string
	Method    string
	Headers   map[string]string
	RemoteIP  string
}

type Result struct {
	Accepted    bool                `json:"accepted"`
	BotDetected bool                `json:"bot_detected"`
	BotName     *string             `json:"bot_name,omitempty"`
	Confidence  float64             `json:"confidence"`
	RiskLevel   detection.RiskLevel `json:"risk_level"`
	Behavior    behavior.Label      `json:"behavior,omitempty"`
	LogID       *uuid.UUID          `json:"log_id,omitempty"`
	Reason      string              `json:"reason,omitempty"`
	Log         *traffic.Log        `json:"-"`
}

type Ingestor interface {
	Ingest(ctx context.Context, ev Event) (*Result, error)
}

type Config struct {
	AlertMinConfidence float64
}

type ingestor struct {
	logger      *logrus.Logger
	keyFinder   appApiKey.Finder
	domainRepo  site.Repository
	trafficRepo traffic.Repository
	classifier  detection.Classifier
	gate        appPolicy.Gate
	analyzer    behavior.Analyzer
	locator     geo.Locator
	publisher   cache.EventPublisher
	exporters   []telemetry.Exporter
	checker     appAlert.Checker
	pool        worker.Pool
	cfg         Config
	now         func() time.Time
}

func NewIngestor(
	logger *logrus.Logger,
	keyFinder appApiKey.Finder,
	domainRepo site.Repository,
	trafficRepo traffic.Repository,
	classifier detection.Classifier,
	gate appPolicy.Gate,
	analyzer behavior.Analyzer,
	locator geo.Locator,
	publisher cache.EventPublisher,
	exporters []telemetry.Exporter,
	checker appAlert.Checker,
	pool worker.Pool,
	cfg Config,
) Ingestor {
	if cfg.AlertMinConfidence <= 0 {
		cfg.AlertMinConfidence = DefaultAlertMinConfidence
	}
	return &ingestor{
		logger:      logger,
		keyFinder:   keyFinder,
		domainRepo:  domainRepo,
		trafficRepo: trafficRepo,
		classifier:  classifier,
		gate:        gate,
		analyzer:    analyzer,
		locator:     locator,
		publisher:   publisher,
		exporters:   exporters,
		checker:     checker,
		pool:        pool,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (i *ingestor) Ingest(ctx context.Context, ev Event) (*Result, error) {
	start := i.now()
	defer func() {
		prometheus.IngestLatency.Observe(float64(i.now().Sub(start).Milliseconds()))
	}()

	key, err := i.keyFinder.Find(ctx, ev.APIKey)
	if err != nil {
		if errors.Is(err, apikey.ErrInvalidKey) {
			prometheus.TrafficEventsTotal.WithLabelValues("unauthorized").Inc()
			return nil, ErrUnauthorized
		}
		prometheus.TrafficEventsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to validate api key: %w", err)
	}

	dom, err := i.domainRepo.GetVerifiedByName(ctx, ev.Domain, key.UserID)
	if err != nil {
		if errors.Is(err, site.ErrNotVerified) {
			prometheus.TrafficEventsTotal.WithLabelValues("unknown_domain").Inc()
			return nil, ErrUnknownDomain
		}
		prometheus.TrafficEventsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to load domain: %w", err)
	}

	ip := strings.TrimSpace(ev.IP)
	if ip == "" {
		ip = detection.ResolveIP(ev.Headers, ev.RemoteIP)
	}
	method := strings.ToUpper(strings.TrimSpace(ev.Method))
	if method == "" {
		method = http.MethodGet
	}

	class := i.classifier.Classify(ev.UserAgent, ip)
	log := i.logger.WithFields(logrus.Fields{
		"domain_id": dom.ID,
		"tenant_id": key.UserID,
	})

	if class.IsBot() {
		blocked, err := i.gate.IsBlocked(ctx, key.UserID, *class.BotName)
		if err != nil {
			log.WithError(err).Warn("bot policy lookup failed, allowing request")
		}
		if blocked {
			prometheus.TrafficEventsTotal.WithLabelValues("blocked").Inc()
			return &Result{
				Accepted:    false,
				BotDetected: true,
				BotName:     class.BotName,
				Confidence:  class.Confidence,
				RiskLevel:   class.Risk,
				Reason:      ErrBlocked.Error(),
			}, ErrBlocked
		}
	}

	fp := fingerprint.Generate(ev.UserAgent, ev.Headers, ip)
	label, err := i.analyzer.Analyze(ctx, fp, ev.Path)
	if err != nil {
		log.WithError(err).Warn("behavior analysis failed, labelling as normal")
		label = behavior.LabelNormal
	}

	ua := utils.ParseUserAgent(ev.UserAgent, detection.HeaderValue(ev.Headers, "Accept-Language"))

	id, err := uuid.NewV7()
	if err != nil {
		prometheus.TrafficEventsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	entry := &traffic.Log{
		ID:              id,
		DomainID:        dom.ID,
		UserID:          key.UserID,
		IPAddress:       ip,
		UserAgent:       ev.UserAgent,
		DetectedBot:     class.BotName,
		ConfidenceScore: class.Confidence,
		RiskLevel:       class.Risk.String(),
		BehaviorLabel:   string(label),
		Fingerprint:     &fp,
		GeoLocation:     i.locate(ctx, ip),
		Device:          ua.Device,
		OS:              ua.OS,
		Browser:         ua.Browser,
		RequestPath:     ev.Path,
		RequestMethod:   method,
		Timestamp:       i.now().UTC(),
	}
	if class.IsBot() {
		provider := class.Provider
		entry.BotProvider = &provider
	}

	if err := i.trafficRepo.Save(ctx, entry); err != nil {
		log.WithError(err).Error("failed to store traffic log")
		prometheus.TrafficEventsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}

	i.recordMetrics(class, label)
	i.afterStore(*entry, class)

	return &Result{
		Accepted:    true,
		BotDetected: class.IsBot(),
		BotName:     class.BotName,
		Confidence:  class.Confidence,
		RiskLevel:   class.Risk,
		Behavior:    label,
		LogID:       &entry.ID,
		Log:         entry,
	}, nil
}

func (i *ingestor) afterStore(entry traffic.Log, class detection.Classification) {
	log := i.logger.WithFields(logrus.Fields{
		"queue":  common.IngestionQueueName,
		"log_id": entry.ID,
	})

	if i.publisher != nil {
		i.pool.Enqueue(TaskKindLiveFeed, func(ctx context.Context) {
			if err := i.publisher.Publish(ctx, event.TrafficLoggedEvent{Log: entry}); err != nil {
				log.WithError(err).Warn("failed to publish traffic logged event")
			}
		})
	}

	if len(i.exporters) > 0 {
		i.pool.Enqueue(TaskKindExport, func(ctx context.Context) {
			if err := telemetry.ExportAll(ctx, i.exporters, &entry); err != nil {
				log.WithError(err).Warn("failed to export traffic log")
			}
		})
	}

	if class.IsBot() && class.Confidence > i.cfg.AlertMinConfidence && i.checker != nil {
		i.pool.Enqueue(TaskKindAlert, func(ctx context.Context) {
			i.checker.CheckAndNotify(ctx, entry.UserID, entry.DomainID)
		})
	}
}

func (i *ingestor) recordMetrics(class detection.Classification, label behavior.Label) {
	prometheus.TrafficEventsTotal.WithLabelValues("accepted").Inc()
	prometheus.BehaviorLabelsTotal.WithLabelValues(string(label)).Inc()
	if class.IsBot() {
		bot := "bot"
		if prometheus.Config.EnableBotLabels {
			bot = *class.BotName
		}
		prometheus.BotDetectionsTotal.WithLabelValues(bot, class.Risk.String()).Inc()
	}
}

func (i *ingestor) locate(ctx context.Context, ip string) *domain.GeoLocationJSON {
	if i.locator == nil {
		return nil
	}
	return i.locator.Locate(ctx, ip)
}
