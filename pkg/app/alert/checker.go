package alert

import (
	"context"
	"time"

	domain "github.com/NeuralTrust/BotTracker/pkg/domain/alert"
	"github.com/NeuralTrust/BotTracker/pkg/domain/traffic"
	"github.com/NeuralTrust/BotTracker/pkg/infra/notifier"
	"github.com/NeuralTrust/BotTracker/pkg/infra/prometheus"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const DefaultWindow = time.Hour

// Checker compares a tenant's recent bot detections on a domain against the
// tenant's active alert rules and notifies for every rule that is met.
type Checker interface {
	CheckAndNotify(ctx context.Context, tenantID, domainID uuid.UUID)
}

type checker struct {
	logger      *logrus.Logger
	trafficRepo traffic.Repository
	ruleRepo    domain.Repository
	notifier    notifier.Notifier
	window      time.Duration
	now         func() time.Time
}

type Option func(*checker)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *checker) {
		if now != nil {
			c.now = now
		}
	}
}

func NewChecker(
	logger *logrus.Logger,
	trafficRepo traffic.Repository,
	ruleRepo domain.Repository,
	n notifier.Notifier,
	window time.Duration,
	opts ...Option,
) Checker {
	if window <= 0 {
		window = DefaultWindow
	}
	c := &checker{
		logger:      logger,
		trafficRepo: trafficRepo,
		ruleRepo:    ruleRepo,
		notifier:    n,
		window:      window,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *checker) CheckAndNotify(ctx context.Context, tenantID, domainID uuid.UUID) {
	log := c.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"domain_id": domainID,
	})

	rules, err := c.ruleRepo.ListActiveByUser(ctx, tenantID)
	if err != nil {
		log.WithError(err).Error("failed to load alert rules")
		return
	}
	if len(rules) == 0 {
		return
	}

	now := c.now()
	since := now.Add(-c.window)
	count, err := c.trafficRepo.Count(ctx, traffic.Filter{
		UserID:   &tenantID,
		DomainID: &domainID,
		Since:    &since,
		BotsOnly: true,
	})
	if err != nil {
		log.WithError(err).Error("failed to count recent bot detections")
		return
	}

	for _, rule := range rules {
		if count < int64(rule.Threshold) {
			continue
		}
		n := domain.Notification{
			RuleID:      rule.ID,
			TenantID:    tenantID,
			DomainID:    domainID,
			Type:        rule.AlertType,
			Destination: rule.Destination,
			Threshold:   rule.Threshold,
			Count:       count,
			Window:      c.window,
			TriggeredAt: now,
		}
		if err := c.notifier.Notify(ctx, n); err != nil {
			prometheus.AlertsTotal.WithLabelValues(string(rule.AlertType), "failed").Inc()
			log.WithError(err).WithFields(logrus.Fields{
				"rule_id":    rule.ID,
				"alert_type": rule.AlertType,
			}).Warn("alert notification failed")
			continue
		}
		prometheus.AlertsTotal.WithLabelValues(string(rule.AlertType), "sent").Inc()
	}
}
