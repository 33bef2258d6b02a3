package notifier

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/domain/alert"
	"github.com/sirupsen/logrus"
)

type logNotifier struct {
	logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (l *logNotifier) Notify(_ context.Context, n alert.Notification) error {
	l.logger.WithFields(logrus.Fields{
		"rule_id":   n.RuleID,
		"tenant_id": n.TenantID,
		"domain_id": n.DomainID,
		"count":     n.Count,
		"threshold": n.Threshold,
	}).Warn(summary(n))
	return nil
}
