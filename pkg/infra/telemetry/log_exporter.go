package telemetry

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/domain/traffic"
	"github.com/sirupsen/logrus"
)

const LogExporterName = "log"

type logExporter struct {
	logger *logrus.Logger
}

func NewLogExporter(logger *logrus.Logger) Exporter {
	return &logExporter{logger: logger}
}

func (e *logExporter) Name() string {
	return LogExporterName
}

func (e *logExporter) Export(_ context.Context, log *traffic.Log) error {
	fields := logrus.Fields{
		"log_id":         log.ID,
		"domain_id":      log.DomainID,
		"ip":             log.IPAddress,
		"path":           log.RequestPath,
		"risk_level":     log.RiskLevel,
		"behavior_label": log.BehaviorLabel,
	}
	if log.DetectedBot != nil {
		fields["bot"] = *log.DetectedBot
	}
	e.logger.WithFields(fields).Info("traffic event")
	return nil
}

func (e *logExporter) Close() {}
