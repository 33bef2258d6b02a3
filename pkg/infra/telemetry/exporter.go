package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/NeuralTrust/BotTracker/pkg/domain/traffic"
	"github.com/NeuralTrust/BotTracker/pkg/infra/telemetry/kafka"
	"github.com/sirupsen/logrus"
)

// Exporter ships stored traffic logs to an external sink.
type Exporter interface {
	Name() string
	Export(ctx context.Context, log *traffic.Log) error
	Close()
}

type ExporterConfig struct {
	Name     string
	Settings map[string]interface{}
}

// NewExporters builds one exporter per config entry.
func NewExporters(logger *logrus.Logger, configs []ExporterConfig) ([]Exporter, error) {
	exporters := make([]Exporter, 0, len(configs))
	for _, cfg := range configs {
		exp, err := newExporter(logger, cfg)
		if err != nil {
			for _, built := range exporters {
				built.Close()
			}
			return nil, err
		}
		exporters = append(exporters, exp)
	}
	return exporters, nil
}

func newExporter(logger *logrus.Logger, cfg ExporterConfig) (Exporter, error) {
	switch cfg.Name {
	case kafka.ExporterName:
		return kafka.NewExporter(cfg.Settings)
	case LogExporterName:
		return NewLogExporter(logger), nil
	default:
		return nil, errors.New("unknown exporter: " + cfg.Name)
	}
}

// ExportAll sends log to every exporter and joins the failures.
func ExportAll(ctx context.Context, exporters []Exporter, log *traffic.Log) error {
	var errs []error
	for _, exp := range exporters {
		if err := exp.Export(ctx, log); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", exp.Name(), err))
		}
	}
	return errors.Join(errs...)
}
