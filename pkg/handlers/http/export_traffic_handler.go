package http

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/domain/traffic"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	exportLimit   = 10000
	exportFileCSV = "traffic_logs.csv"
)

var exportColumns = []string{
	"id", "domain_id", "timestamp", "ip_address", "user_agent",
	"detected_bot", "bot_provider", "confidence_score", "risk_level",
	"behavior_label", "device", "os", "browser",
	"request_method", "request_path", "country", "city",
}

type exportTrafficHandler struct {
	logger *logrus.Logger
	repo   traffic.Repository
}

func NewExportTrafficHandler(logger *logrus.Logger, repo traffic.Repository) Handler {
	return &exportTrafficHandler{logger: logger, repo: repo}
}

// Handle @Summary Export traffic logs
// @Tags Traffic
// @Produce json
// @Produce text/csv
// @Param Authorization header string true "Bearer token"
// @Param format query string false "json (default) or csv"
// @Param domain_id query string false "Domain ID"
// @Success 200 {array} traffic.Log
// @Failure 400 {object} map[string]interface{} "Unsupported format"
// @Router /api/traffic/export [get]
func (h *exportTrafficHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}
	domainID, err := queryUUID(c, "domain_id")
	if err != nil {
		return fail(c, err)
	}
	format := c.Query("format", "json")
	if format != "json" && format != "csv" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format must be 'json' or 'csv'"})
	}

	logs, err := h.repo.List(c.Context(), traffic.Filter{
		UserID:   &userID,
		DomainID: domainID,
		Limit:    exportLimit,
	})
	if err != nil {
		h.logger.WithError(err).Error("failed to export traffic logs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	if format == "json" {
		if logs == nil {
			logs = []traffic.Log{}
		}
		return c.JSON(logs)
	}

	body, err := encodeCSV(logs)
	if err != nil {
		h.logger.WithError(err).Error("failed to encode traffic csv")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Attachment(exportFileCSV)
	return c.Send(body)
}

func encodeCSV(logs []traffic.Log) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for _, l := range logs {
		var country, city string
		if l.GeoLocation != nil {
			country, city = l.GeoLocation.Country, l.GeoLocation.City
		}
		row := []string{
			l.ID.String(),
			l.DomainID.String(),
			l.Timestamp.UTC().Format(time.RFC3339),
			l.IPAddress,
			l.UserAgent,
			deref(l.DetectedBot),
			deref(l.BotProvider),
			strconv.FormatFloat(l.ConfidenceScore, 'f', 2, 64),
			l.RiskLevel,
			l.BehaviorLabel,
			l.Device,
			l.OS,
			l.Browser,
			l.RequestMethod,
			l.RequestPath,
			country,
			city,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
