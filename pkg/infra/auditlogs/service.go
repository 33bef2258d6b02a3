package auditlogs

import (
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/common"
	"github.com/NeuralTrust/BotTracker/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Sink receives completed audit events.
type Sink interface {
	Write(event Event) error
}

type Service interface {
	Emit(c *fiber.Ctx, event Event)
}

type service struct {
	enabled bool
	logger  *logrus.Logger
	sink    Sink
	now     func() time.Time
}

func NewService(sink Sink, logger *logrus.Logger, enabled bool) Service {
	return &service{
		enabled: enabled,
		logger:  logger,
		sink:    sink,
		now:     time.Now,
	}
}

func (s *service) Emit(c *fiber.Ctx, event Event) {
	if !s.enabled || s.sink == nil {
		return
	}

	userID, _ := c.Locals(string(common.UserIDContextKey)).(string)
	userEmail, _ := c.Locals(string(common.UserEmailContextKey)).(string)
	if userID != "" {
		event.Actor = Actor{ID: userID, Email: userEmail, Type: ActorTypeUser}
	} else {
		event.Actor = Actor{ID: "system", Type: ActorTypeSystem}
	}

	if event.Context.IPAddress == "" {
		event.Context.IPAddress = utils.ClientIP(c)
	}
	if event.Context.UserAgent == "" {
		event.Context.UserAgent = c.Get(fiber.HeaderUserAgent)
	}
	if event.Context.RequestID == "" {
		event.Context.RequestID = c.Get(fiber.HeaderXRequestID)
	}
	if event.Event.Status == "" {
		event.Event.Status = StatusSuccess
	}
	event.Time = s.now().UTC()

	if err := s.sink.Write(event); err != nil {
		s.logger.Errorf("failed to emit audit event: %v", err)
	}
}

type logSink struct {
	logger *logrus.Logger
}

// NewLogSink writes audit events as structured log entries tagged audit=true.
func NewLogSink(logger *logrus.Logger) Sink {
	return &logSink{logger: logger}
}

func (l *logSink) Write(event Event) error {
	l.logger.WithFields(logrus.Fields{
		"audit":       true,
		"event_type":  event.Event.Type,
		"category":    event.Event.Category,
		"status":      event.Event.Status,
		"target_type": event.Target.Type,
		"target_id":   event.Target.ID,
		"actor_id":    event.Actor.ID,
		"actor_type":  event.Actor.Type,
		"ip":          event.Context.IPAddress,
		"request_id":  event.Context.RequestID,
	}).Info(event.Event.Description)
	return nil
}
