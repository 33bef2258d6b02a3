package websocket

import (
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/common"
	"github.com/NeuralTrust/BotTracker/pkg/domain/traffic"
	"github.com/NeuralTrust/BotTracker/pkg/infra/prometheus"
	infraWebsocket "github.com/NeuralTrust/BotTracker/pkg/infra/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	MessageTypeConnected = "connected"
	MessageTypeTraffic   = "traffic"
)

type Message struct {
	Type string       `json:"type"`
	Data *traffic.Log `json:"data,omitempty"`
}

// Feed is the part of the hub the handler needs.
type Feed interface {
	Subscribe(userID uuid.UUID) *infraWebsocket.Subscription
	Unsubscribe(sub *infraWebsocket.Subscription)
}

type frameWriter interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
}

type liveTrafficHandler struct {
	logger *logrus.Logger
	feed   Feed
}

func NewLiveTrafficHandler(logger *logrus.Logger, feed Feed) Handler {
	return &liveTrafficHandler{
		logger: logger,
		feed:   feed,
	}
}

// Handle streams the authenticated tenant's new traffic logs until the
// client disconnects. Inbound frames are read only to process control frames.
func (h *liveTrafficHandler) Handle(c *websocket.Conn) {
	if semaphore, ok := c.Locals(string(common.WsSemaphoreContextKey)).(*infraWebsocket.Semaphore); ok {
		defer semaphore.Release()
	}
	prometheus.LiveFeedConnections.Inc()
	defer prometheus.LiveFeedConnections.Dec()

	raw, _ := c.Locals(string(common.UserIDContextKey)).(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		h.logger.WithError(err).Warn("live feed connection without user")
		_ = c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "authentication required"))
		return
	}

	sub := h.feed.Subscribe(userID)
	defer h.feed.Unsubscribe(sub)

	log := h.logger.WithField("user_id", userID)
	log.Debug("live feed connected")

	if err := c.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.WithError(err).Error("failed to set read deadline")
		return
	}
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.WithError(err).Debug("live feed read failed")
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if err := stream(c, sub.C, ticker.C, done); err != nil {
		log.WithError(err).Debug("live feed write failed")
	}
	log.WithField("dropped", sub.Dropped()).Debug("live feed disconnected")
}

// stream writes a connected message, then every log from logs and a ping on
// every tick, until done closes, logs closes or a write fails.
func stream(w frameWriter, logs <-chan traffic.Log, ticks <-chan time.Time, done <-chan struct{}) error {
	if err := writeJSON(w, Message{Type: MessageTypeConnected}); err != nil {
		return err
	}
	for {
		select {
		case <-done:
			return nil
		case entry, ok := <-logs:
			if !ok {
				return nil
			}
			if err := writeJSON(w, Message{Type: MessageTypeTraffic, Data: &entry}); err != nil {
				return err
			}
		case <-ticks:
			if err := w.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := w.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

func writeJSON(w frameWriter, msg Message) error {
	if err := w.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return w.WriteJSON(msg)
}
