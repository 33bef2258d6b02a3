package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/domain/alert"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/NeuralTrust/BotTracker/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
)

type webhookPayload struct {
	Event       string    `json:"event"`
	Message     string    `json:"message"`
	RuleID      string    `json:"rule_id"`
	TenantID    string    `json:"tenant_id"`
	DomainID    string    `json:"domain_id"`
	Count       int64     `json:"count"`
	Threshold   int       `json:"threshold"`
	WindowSecs  int64     `json:"window_seconds"`
	TriggeredAt time.Time `json:"triggered_at"`
}

// breakerIdleTTL is how long a destination host keeps its breaker after the
// last notification sent to it.
const breakerIdleTTL = time.Hour

// webhookNotifier POSTs JSON to the rule destination. Each destination host
// gets its own circuit breaker so one dead endpoint does not trip others.
type webhookNotifier struct {
	logger      *logrus.Logger
	client      httpx.Client
	timeout     time.Duration
	maxFailures uint32
	breakers    *cache.TTLMap
}

func NewWebhookNotifier(logger *logrus.Logger, client httpx.Client, timeout time.Duration, maxFailures uint32) Notifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &webhookNotifier{
		logger:      logger,
		client:      client,
		timeout:     timeout,
		maxFailures: maxFailures,
		breakers:    cache.NewTTLMap(breakerIdleTTL),
	}
}

func (w *webhookNotifier) Notify(ctx context.Context, n alert.Notification) error {
	u, err := url.Parse(n.Destination)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid webhook url %q", n.Destination)
	}
	body, err := json.Marshal(webhookPayload{
		Event:       "bot_threshold_exceeded",
		Message:     summary(n),
		RuleID:      n.RuleID.String(),
		TenantID:    n.TenantID.String(),
		DomainID:    n.DomainID.String(),
		Count:       n.Count,
		Threshold:   n.Threshold,
		WindowSecs:  int64(n.Window.Seconds()),
		TriggeredAt: n.TriggeredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	return w.breakerFor(u.Host).Execute(func() error {
		resp, err := w.client.PostJSON(ctx, n.Destination, body)
		if err != nil {
			return fmt.Errorf("webhook request failed: %w", err)
		}
		if resp.StatusCode >= 300 {
			return fmt.Errorf("webhook request failed with status %d", resp.StatusCode)
		}
		return nil
	})
}

// breakerFor returns the host's breaker and refreshes its expiry. Idle hosts
// are purged whenever a new one is added.
func (w *webhookNotifier) breakerFor(host string) httpx.CircuitBreaker {
	if v, ok := w.breakers.Get(host); ok {
		if b, ok := v.(httpx.CircuitBreaker); ok {
			w.breakers.Set(host, b)
			return b
		}
	}
	w.breakers.Purge()
	b := httpx.NewCircuitBreaker("webhook:"+host, time.Minute, w.maxFailures, w.logger)
	w.breakers.Set(host, b)
	return b
}
