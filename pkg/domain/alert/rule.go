package alert

import (
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeEmail   Type = "email"
	TypeWebhook Type = "webhook"
	TypeLog     Type = "log"

	DefaultThreshold = 10
)

var (
	ErrInvalidType        = errors.New("invalid alert_type: must be 'email', 'webhook' or 'log'")
	ErrInvalidDestination = errors.New("invalid destination for alert type")
	ErrInvalidThreshold   = errors.New("threshold must be greater than zero")
)

// Rule fires when a tenant's bot detections over the trailing hour reach Threshold.
type Rule struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	AlertType   Type      `json:"alert_type"`
	Destination string    `json:"destination"`
	Threshold   int       `json:"threshold"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func New(userID uuid.UUID, alertType, destination string, threshold int) (*Rule, error) {
	t := Type(strings.ToLower(strings.TrimSpace(alertType)))
	destination = strings.TrimSpace(destination)
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold < 0 {
		return nil, ErrInvalidThreshold
	}
	if err := validateDestination(t, destination); err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	return &Rule{
		ID:          id,
		UserID:      userID,
		AlertType:   t,
		Destination: destination,
		Threshold:   threshold,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func validateDestination(t Type, destination string) error {
	switch t {
	case TypeEmail:
		if _, err := mail.ParseAddress(destination); err != nil {
			return ErrInvalidDestination
		}
	case TypeWebhook:
		u, err := url.Parse(destination)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidDestination
		}
	case TypeLog:
	default:
		return ErrInvalidType
	}
	return nil
}

func (Rule) TableName() string {
	return "public.alert_rules"
}

// Notification is what a Notifier delivers when a rule's threshold is met.
type Notification struct {
	RuleID      uuid.UUID     `json:"rule_id"`
	TenantID    uuid.UUID     `json:"tenant_id"`
	DomainID    uuid.UUID     `json:"domain_id"`
	Type        Type          `json:"alert_type"`
	Destination string        `json:"destination"`
	Threshold   int           `json:"threshold"`
	Count       int64         `json:"count"`
	Window      time.Duration `json:"-"`
	TriggeredAt time.Time     `json:"triggered_at"`
}
