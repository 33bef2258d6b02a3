package traffic

import (
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/domain"
	"github.com/google/uuid"
)

// Log is one classified traffic event. Rows are append-only.
type Log struct {
	ID              uuid.UUID               `json:"id" gorm:"type:uuid;primaryKey"`
	DomainID        uuid.UUID               `json:"domain_id" gorm:"type:uuid;index"`
	UserID          uuid.UUID               `json:"user_id" gorm:"type:uuid;index"`
	IPAddress       string                  `json:"ip_address"`
	UserAgent       string                  `json:"user_agent"`
	DetectedBot     *string                 `json:"detected_bot"`
	BotProvider     *string                 `json:"bot_provider"`
	ConfidenceScore float64                 `json:"confidence_score"`
	RiskLevel       string                  `json:"risk_level"`
	BehaviorLabel   string                  `json:"behavior_label"`
	Fingerprint     *string                 `json:"fingerprint,omitempty"`
	GeoLocation     *domain.GeoLocationJSON `json:"geo_location" gorm:"type:jsonb"`
	Device          string                  `json:"device,omitempty"`
	OS              string                  `json:"os,omitempty"`
	Browser         string                  `json:"browser,omitempty"`
	RequestPath     string                  `json:"request_path"`
	RequestMethod   string                  `json:"request_method"`
	Timestamp       time.Time               `json:"timestamp" gorm:"index"`
}

func (l Log) IsBot() bool {
	return l.DetectedBot != nil
}

func (Log) TableName() string {
	return "public.traffic_logs"
}

// Filter scopes log queries. Zero values mean "no constraint".
type Filter struct {
	UserID   *uuid.UUID
	DomainID *uuid.UUID
	Since    *time.Time
	BotsOnly bool
	Limit    int
}

type BotCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type Summary struct {
	TotalRequests int64 `json:"total_requests"`
	BotRequests   int64 `json:"bot_requests"`
	UniqueIPs     int64 `json:"unique_ips"`
}
