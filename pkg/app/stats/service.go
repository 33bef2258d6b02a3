package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/domain/apikey"
	"github.com/NeuralTrust/BotTracker/pkg/domain/site"
	"github.com/NeuralTrust/BotTracker/pkg/domain/traffic"
	"github.com/NeuralTrust/BotTracker/pkg/domain/user"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultDays = 7
	MaxDays     = 365

	topBotsLimit        = 10
	recentActivityLimit = 10
	adminRecentLimit    = 50
	userActivityLimit   = 100
)

type TenantStats struct {
	TotalRequests        int64              `json:"total_requests"`
	BotRequests          int64              `json:"bot_requests"`
	UniqueIPs            int64              `json:"unique_ips"`
	TopBots              []traffic.BotCount `json:"top_bots"`
	RiskDistribution     map[string]int64   `json:"risk_distribution"`
	BehaviorDistribution map[string]int64   `json:"behavior_distribution"`
	RecentActivity       []traffic.Log      `json:"recent_activity"`
}

type AdminStats struct {
	TotalUsers      int64         `json:"total_users"`
	TotalDomains    int64         `json:"total_domains"`
	VerifiedDomains int64         `json:"verified_domains"`
	TotalLogs       int64         `json:"total_logs"`
	BotDetections   int64         `json:"bot_detections"`
	RecentActivity  []traffic.Log `json:"recent_activity"`
}

type UserActivity struct {
	User       *user.User      `json:"user"`
	Domains    []site.Domain   `json:"domains"`
	RecentLogs []traffic.Log   `json:"recent_logs"`
	APIKeys    []apikey.APIKey `json:"api_keys"`
}

type Service interface {
	TenantStats(ctx context.Context, userID uuid.UUID, domainID *uuid.UUID, days int) (*TenantStats, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
	UserActivity(ctx context.Context, userID uuid.UUID) (*UserActivity, error)
}

type service struct {
	users   user.Repository
	domains site.Repository
	keys    apikey.Repository
	traffic traffic.Repository
	now     func() time.Time
}

func NewService(
	users user.Repository,
	domains site.Repository,
	keys apikey.Repository,
	trafficRepo traffic.Repository,
) Service {
	return &service{
		users:   users,
		domains: domains,
		keys:    keys,
		traffic: trafficRepo,
		now:     time.Now,
	}
}

// ClampDays keeps the stats window between one day and a year.
func ClampDays(days int) int {
	switch {
	case days <= 0:
		return DefaultDays
	case days > MaxDays:
		return MaxDays
	default:
		return days
	}
}

func (s *service) TenantStats(ctx context.Context, userID uuid.UUID, domainID *uuid.UUID, days int) (*TenantStats, error) {
	since := s.now().UTC().AddDate(0, 0, -ClampDays(days))
	filter := traffic.Filter{UserID: &userID, DomainID: domainID, Since: &since}
	out := &TenantStats{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.traffic.Summarize(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to summarize traffic: %w", err)
		}
		out.TotalRequests = summary.TotalRequests
		out.BotRequests = summary.BotRequests
		out.UniqueIPs = summary.UniqueIPs
		return nil
	})
	g.Go(func() error {
		bots, err := s.traffic.TopBots(gctx, filter, topBotsLimit)
		if err != nil {
			return fmt.Errorf("failed to rank bots: %w", err)
		}
		out.TopBots = bots
		return nil
	})
	g.Go(func() error {
		dist, err := s.traffic.Distribution(gctx, filter, "risk_level")
		if err != nil {
			return fmt.Errorf("failed to compute risk distribution: %w", err)
		}
		out.RiskDistribution = dist
		return nil
	})
	g.Go(func() error {
		dist, err := s.traffic.Distribution(gctx, filter, "behavior_label")
		if err != nil {
			return fmt.Errorf("failed to compute behavior distribution: %w", err)
		}
		out.BehaviorDistribution = dist
		return nil
	})
	g.Go(func() error {
		recent := filter
		recent.Limit = recentActivityLimit
		logs, err := s.traffic.List(gctx, recent)
		if err != nil {
			return fmt.Errorf("failed to list recent traffic: %w", err)
		}
		out.RecentActivity = logs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	normalizeTenant(out)
	return out, nil
}

func normalizeTenant(s *TenantStats) {
	if s.TopBots == nil {
		s.TopBots = []traffic.BotCount{}
	}
	if s.RiskDistribution == nil {
		s.RiskDistribution = map[string]int64{}
	}
	if s.BehaviorDistribution == nil {
		s.BehaviorDistribution = map[string]int64{}
	}
	if s.RecentActivity == nil {
		s.RecentActivity = []traffic.Log{}
	}
}

func (s *service) AdminStats(ctx context.Context) (*AdminStats, error) {
	out := &AdminStats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalUsers, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.TotalDomains, err = s.domains.Count(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		out.VerifiedDomains, err = s.domains.Count(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		out.TotalLogs, err = s.traffic.Count(gctx, traffic.Filter{})
		return err
	})
	g.Go(func() (err error) {
		out.BotDetections, err = s.traffic.Count(gctx, traffic.Filter{BotsOnly: true})
		return err
	})
	g.Go(func() (err error) {
		out.RecentActivity, err = s.traffic.List(gctx, traffic.Filter{Limit: adminRecentLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build admin stats: %w", err)
	}
	if out.RecentActivity == nil {
		out.RecentActivity = []traffic.Log{}
	}
	return out, nil
}

// UserActivity fails with the repository's NotFoundError for an unknown user.
func (s *service) UserActivity(ctx context.Context, userID uuid.UUID) (*UserActivity, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &UserActivity{User: u}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Domains, err = s.domains.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		out.RecentLogs, err = s.traffic.List(gctx, traffic.Filter{UserID: &userID, Limit: userActivityLimit})
		return err
	})
	g.Go(func() (err error) {
		out.APIKeys, err = s.keys.ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load user activity: %w", err)
	}
	if out.Domains == nil {
		out.Domains = []site.Domain{}
	}
	if out.RecentLogs == nil {
		out.RecentLogs = []traffic.Log{}
	}
	if out.APIKeys == nil {
		out.APIKeys = []apikey.APIKey{}
	}
	return out, nil
}
