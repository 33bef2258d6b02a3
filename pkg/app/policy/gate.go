package policy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NeuralTrust/BotTracker/pkg/common"
	domain "github.com/NeuralTrust/BotTracker/pkg/domain/policy"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrInvalidCacheType = errors.New("invalid type assertion for bot policies")

// Gate decides whether a detected bot is blocked for a tenant. A tenant policy
// for the bot wins over a global one; with neither the bot is allowed.
type Gate interface {
	IsBlocked(ctx context.Context, tenantID uuid.UUID, botName string) (bool, error)
}

type gate struct {
	logger      *logrus.Logger
	repo        domain.Repository
	cache       cache.Client
	memoryCache *cache.TTLMap
}

func NewGate(logger *logrus.Logger, repo domain.Repository, c cache.Client) Gate {
	memoryCache := c.GetTTLMap(cache.BotPolicyTTLName)
	if memoryCache == nil {
		memoryCache = c.CreateTTLMap(cache.BotPolicyTTLName, common.BotPolicyCacheTTL)
	}
	return &gate{
		logger:      logger,
		repo:        repo,
		cache:       c,
		memoryCache: memoryCache,
	}
}

func (g *gate) IsBlocked(ctx context.Context, tenantID uuid.UUID, botName string) (bool, error) {
	botName = strings.TrimSpace(botName)
	if botName == "" {
		return false, nil
	}
	policies, err := g.policies(ctx, tenantID)
	if err != nil {
		return false, err
	}
	action, ok := Resolve(policies, botName)
	return ok && action == domain.ActionBlock, nil
}

// Resolve returns the action that applies to botName, tenant policies first.
func Resolve(policies []domain.BotPolicy, botName string) (domain.Action, bool) {
	var global *domain.BotPolicy
	for i := range policies {
		p := &policies[i]
		if !strings.EqualFold(p.BotName, botName) {
			continue
		}
		if !p.IsGlobal() {
			return p.Action, true
		}
		if global == nil {
			global = p
		}
	}
	if global != nil {
		return global.Action, true
	}
	return "", false
}

func (g *gate) policies(ctx context.Context, tenantID uuid.UUID) ([]domain.BotPolicy, error) {
	key := tenantID.String()
	if cached, found := g.memoryCache.Get(key); found {
		if policies, ok := cached.([]domain.BotPolicy); ok {
			return policies, nil
		}
		g.logger.WithError(ErrInvalidCacheType).Debug("memory cache read bot policies failure")
	}

	if policies, err := g.cache.GetBotPolicies(ctx, tenantID); err == nil {
		g.memoryCache.Set(key, policies)
		return policies, nil
	} else if !cache.IsMiss(err) {
		g.logger.WithError(err).Warn("distributed cache read bot policies failure")
	}

	policies, err := g.repo.ListApplicable(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bot policies: %w", err)
	}
	if policies == nil {
		policies = []domain.BotPolicy{}
	}
	g.memoryCache.Set(key, policies)
	if err := g.cache.SaveBotPolicies(ctx, tenantID, policies, common.BotPolicyCacheTTL); err != nil {
		g.logger.WithError(err).Warn("failed to save bot policies to distributed cache")
	}
	return policies, nil
}
