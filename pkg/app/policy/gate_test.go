package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/NeuralTrust/BotTracker/pkg/common"
	domain "github.com/NeuralTrust/BotTracker/pkg/domain/policy"
	repoMocks "github.com/NeuralTrust/BotTracker/pkg/domain/policy/mocks"
	cacheMocks "github.com/NeuralTrust/BotTracker/pkg/infra/cache/mocks"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func tenantPolicy(tenant uuid.UUID, bot string, action domain.Action) domain.BotPolicy {
	return domain.BotPolicy{ID: uuid.New(), UserID: &tenant, BotName: bot, Action: action}
}

func globalPolicy(bot string, action domain.Action) domain.BotPolicy {
	return domain.BotPolicy{ID: uuid.New(), BotName: bot, Action: action}
}

func TestResolve(t *testing.T) {
	tenant := uuid.New()
	tests := []struct {
		name     string
		policies []domain.BotPolicy
		bot      string
		want     domain.Action
		found    bool
	}{
		{"no policies", nil, "GPTBot", "", false},
		{"global block", []domain.BotPolicy{globalPolicy("GPTBot", domain.ActionBlock)}, "GPTBot", domain.ActionBlock, true},
		{
			"tenant overrides global",
			[]domain.BotPolicy{globalPolicy("GPTBot", domain.ActionBlock), tenantPolicy(tenant, "GPTBot", domain.ActionAllow)},
			"GPTBot", domain.ActionAllow, true,
		},
		{"case insensitive", []domain.BotPolicy{tenantPolicy(tenant, "gptbot", domain.ActionBlock)}, "GPTBot", domain.ActionBlock, true},
		{"other bot", []domain.BotPolicy{tenantPolicy(tenant, "CCBot", domain.ActionBlock)}, "GPTBot", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.policies, tt.bot)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGate_LoadsFromRepositoryAndCaches(t *testing.T) {
	tenant := uuid.New()
	repo := new(repoMocks.MockRepository)
	c := cacheMocks.NewMockClient()
	policies := []domain.BotPolicy{tenantPolicy(tenant, "GPTBot", domain.ActionBlock)}

	c.On("GetBotPolicies", mock.Anything, tenant).Return(nil, redis.Nil).Once()
	repo.On("ListApplicable", mock.Anything, tenant).Return(policies, nil).Once()
	c.On("SaveBotPolicies", mock.Anything, tenant, policies, common.BotPolicyCacheTTL).Return(nil).Once()

	g := NewGate(logrus.New(), repo, c)
	blocked, err := g.IsBlocked(context.Background(), tenant, "GPTBot")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = g.IsBlocked(context.Background(), tenant, "ClaudeBot")
	require.NoError(t, err)
	assert.False(t, blocked)

	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestGate_DistributedCacheHit(t *testing.T) {
	tenant := uuid.New()
	repo := new(repoMocks.MockRepository)
	c := cacheMocks.NewMockClient()
	c.On("GetBotPolicies", mock.Anything, tenant).
		Return([]domain.BotPolicy{globalPolicy("CCBot", domain.ActionBlock)}, nil)

	g := NewGate(logrus.New(), repo, c)
	blocked, err := g.IsBlocked(context.Background(), tenant, "CCBot")
	require.NoError(t, err)
	assert.True(t, blocked)
	repo.AssertNotCalled(t, "ListApplicable", mock.Anything, mock.Anything)
}

func TestGate_EmptyBotNameNeverBlocked(t *testing.T) {
	g := NewGate(logrus.New(), new(repoMocks.MockRepository), cacheMocks.NewMockClient())
	blocked, err := g.IsBlocked(context.Background(), uuid.New(), " ")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestGate_RepositoryError(t *testing.T) {
	tenant := uuid.New()
	repo := new(repoMocks.MockRepository)
	c := cacheMocks.NewMockClient()
	c.On("GetBotPolicies", mock.Anything, tenant).Return(nil, errors.New("redis down"))
	repo.On("ListApplicable", mock.Anything, tenant).Return(nil, errors.New("db down"))

	_, err := NewGate(logrus.New(), repo, c).IsBlocked(context.Background(), tenant, "GPTBot")
	assert.ErrorContains(t, err, "db down")
}
