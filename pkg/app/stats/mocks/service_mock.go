package mocks

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/app/stats"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) TenantStats(ctx context.Context, userID uuid.UUID, domainID *uuid.UUID, days int) (*stats.TenantStats, error) {
	args := m.Called(ctx, userID, domainID, days)
	s, _ := args.Get(0).(*stats.TenantStats)
	return s, args.Error(1)
}

func (m *MockService) AdminStats(ctx context.Context) (*stats.AdminStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*stats.AdminStats)
	return s, args.Error(1)
}

func (m *MockService) UserActivity(ctx context.Context, userID uuid.UUID) (*stats.UserActivity, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*stats.UserActivity)
	return s, args.Error(1)
}
