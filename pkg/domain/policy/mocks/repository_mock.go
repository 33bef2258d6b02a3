package mocks

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/domain/policy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListApplicable(ctx context.Context, userID uuid.UUID) ([]policy.BotPolicy, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).([]policy.BotPolicy)
	return p, args.Error(1)
}

func (m *MockRepository) ListGlobal(ctx context.Context) ([]policy.BotPolicy, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]policy.BotPolicy)
	return p, args.Error(1)
}

func (m *MockRepository) Upsert(ctx context.Context, p *policy.BotPolicy) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID, userID *uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}
