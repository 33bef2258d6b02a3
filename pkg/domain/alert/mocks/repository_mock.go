package mocks

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/domain/alert"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, rule *alert.Rule) error {
	return m.Called(ctx, rule).Error(0)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]alert.Rule, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]alert.Rule)
	return r, args.Error(1)
}

func (m *MockRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]alert.Rule, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]alert.Rule)
	return r, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}
