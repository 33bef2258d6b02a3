package mocks

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/domain/apikey"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, key *apikey.APIKey) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockRepository) GetByKey(ctx context.Context, key string) (*apikey.APIKey, error) {
	args := m.Called(ctx, key)
	k, _ := args.Get(0).(*apikey.APIKey)
	return k, args.Error(1)
}

func (m *MockRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*apikey.APIKey, error) {
	args := m.Called(ctx, id, userID)
	k, _ := args.Get(0).(*apikey.APIKey)
	return k, args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]apikey.APIKey, error) {
	args := m.Called(ctx, userID)
	keys, _ := args.Get(0).([]apikey.APIKey)
	return keys, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}
