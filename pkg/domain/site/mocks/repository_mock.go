package mocks

import (
	"context"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/domain/site"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, d *site.Domain) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*site.Domain, error) {
	args := m.Called(ctx, id, userID)
	d, _ := args.Get(0).(*site.Domain)
	return d, args.Error(1)
}

func (m *MockRepository) GetVerifiedByName(ctx context.Context, name string, userID uuid.UUID) (*site.Domain, error) {
	args := m.Called(ctx, name, userID)
	d, _ := args.Get(0).(*site.Domain)
	return d, args.Error(1)
}

func (m *MockRepository) ExistsForUser(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]site.Domain, error) {
	args := m.Called(ctx, userID)
	d, _ := args.Get(0).([]site.Domain)
	return d, args.Error(1)
}

func (m *MockRepository) ListWithOwners(ctx context.Context) ([]site.WithOwner, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).([]site.WithOwner)
	return d, args.Error(1)
}

func (m *MockRepository) MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockRepository) Count(ctx context.Context, verifiedOnly bool) (int64, error) {
	args := m.Called(ctx, verifiedOnly)
	return args.Get(0).(int64), args.Error(1)
}
