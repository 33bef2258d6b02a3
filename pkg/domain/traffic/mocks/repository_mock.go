package mocks

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/domain/traffic"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, log *traffic.Log) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockRepository) Count(ctx context.Context, filter traffic.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter traffic.Filter) ([]traffic.Log, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]traffic.Log)
	return logs, args.Error(1)
}

func (m *MockRepository) Summarize(ctx context.Context, filter traffic.Filter) (*traffic.Summary, error) {
	args := m.Called(ctx, filter)
	s, _ := args.Get(0).(*traffic.Summary)
	return s, args.Error(1)
}

func (m *MockRepository) TopBots(ctx context.Context, filter traffic.Filter, limit int) ([]traffic.BotCount, error) {
	args := m.Called(ctx, filter, limit)
	b, _ := args.Get(0).([]traffic.BotCount)
	return b, args.Error(1)
}

func (m *MockRepository) Distribution(ctx context.Context, filter traffic.Filter, column string) (map[string]int64, error) {
	args := m.Called(ctx, filter, column)
	d, _ := args.Get(0).(map[string]int64)
	return d, args.Error(1)
}
