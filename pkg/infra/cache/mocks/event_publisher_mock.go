package mocks

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/event"
	"github.com/stretchr/testify/mock"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, ev event.Event) error {
	return m.Called(ctx, ev).Error(0)
}
