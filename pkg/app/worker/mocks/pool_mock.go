package mocks

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/app/worker"
	"github.com/stretchr/testify/mock"
)

// MockPool runs enqueued tasks inline so tests can assert their effects.
type MockPool struct {
	mock.Mock
}

func (m *MockPool) StartWorkers(n int) {
	m.Called(n)
}

func (m *MockPool) Enqueue(kind string, task worker.Task) bool {
	args := m.Called(kind, task)
	ok := args.Bool(0)
	if ok {
		task(context.Background())
	}
	return ok
}

func (m *MockPool) Shutdown() {
	m.Called()
}
