package mocks

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/app/ingest"
	"github.com/stretchr/testify/mock"
)

type MockIngestor struct {
	mock.Mock
}

func (m *MockIngestor) Ingest(ctx context.Context, ev ingest.Event) (*ingest.Result, error) {
	args := m.Called(ctx, ev)
	r, _ := args.Get(0).(*ingest.Result)
	return r, args.Error(1)
}
