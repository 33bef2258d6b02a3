package mocks

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/infra/httpx"
	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Get(ctx context.Context, url string) (*httpx.Response, error) {
	args := m.Called(ctx, url)
	resp, _ := args.Get(0).(*httpx.Response)
	return resp, args.Error(1)
}

func (m *MockClient) PostJSON(ctx context.Context, url string, body []byte) (*httpx.Response, error) {
	args := m.Called(ctx, url, body)
	resp, _ := args.Get(0).(*httpx.Response)
	return resp, args.Error(1)
}
