package mocks

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/app/verification"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) VerifyDomain(ctx context.Context, domainID, userID uuid.UUID) (*verification.Outcome, error) {
	args := m.Called(ctx, domainID, userID)
	o, _ := args.Get(0).(*verification.Outcome)
	return o, args.Error(1)
}
