package mocks

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/app/auth"
	"github.com/NeuralTrust/BotTracker/pkg/domain/user"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, plain string) (*auth.Session, error) {
	args := m.Called(ctx, email, plain)
	s, _ := args.Get(0).(*auth.Session)
	return s, args.Error(1)
}

func (m *MockService) Login(ctx context.Context, email, plain string) (*auth.Session, error) {
	args := m.Called(ctx, email, plain)
	s, _ := args.Get(0).(*auth.Session)
	return s, args.Error(1)
}

func (m *MockService) EnsureSuperAdmin(ctx context.Context, email, plain string) (*user.User, bool, error) {
	args := m.Called(ctx, email, plain)
	u, _ := args.Get(0).(*user.User)
	return u, args.Bool(1), args.Error(2)
}
