package mocks

import (
	"github.com/NeuralTrust/BotTracker/pkg/infra/auth/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockManager struct {
	mock.Mock
}

func (m *MockManager) CreateToken(userID uuid.UUID, email string, admin bool) (string, error) {
	args := m.Called(userID, email, admin)
	return args.String(0), args.Error(1)
}

func (m *MockManager) DecodeToken(tokenString string) (*jwt.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*jwt.Claims)
	return claims, args.Error(1)
}
