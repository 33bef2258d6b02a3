package mocks

import (
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Emit(c *fiber.Ctx, event auditlogs.Event) {
	m.Called(c, event)
}
