package mocks

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/domain/blog"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, post *blog.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, post *blog.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*blog.Post)
	return p, args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(*blog.Post)
	return p, args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, publishedOnly bool) ([]blog.Post, error) {
	args := m.Called(ctx, publishedOnly)
	p, _ := args.Get(0).([]blog.Post)
	return p, args.Error(1)
}
