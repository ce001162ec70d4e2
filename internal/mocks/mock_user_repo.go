package mocks

import (
	"context"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

type MockUserRepo struct {
	domain.UserRepository
	GetByIDFunc func(ctx context.Context, id int) (*domain.User, error)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}
