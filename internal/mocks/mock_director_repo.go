package mocks

import (
	"context"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

type MockDirectorRepo struct {
	domain.DirectorRepository
	GetAllFunc  func(ctx context.Context) ([]*domain.Director, error)
	GetByIDFunc func(ctx context.Context, id int) (*domain.Director, error)
	CreateFunc  func(ctx context.Context, cmd domain.CreateDirectorCommand) (*domain.Director, error)
	UpdateFunc  func(ctx context.Context, id int, cmd domain.UpdateDirectorCommand) (*domain.Director, error)
	DeleteFunc  func(ctx context.Context, id int) error
}

func (m *MockDirectorRepo) GetAll(ctx context.Context) ([]*domain.Director, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockDirectorRepo) GetByID(ctx context.Context, id int) (*domain.Director, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockDirectorRepo) Create(ctx context.Context, cmd domain.CreateDirectorCommand) (*domain.Director, error) {
	return m.CreateFunc(ctx, cmd)
}

func (m *MockDirectorRepo) Update(ctx context.Context, id int, cmd domain.UpdateDirectorCommand) (*domain.Director, error) {
	return m.UpdateFunc(ctx, id, cmd)
}

func (m *MockDirectorRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
