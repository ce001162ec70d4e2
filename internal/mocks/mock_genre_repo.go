package mocks

import (
	"context"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

type MockGenreRepo struct {
	domain.GenreRepository
	GetAllFunc  func(ctx context.Context) ([]*domain.Genre, error)
	GetByIDFunc func(ctx context.Context, id int) (*domain.Genre, error)
	CreateFunc  func(ctx context.Context, name string) (*domain.Genre, error)
	UpdateFunc  func(ctx context.Context, id int, name string) (*domain.Genre, error)
	DeleteFunc  func(ctx context.Context, id int) error
}

func (m *MockGenreRepo) GetAll(ctx context.Context) ([]*domain.Genre, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockGenreRepo) GetByID(ctx context.Context, id int) (*domain.Genre, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockGenreRepo) Create(ctx context.Context, name string) (*domain.Genre, error) {
	return m.CreateFunc(ctx, name)
}

func (m *MockGenreRepo) Update(ctx context.Context, id int, name string) (*domain.Genre, error) {
	return m.UpdateFunc(ctx, id, name)
}

func (m *MockGenreRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
