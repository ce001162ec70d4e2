package mocks

import (
	"context"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	GetAllFunc    func(ctx context.Context, filters domain.MovieFilters) (*domain.MoviePage, error)
	GetByIDFunc   func(ctx context.Context, id int) (*domain.Movie, error)
	GetRecentFunc func(ctx context.Context, limit int) ([]*domain.Movie, error)
	CreateFunc    func(ctx context.Context, cmd domain.CreateMovieCommand) (*domain.Movie, error)
	UpdateFunc    func(ctx context.Context, id int, cmd domain.UpdateMovieCommand) (*domain.Movie, error)
	DeleteFunc    func(ctx context.Context, id int) (int, error)
}

func (m *MockMovieRepo) GetAll(ctx context.Context, filters domain.MovieFilters) (*domain.MoviePage, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *MockMovieRepo) GetByID(ctx context.Context, id int) (*domain.Movie, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockMovieRepo) GetRecent(ctx context.Context, limit int) ([]*domain.Movie, error) {
	return m.GetRecentFunc(ctx, limit)
}

func (m *MockMovieRepo) Create(ctx context.Context, cmd domain.CreateMovieCommand) (*domain.Movie, error) {
	return m.CreateFunc(ctx, cmd)
}

func (m *MockMovieRepo) Update(ctx context.Context, id int, cmd domain.UpdateMovieCommand) (*domain.Movie, error) {
	return m.UpdateFunc(ctx, id, cmd)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id int) (int, error) {
	return m.DeleteFunc(ctx, id)
}
