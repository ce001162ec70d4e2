package mocks

import (
	"context"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

type MockLikeRepo struct {
	domain.LikeRepository
	ToggleFunc            func(ctx context.Context, movieID, userID int, isLike bool) (*bool, error)
	GetStatusesFunc       func(ctx context.Context, movieIDs []int, userID int) (map[int]bool, error)
	RecalculateCountsFunc func(ctx context.Context) error
}

func (m *MockLikeRepo) Toggle(ctx context.Context, movieID, userID int, isLike bool) (*bool, error) {
	return m.ToggleFunc(ctx, movieID, userID, isLike)
}

func (m *MockLikeRepo) GetStatuses(ctx context.Context, movieIDs []int, userID int) (map[int]bool, error) {
	return m.GetStatusesFunc(ctx, movieIDs, userID)
}

func (m *MockLikeRepo) RecalculateCounts(ctx context.Context) error {
	return m.RecalculateCountsFunc(ctx)
}
