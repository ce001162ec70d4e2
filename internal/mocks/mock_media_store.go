package mocks

import (
	"context"

	"github.com/cinelist/movie-catalog-service/internal/media"
)

type MockMediaStore struct {
	media.Store
	MoveToPermanentFunc    func(ctx context.Context, fileName string) error
	CreateUploadTargetFunc func(ctx context.Context) (*media.UploadTarget, error)
}

func (m *MockMediaStore) MoveToPermanent(ctx context.Context, fileName string) error {
	return m.MoveToPermanentFunc(ctx, fileName)
}

func (m *MockMediaStore) CreateUploadTarget(ctx context.Context) (*media.UploadTarget, error) {
	return m.CreateUploadTargetFunc(ctx)
}
