package domain

import "context"

type Genre struct {
	ID   int
	Name string

	Audit
}

type GenreRepository interface {
	GetAll(ctx context.Context) ([]*Genre, error)
	GetByID(ctx context.Context, id int) (*Genre, error)
	Create(ctx context.Context, name string) (*Genre, error)
	Update(ctx context.Context, id int, name string) (*Genre, error)
	Delete(ctx context.Context, id int) error
}
