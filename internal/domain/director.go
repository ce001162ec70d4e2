package domain

import (
	"context"
	"time"
)

type Director struct {
	ID          int
	Name        string
	DateOfBirth time.Time
	Nationality string

	Audit
}

type CreateDirectorCommand struct {
	Name        string
	DateOfBirth time.Time
	Nationality string
}

type UpdateDirectorCommand struct {
	Name        *string
	DateOfBirth *time.Time
	Nationality *string
}

type DirectorRepository interface {
	GetAll(ctx context.Context) ([]*Director, error)
	GetByID(ctx context.Context, id int) (*Director, error)
	Create(ctx context.Context, cmd CreateDirectorCommand) (*Director, error)
	Update(ctx context.Context, id int, cmd UpdateDirectorCommand) (*Director, error)
	Delete(ctx context.Context, id int) error
}
