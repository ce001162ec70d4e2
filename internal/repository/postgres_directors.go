package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

type PostgresDirectorRepository struct {
	db *pgxpool.Pool
}

func NewPostgresDirectorRepository(db *pgxpool.Pool) *PostgresDirectorRepository {
	return &PostgresDirectorRepository{
		db: db,
	}
}

func (p *PostgresDirectorRepository) GetAll(ctx context.Context) ([]*domain.Director, error) {
	query := `
		SELECT id, name, date_of_birth, nationality, created_at, updated_at, version
		FROM directors
		ORDER BY id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	directors := []*domain.Director{}

	for rows.Next() {
		var director domain.Director

		err := rows.Scan(
			&director.ID,
			&director.Name,
			&director.DateOfBirth,
			&director.Nationality,
			&director.CreatedAt,
			&director.UpdatedAt,
			&director.Version,
		)
		if err != nil {
			return nil, err
		}

		directors = append(directors, &director)
	}

	return directors, rows.Err()
}

func (p *PostgresDirectorRepository) GetByID(ctx context.Context, id int) (*domain.Director, error) {
	query := `
		SELECT id, name, date_of_birth, nationality, created_at, updated_at, version
		FROM directors
		WHERE id = $1`

	var director domain.Director

	err := p.db.QueryRow(ctx, query, id).Scan(
		&director.ID,
		&director.Name,
		&director.DateOfBirth,
		&director.Nationality,
		&director.CreatedAt,
		&director.UpdatedAt,
		&director.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.DirectorNotFoundError{ID: id}
		}
		return nil, err
	}

	return &director, nil
}

func (p *PostgresDirectorRepository) Create(ctx context.Context, cmd domain.CreateDirectorCommand) (*domain.Director, error) {
	query := `
		INSERT INTO directors (name, date_of_birth, nationality)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at, version`

	director := domain.Director{
		Name:        cmd.Name,
		DateOfBirth: cmd.DateOfBirth,
		Nationality: cmd.Nationality,
	}

	err := p.db.QueryRow(ctx, query, cmd.Name, cmd.DateOfBirth, cmd.Nationality).Scan(
		&director.ID,
		&director.CreatedAt,
		&director.UpdatedAt,
		&director.Version,
	)
	if err != nil {
		return nil, err
	}

	return &director, nil
}

func (p *PostgresDirectorRepository) Update(ctx context.Context, id int, cmd domain.UpdateDirectorCommand) (*domain.Director, error) {
	query := `
		UPDATE directors
		SET name = COALESCE($1, name),
			date_of_birth = COALESCE($2, date_of_birth),
			nationality = COALESCE($3, nationality),
			updated_at = now(),
			version = version + 1
		WHERE id = $4
		RETURNING id, name, date_of_birth, nationality, created_at, updated_at, version`

	var director domain.Director

	err := p.db.QueryRow(ctx, query, cmd.Name, cmd.DateOfBirth, cmd.Nationality, id).Scan(
		&director.ID,
		&director.Name,
		&director.DateOfBirth,
		&director.Nationality,
		&director.CreatedAt,
		&director.UpdatedAt,
		&director.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.DirectorNotFoundError{ID: id}
		}
		return nil, err
	}

	return &director, nil
}

func (p *PostgresDirectorRepository) Delete(ctx context.Context, id int) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM directors WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.DirectorNotFoundError{ID: id}
	}

	return nil
}
