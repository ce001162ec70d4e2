package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

type PostgresGenreRepository struct {
	db *pgxpool.Pool
}

func NewPostgresGenreRepository(db *pgxpool.Pool) *PostgresGenreRepository {
	return &PostgresGenreRepository{
		db: db,
	}
}

func (p *PostgresGenreRepository) GetAll(ctx context.Context) ([]*domain.Genre, error) {
	query := `
		SELECT id, name, created_at, updated_at, version
		FROM genres
		ORDER BY id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []*domain.Genre{}

	for rows.Next() {
		var genre domain.Genre

		err := rows.Scan(&genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt, &genre.Version)
		if err != nil {
			return nil, err
		}

		genres = append(genres, &genre)
	}

	return genres, rows.Err()
}

func (p *PostgresGenreRepository) GetByID(ctx context.Context, id int) (*domain.Genre, error) {
	query := `
		SELECT id, name, created_at, updated_at, version
		FROM genres
		WHERE id = $1`

	var genre domain.Genre

	err := p.db.QueryRow(ctx, query, id).Scan(
		&genre.ID,
		&genre.Name,
		&genre.CreatedAt,
		&genre.UpdatedAt,
		&genre.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.GenreNotFoundError{MissingIDs: []int{id}}
		}
		return nil, err
	}

	return &genre, nil
}

func (p *PostgresGenreRepository) Create(ctx context.Context, name string) (*domain.Genre, error) {
	query := `
		INSERT INTO genres (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at, version`

	genre := domain.Genre{Name: name}

	err := p.db.QueryRow(ctx, query, name).Scan(
		&genre.ID,
		&genre.CreatedAt,
		&genre.UpdatedAt,
		&genre.Version,
	)
	if err != nil {
		return nil, mapGenreInsertError(err)
	}

	return &genre, nil
}

func (p *PostgresGenreRepository) Update(ctx context.Context, id int, name string) (*domain.Genre, error) {
	query := `
		UPDATE genres
		SET name = $1, updated_at = now(), version = version + 1
		WHERE id = $2
		RETURNING id, name, created_at, updated_at, version`

	var genre domain.Genre

	err := p.db.QueryRow(ctx, query, name, id).Scan(
		&genre.ID,
		&genre.Name,
		&genre.CreatedAt,
		&genre.UpdatedAt,
		&genre.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.GenreNotFoundError{MissingIDs: []int{id}}
		}
		return nil, mapGenreInsertError(err)
	}

	return &genre, nil
}

func (p *PostgresGenreRepository) Delete(ctx context.Context, id int) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.GenreNotFoundError{MissingIDs: []int{id}}
	}

	return nil
}

func mapGenreInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return domain.ErrGenreAlreadyExists
	}

	return err
}
