package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelist/movie-catalog-service/internal/domain"
	"github.com/cinelist/movie-catalog-service/internal/media"
	"github.com/cinelist/movie-catalog-service/internal/pagination"
)

// PostgresMovieRepository implements the movie aggregate's read and write
// paths. Every write runs as one transaction: reference checks first, then
// the dependent inserts/updates, then file relocation, then the genre links.
// Relocation happens before commit so a storage failure rolls the rows back;
// the reverse failure mode (rows rolled back, file already moved) only leaves
// a stray file for the sweeper, never an orphaned row.
type PostgresMovieRepository struct {
	db    *pgxpool.Pool
	media media.Store
}

func NewPostgresMovieRepository(db *pgxpool.Pool, mediaStore media.Store) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db:    db,
		media: mediaStore,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) (*domain.MoviePage, error) {
	spec, cursor, err := pagination.Resolve(filters.Cursor, filters.Order, domain.MovieSortColumns)
	if err != nil {
		return nil, err
	}

	keyset, err := pagination.Compose(spec, cursor, filters.Take, "m", 1)
	if err != nil {
		return nil, err
	}

	cursorCond := ""
	if keyset.Where != "" {
		cursorCond = " AND " + keyset.Where
	}

	args := make([]any, 0, len(keyset.Args)+2)
	args = append(args, filters.Title)
	args = append(args, keyset.Args...)
	args = append(args, keyset.Limit)

	query := fmt.Sprintf(`
		SELECT count(*) OVER(),
			m.id, m.title, m.director_id, m.creator_id,
			m.like_count, m.dislike_count, m.movie_file_path,
			m.created_at, m.updated_at, m.version,
			d.name, d.date_of_birth, d.nationality
		FROM movies m
		JOIN directors d ON m.director_id = d.id
		WHERE ($1 = '' OR m.title ILIKE '%%' || $1 || '%%')%s
		ORDER BY %s
		LIMIT $%d`, cursorCond, keyset.OrderBy, len(args))

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie
		var director domain.Director

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&director.ID,
			&movie.CreatorID,
			&movie.LikeCount,
			&movie.DislikeCount,
			&movie.MovieFilePath,
			&movie.CreatedAt,
			&movie.UpdatedAt,
			&movie.Version,
			&director.Name,
			&director.DateOfBirth,
			&director.Nationality,
		)
		if err != nil {
			return nil, err
		}

		movie.Director = &director
		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = p.attachGenres(ctx, p.db, movies); err != nil {
		return nil, err
	}

	page := &domain.MoviePage{
		Movies:       movies,
		TotalRecords: totalRecords,
	}

	if len(movies) > 0 {
		token, err := pagination.NextCursor(spec, movies[len(movies)-1])
		if err != nil {
			return nil, err
		}
		page.NextCursor = &token
	}

	return page, nil
}

func (p *PostgresMovieRepository) GetByID(ctx context.Context, id int) (*domain.Movie, error) {
	return p.getAggregate(ctx, p.db, id)
}

func (p *PostgresMovieRepository) GetRecent(ctx context.Context, limit int) ([]*domain.Movie, error) {
	query := `
		SELECT id, title, director_id, creator_id, like_count, dislike_count,
			movie_file_path, created_at, updated_at, version
		FROM movies
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := p.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie
		var directorID int

		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&directorID,
			&movie.CreatorID,
			&movie.LikeCount,
			&movie.DislikeCount,
			&movie.MovieFilePath,
			&movie.CreatedAt,
			&movie.UpdatedAt,
			&movie.Version,
		)
		if err != nil {
			return nil, err
		}

		movie.Director = &domain.Director{ID: directorID}
		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, cmd domain.CreateMovieCommand) (*domain.Movie, error) {
	var created *domain.Movie

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		director, err := p.getDirector(ctx, tx, cmd.DirectorID)
		if err != nil {
			return err
		}

		genres, err := p.getGenres(ctx, tx, cmd.GenreIDs)
		if err != nil {
			return err
		}

		var detailID int
		err = tx.QueryRow(ctx,
			`INSERT INTO movie_details (detail) VALUES ($1) RETURNING id`,
			cmd.Detail).Scan(&detailID)
		if err != nil {
			return err
		}

		var movieID int
		err = tx.QueryRow(ctx, `
			INSERT INTO movies (title, detail_id, director_id, creator_id, movie_file_path)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			cmd.Title,
			detailID,
			director.ID,
			cmd.CreatorID,
			media.PermanentPath(cmd.MovieFileName)).Scan(&movieID)
		if err != nil {
			return mapMovieInsertError(err)
		}

		// Relocation is not covered by the transaction. Failing here still
		// rolls the rows back; the worst case is a leftover temp file.
		if err := p.media.MoveToPermanent(ctx, cmd.MovieFileName); err != nil {
			return err
		}

		if err := p.linkGenres(ctx, tx, movieID, genreIDs(genres)); err != nil {
			return err
		}

		created, err = p.getAggregate(ctx, tx, movieID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (p *PostgresMovieRepository) Update(ctx context.Context, id int, cmd domain.UpdateMovieCommand) (*domain.Movie, error) {
	var updated *domain.Movie

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		movie, err := p.getAggregate(ctx, tx, id)
		if err != nil {
			return err
		}

		var newDirectorID *int
		if cmd.DirectorID != nil {
			director, err := p.getDirector(ctx, tx, *cmd.DirectorID)
			if err != nil {
				return err
			}
			newDirectorID = &director.ID
		}

		var newGenres []domain.Genre
		if cmd.GenreIDs != nil {
			newGenres, err = p.getGenres(ctx, tx, cmd.GenreIDs)
			if err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx, `
			UPDATE movies
			SET title = COALESCE($1, title),
				director_id = COALESCE($2, director_id),
				updated_at = now(),
				version = version + 1
			WHERE id = $3`,
			cmd.Title, newDirectorID, id)
		if err != nil {
			return mapMovieInsertError(err)
		}

		if cmd.Detail != nil {
			_, err = tx.Exec(ctx,
				`UPDATE movie_details SET detail = $1 WHERE id = $2`,
				*cmd.Detail, movie.Detail.ID)
			if err != nil {
				return err
			}
		}

		if cmd.GenreIDs != nil {
			if err := p.replaceGenres(ctx, tx, id, movie.Genres, newGenres); err != nil {
				return err
			}
		}

		updated, err = p.getAggregate(ctx, tx, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) (int, error) {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var detailID int

		err := tx.QueryRow(ctx, `SELECT detail_id FROM movies WHERE id = $1`, id).Scan(&detailID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.MovieNotFoundError{ID: id}
			}
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id); err != nil {
			return err
		}

		// The detail row has no life of its own; it goes with the movie.
		_, err = tx.Exec(ctx, `DELETE FROM movie_details WHERE id = $1`, detailID)

		return err
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (p *PostgresMovieRepository) getAggregate(ctx context.Context, q querier, id int) (*domain.Movie, error) {
	query := `
		SELECT m.id, m.title, m.creator_id, m.like_count, m.dislike_count,
			m.movie_file_path, m.created_at, m.updated_at, m.version,
			md.id, md.detail,
			d.id, d.name, d.date_of_birth, d.nationality
		FROM movies m
		JOIN movie_details md ON m.detail_id = md.id
		JOIN directors d ON m.director_id = d.id
		WHERE m.id = $1`

	var movie domain.Movie
	var detail domain.MovieDetail
	var director domain.Director

	err := q.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.CreatorID,
		&movie.LikeCount,
		&movie.DislikeCount,
		&movie.MovieFilePath,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.Version,
		&detail.ID,
		&detail.Detail,
		&director.ID,
		&director.Name,
		&director.DateOfBirth,
		&director.Nationality,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.MovieNotFoundError{ID: id}
		}
		return nil, err
	}

	movie.Detail = &detail
	movie.Director = &director

	if err := p.attachGenres(ctx, q, []*domain.Movie{&movie}); err != nil {
		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) attachGenres(ctx context.Context, q querier, movies []*domain.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	ids := make([]int, len(movies))
	byID := make(map[int]*domain.Movie, len(movies))
	for i, movie := range movies {
		ids[i] = movie.ID
		byID[movie.ID] = movie
		movie.Genres = []domain.Genre{}
	}

	query := `
		SELECT mg.movie_id, g.id, g.name
		FROM movie_genres mg
		JOIN genres g ON mg.genre_id = g.id
		WHERE mg.movie_id = ANY($1)
		ORDER BY g.id`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var movieID int
		var genre domain.Genre

		if err := rows.Scan(&movieID, &genre.ID, &genre.Name); err != nil {
			return err
		}

		movie := byID[movieID]
		movie.Genres = append(movie.Genres, genre)
	}

	return rows.Err()
}

func (p *PostgresMovieRepository) getDirector(ctx context.Context, q querier, id int) (*domain.Director, error) {
	var director domain.Director

	err := q.QueryRow(ctx,
		`SELECT id, name, date_of_birth, nationality FROM directors WHERE id = $1`, id).Scan(
		&director.ID,
		&director.Name,
		&director.DateOfBirth,
		&director.Nationality,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.DirectorNotFoundError{ID: id}
		}
		return nil, err
	}

	return &director, nil
}

// getGenres loads the referenced genres and fails when any id is missing, so
// reference checks complete before a single row is written.
func (p *PostgresMovieRepository) getGenres(ctx context.Context, q querier, ids []int) ([]domain.Genre, error) {
	rows, err := q.Query(ctx, `SELECT id, name FROM genres WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []domain.Genre{}
	found := make(map[int]bool)

	for rows.Next() {
		var genre domain.Genre

		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, err
		}

		genres = append(genres, genre)
		found[genre.ID] = true
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(genres) != len(ids) {
		missing := []int{}
		for _, id := range ids {
			if !found[id] {
				missing = append(missing, id)
			}
		}

		return nil, domain.GenreNotFoundError{MissingIDs: missing, FoundIDs: genreIDs(genres)}
	}

	return genres, nil
}

func (p *PostgresMovieRepository) linkGenres(ctx context.Context, tx pgx.Tx, movieID int, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	linkRows := make([][]any, 0, len(ids))
	for _, genreID := range ids {
		linkRows = append(linkRows, []any{movieID, genreID})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"movie_genres"},
		[]string{"movie_id", "genre_id"},
		pgx.CopyFromRows(linkRows),
	)

	return err
}

// replaceGenres applies the new genre set as add+remove of the symmetric
// difference against the current one. Replacing links this way, instead of
// delete-all-then-insert, means no statement ever leaves the movie with zero
// genres mid-transaction.
func (p *PostgresMovieRepository) replaceGenres(ctx context.Context, tx pgx.Tx, movieID int, current, next []domain.Genre) error {
	currentSet := make(map[int]bool, len(current))
	for _, genre := range current {
		currentSet[genre.ID] = true
	}

	nextSet := make(map[int]bool, len(next))
	for _, genre := range next {
		nextSet[genre.ID] = true
	}

	toAdd := []int{}
	for _, genre := range next {
		if !currentSet[genre.ID] {
			toAdd = append(toAdd, genre.ID)
		}
	}

	toRemove := []int{}
	for _, genre := range current {
		if !nextSet[genre.ID] {
			toRemove = append(toRemove, genre.ID)
		}
	}

	if err := p.linkGenres(ctx, tx, movieID, toAdd); err != nil {
		return err
	}

	if len(toRemove) > 0 {
		_, err := tx.Exec(ctx,
			`DELETE FROM movie_genres WHERE movie_id = $1 AND genre_id = ANY($2)`,
			movieID, toRemove)
		if err != nil {
			return err
		}
	}

	return nil
}

func mapMovieInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return domain.ErrMovieAlreadyExists
	}

	return err
}

func genreIDs(genres []domain.Genre) []int {
	ids := make([]int, len(genres))
	for i, genre := range genres {
		ids[i] = genre.ID
	}

	return ids
}
