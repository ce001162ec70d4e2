package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

type PostgresLikeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresLikeRepository(db *pgxpool.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{
		db: db,
	}
}

// Toggle runs the whole read-then-write sequence in one transaction, locking
// the like row so two concurrent toggles from the same user serialize instead
// of racing to an inconsistent state. Repeating the same request flips the
// reaction off again; this is a toggle, not a counter.
func (p *PostgresLikeRepository) Toggle(ctx context.Context, movieID, userID int, isLike bool) (*bool, error) {
	var result *bool

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var exists bool

		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, movieID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return domain.MovieNotFoundError{ID: movieID}
		}

		err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return domain.UserNotFoundError{ID: userID}
		}

		var current bool
		err = tx.QueryRow(ctx, `
			SELECT is_like FROM movie_user_likes
			WHERE movie_id = $1 AND user_id = $2
			FOR UPDATE`, movieID, userID).Scan(&current)

		switch {
		case errors.Is(err, pgx.ErrNoRows):
			_, err = tx.Exec(ctx, `
				INSERT INTO movie_user_likes (movie_id, user_id, is_like)
				VALUES ($1, $2, $3)`, movieID, userID, isLike)
		case err != nil:
			return err
		case current == isLike:
			_, err = tx.Exec(ctx, `
				DELETE FROM movie_user_likes
				WHERE movie_id = $1 AND user_id = $2`, movieID, userID)
		default:
			_, err = tx.Exec(ctx, `
				UPDATE movie_user_likes SET is_like = $3
				WHERE movie_id = $1 AND user_id = $2`, movieID, userID, isLike)
		}
		if err != nil {
			return err
		}

		var after bool
		err = tx.QueryRow(ctx, `
			SELECT is_like FROM movie_user_likes
			WHERE movie_id = $1 AND user_id = $2`, movieID, userID).Scan(&after)

		switch {
		case errors.Is(err, pgx.ErrNoRows):
			result = nil
			return nil
		case err != nil:
			return err
		}

		result = &after

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (p *PostgresLikeRepository) GetStatuses(ctx context.Context, movieIDs []int, userID int) (map[int]bool, error) {
	statuses := make(map[int]bool)

	if len(movieIDs) == 0 {
		return statuses, nil
	}

	rows, err := p.db.Query(ctx, `
		SELECT movie_id, is_like FROM movie_user_likes
		WHERE movie_id = ANY($1) AND user_id = $2`, movieIDs, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var movieID int
		var isLike bool

		if err := rows.Scan(&movieID, &isLike); err != nil {
			return nil, err
		}

		statuses[movieID] = isLike
	}

	return statuses, rows.Err()
}

// RecalculateCounts refreshes the derived like/dislike counters from the like
// records. The counters are eventually consistent on purpose; only rows whose
// counts drifted get touched.
func (p *PostgresLikeRepository) RecalculateCounts(ctx context.Context) error {
	_, err := p.db.Exec(ctx, `
		UPDATE movies m
		SET like_count = sub.likes,
			dislike_count = sub.dislikes,
			updated_at = now()
		FROM (
			SELECT m2.id,
				count(*) FILTER (WHERE mul.is_like) AS likes,
				count(*) FILTER (WHERE NOT mul.is_like) AS dislikes
			FROM movies m2
			LEFT JOIN movie_user_likes mul ON mul.movie_id = m2.id
			GROUP BY m2.id
		) sub
		WHERE sub.id = m.id
			AND (m.like_count <> sub.likes OR m.dislike_count <> sub.dislikes)`)

	return err
}
