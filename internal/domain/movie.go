package domain

import (
	"context"
	"time"
)

// Audit carries the columns shared by every catalog table.
type Audit struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

type Movie struct {
	ID            int
	Title         string
	Detail        *MovieDetail
	Director      *Director
	Genres        []Genre
	CreatorID     int
	LikeCount     int
	DislikeCount  int
	MovieFilePath string

	// LikeStatus is the requesting user's reaction (nil when the caller is
	// anonymous or has no reaction). Never persisted on the movie row.
	LikeStatus *bool

	Audit
}

// MovieDetail is exclusively owned by its movie: created with it, deleted
// with it, never addressed on its own.
type MovieDetail struct {
	ID     int
	Detail string
}

// MovieSortColumns whitelists the client-facing sort keys for movie listings
// and maps them to their table columns. Anything else is rejected before it
// gets near a query.
var MovieSortColumns = map[string]string{
	"id":           "id",
	"title":        "title",
	"likeCount":    "like_count",
	"dislikeCount": "dislike_count",
}

// SortValue returns the movie's value for a sortable attribute key.
func (m *Movie) SortValue(key string) any {
	switch key {
	case "id":
		return m.ID
	case "title":
		return m.Title
	case "likeCount":
		return m.LikeCount
	case "dislikeCount":
		return m.DislikeCount
	}

	return nil
}

// MovieFilters carries everything a movie list query needs: an optional title
// filter, an opaque cursor from the previous page, the requested sort order
// (ignored when a cursor is present) and the page size.
type MovieFilters struct {
	Title  string
	Cursor string
	Order  []string
	Take   int
}

// MoviePage is one page of a forward-only movie listing. NextCursor is nil
// once the sequence is exhausted.
type MoviePage struct {
	Movies       []*Movie
	NextCursor   *string
	TotalRecords int
}

type CreateMovieCommand struct {
	Title         string
	Detail        string
	DirectorID    int
	GenreIDs      []int
	MovieFileName string
	CreatorID     int
}

// UpdateMovieCommand stages a partial update. Nil fields are left untouched;
// a non-nil GenreIDs replaces the whole genre set.
type UpdateMovieCommand struct {
	Title      *string
	Detail     *string
	DirectorID *int
	GenreIDs   []int
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) (*MoviePage, error)
	GetByID(ctx context.Context, id int) (*Movie, error)
	GetRecent(ctx context.Context, limit int) ([]*Movie, error)
	Create(ctx context.Context, cmd CreateMovieCommand) (*Movie, error)
	Update(ctx context.Context, id int, cmd UpdateMovieCommand) (*Movie, error)
	Delete(ctx context.Context, id int) (int, error)
}
