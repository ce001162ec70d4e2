package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMovieAlreadyExists   = errors.New("movie already exists with this title")
	ErrGenreAlreadyExists   = errors.New("genre already exists with this name")
	ErrMalformedCursor      = errors.New("malformed pagination cursor")
	ErrInvalidSortDirection = errors.New("sort direction must be ASC or DESC")
)

type MovieNotFoundError struct {
	ID int
}

func (e MovieNotFoundError) Error() string {
	return fmt.Sprintf("movie with id %d does not exist", e.ID)
}

type DirectorNotFoundError struct {
	ID int
}

func (e DirectorNotFoundError) Error() string {
	return fmt.Sprintf("director with id %d does not exist", e.ID)
}

type UserNotFoundError struct {
	ID int
}

func (e UserNotFoundError) Error() string {
	return fmt.Sprintf("user with id %d does not exist", e.ID)
}

// GenreNotFoundError reports a genre reference check that came up short. It
// names both the missing ids and the ones that do exist, so the caller can fix
// the request without a second round trip.
type GenreNotFoundError struct {
	MissingIDs []int
	FoundIDs   []int
}

func (e GenreNotFoundError) Error() string {
	return fmt.Sprintf("some genres do not exist: missing ids -> %s, existing ids -> %s",
		joinIDs(e.MissingIDs), joinIDs(e.FoundIDs))
}

type UnknownSortColumnError struct {
	Column string
}

func (e UnknownSortColumnError) Error() string {
	return fmt.Sprintf("%q is not a sortable attribute", e.Column)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}

	return strings.Join(parts, ",")
}
