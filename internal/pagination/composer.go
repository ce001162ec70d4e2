package pagination

import (
	"fmt"
	"strings"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

const DefaultTake = 5

// Query holds the keyset clauses for one page, ready to be spliced into a
// repository's SELECT. Where is empty on the first page. Args continue the
// caller's positional parameters from the offset given to Compose.
type Query struct {
	Where   string
	Args    []any
	OrderBy string
	Limit   int
}

// Resolve applies the cursor-wins policy to a filter's cursor/order pair:
// with no cursor the caller's order tokens are parsed and used, otherwise the
// cursor is decoded and its embedded order supersedes whatever the caller
// sent, keeping the page sequence consistent.
func Resolve(token string, order []string, sortable map[string]string) (domain.SortSpec, *domain.Cursor, error) {
	if token == "" {
		spec, err := ParseOrder(order, sortable)
		if err != nil {
			return nil, nil, err
		}

		return spec, nil, nil
	}

	cursor, err := DecodeCursor(token, sortable)
	if err != nil {
		return nil, nil, err
	}

	return cursor.Order, cursor, nil
}

// Compose builds the WHERE/ORDER BY/LIMIT clauses for one page of keyset
// pagination. The cursor predicate is a single row-wise tuple comparison over
// the sort columns:
//
//	(alias.c1, alias.c2) < ($n, $n+1)
//
// with < when the first sort column is descending and > otherwise. The tuple
// form excludes exactly the rows already emitted, no matter how many leading
// columns tie; per-column comparisons would skip or repeat rows. OFFSET is
// never used.
func Compose(spec domain.SortSpec, cursor *domain.Cursor, take int, alias string, argOffset int) (Query, error) {
	if len(spec) == 0 {
		return Query{}, fmt.Errorf("%w: empty sort order", domain.ErrMalformedCursor)
	}

	if take < 1 {
		take = DefaultTake
	}

	q := Query{Limit: take}

	orderParts := make([]string, len(spec))
	for i, field := range spec {
		orderParts[i] = fmt.Sprintf("%s.%s %s", alias, field.Column, field.Direction)
	}
	q.OrderBy = strings.Join(orderParts, ", ")

	if cursor == nil {
		return q, nil
	}

	columns := make([]string, len(spec))
	params := make([]string, len(spec))

	for i, field := range spec {
		value, ok := cursor.Values[field.Key]
		if !ok {
			return Query{}, fmt.Errorf("%w: missing value for %q", domain.ErrMalformedCursor, field.Key)
		}

		columns[i] = fmt.Sprintf("%s.%s", alias, field.Column)
		params[i] = fmt.Sprintf("$%d", argOffset+i+1)
		q.Args = append(q.Args, value)
	}

	operator := ">"
	if spec[0].Direction == domain.SortDesc {
		operator = "<"
	}

	q.Where = fmt.Sprintf("(%s) %s (%s)", strings.Join(columns, ", "), operator, strings.Join(params, ", "))

	return q, nil
}

// NextCursor derives the cursor for the page after the given last row. An
// empty page has no continuation and yields "".
func NextCursor(spec domain.SortSpec, last domain.SortValuer) (string, error) {
	if last == nil {
		return "", nil
	}

	values := make(map[string]any, len(spec))
	for _, field := range spec {
		values[field.Key] = last.SortValue(field.Key)
	}

	return EncodeCursor(domain.Cursor{Values: values, Order: spec})
}
