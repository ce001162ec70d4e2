package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

// cursorPayload is the wire shape of a cursor token: the last-seen values
// keyed by sort attribute, and the order tokens ("likeCount_DESC") that
// produced them.
type cursorPayload struct {
	Values map[string]any `json:"values"`
	Order  []string       `json:"order"`
}

// EncodeCursor serializes a cursor to an opaque URL-safe token. Encoding is
// deterministic: the same cursor always yields the same token.
func EncodeCursor(cursor domain.Cursor) (string, error) {
	payload := cursorPayload{
		Values: cursor.Values,
		Order:  make([]string, len(cursor.Order)),
	}

	for i, field := range cursor.Order {
		payload.Order[i] = field.Key + "_" + string(field.Direction)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(data), nil
}

// DecodeCursor parses an opaque token back into a cursor, validating it
// against the sortable-column whitelist of the target entity. Any token that
// is not parseable as the expected structure, or whose values do not line up
// with its order, fails with ErrMalformedCursor. Semantically stale cursors
// (values pointing at rows that no longer exist) decode fine; the next query
// simply returns fewer rows.
func DecodeCursor(token string, sortable map[string]string) (*domain.Cursor, error) {
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCursor, err)
	}

	var payload cursorPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCursor, err)
	}

	order, err := ParseOrder(payload.Order, sortable)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCursor, err)
	}

	if len(payload.Values) != len(order) {
		return nil, fmt.Errorf("%w: values do not match order columns", domain.ErrMalformedCursor)
	}

	values := make(map[string]any, len(payload.Values))
	for _, field := range order {
		v, ok := payload.Values[field.Key]
		if !ok {
			return nil, fmt.Errorf("%w: missing value for %q", domain.ErrMalformedCursor, field.Key)
		}

		values[field.Key] = normalizeValue(v)
	}

	return &domain.Cursor{Values: values, Order: order}, nil
}

// ParseOrder turns "column_DIRECTION" tokens into a sort spec, rejecting
// unknown columns and directions other than ASC/DESC.
func ParseOrder(tokens []string, sortable map[string]string) (domain.SortSpec, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty sort order", domain.ErrMalformedCursor)
	}

	spec := make(domain.SortSpec, 0, len(tokens))

	for _, token := range tokens {
		idx := strings.LastIndex(token, "_")
		if idx < 1 {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSortDirection, token)
		}

		key, direction := token[:idx], domain.SortDirection(token[idx+1:])

		if direction != domain.SortAsc && direction != domain.SortDesc {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSortDirection, token)
		}

		column, ok := sortable[key]
		if !ok {
			return nil, domain.UnknownSortColumnError{Column: key}
		}

		spec = append(spec, domain.SortField{Key: key, Column: column, Direction: direction})
	}

	return spec, nil
}

// normalizeValue undoes JSON's number widening so that integer sort keys
// round-trip as integers and bind cleanly to integer columns.
func normalizeValue(v any) any {
	f, ok := v.(float64)
	if !ok {
		return v
	}

	if f == math.Trunc(f) {
		return int64(f)
	}

	return f
}
