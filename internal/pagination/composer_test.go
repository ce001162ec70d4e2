package pagination

import (
	"errors"
	"testing"

	"github.com/cinelist/movie-catalog-service/internal/domain"
	"github.com/google/go-cmp/cmp"
)

func TestCompose(t *testing.T) {
	descFirst := domain.SortSpec{
		{Key: "likeCount", Column: "like_count", Direction: domain.SortDesc},
		{Key: "id", Column: "id", Direction: domain.SortDesc},
	}
	ascFirst := domain.SortSpec{
		{Key: "title", Column: "title", Direction: domain.SortAsc},
		{Key: "id", Column: "id", Direction: domain.SortAsc},
	}
	mixed := domain.SortSpec{
		{Key: "title", Column: "title", Direction: domain.SortAsc},
		{Key: "id", Column: "id", Direction: domain.SortDesc},
	}

	tests := []struct {
		name      string
		spec      domain.SortSpec
		cursor    *domain.Cursor
		take      int
		argOffset int
		want      Query
	}{
		{
			name: "first page has no predicate",
			spec: descFirst,
			take: 5,
			want: Query{
				OrderBy: "m.like_count DESC, m.id DESC",
				Limit:   5,
			},
		},
		{
			name: "descending leader uses less-than tuple",
			spec: descFirst,
			cursor: &domain.Cursor{
				Values: map[string]any{"likeCount": int64(20), "id": int64(35)},
				Order:  descFirst,
			},
			take:      5,
			argOffset: 1,
			want: Query{
				Where:   "(m.like_count, m.id) < ($2, $3)",
				Args:    []any{int64(20), int64(35)},
				OrderBy: "m.like_count DESC, m.id DESC",
				Limit:   5,
			},
		},
		{
			name: "ascending leader uses greater-than tuple",
			spec: ascFirst,
			cursor: &domain.Cursor{
				Values: map[string]any{"title": "Memento", "id": int64(12)},
				Order:  ascFirst,
			},
			take: 3,
			want: Query{
				Where:   "(m.title, m.id) > ($1, $2)",
				Args:    []any{"Memento", int64(12)},
				OrderBy: "m.title ASC, m.id ASC",
				Limit:   3,
			},
		},
		{
			name: "operator follows the first column only",
			spec: mixed,
			cursor: &domain.Cursor{
				Values: map[string]any{"title": "Memento", "id": int64(12)},
				Order:  mixed,
			},
			take: 5,
			want: Query{
				Where:   "(m.title, m.id) > ($1, $2)",
				Args:    []any{"Memento", int64(12)},
				OrderBy: "m.title ASC, m.id DESC",
				Limit:   5,
			},
		},
		{
			name: "take below one falls back to the default",
			spec: descFirst,
			take: 0,
			want: Query{
				OrderBy: "m.like_count DESC, m.id DESC",
				Limit:   DefaultTake,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compose(tt.spec, tt.cursor, tt.take, "m", tt.argOffset)
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("query mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComposeRejectsEmptySpec(t *testing.T) {
	_, err := Compose(nil, nil, 5, "m", 0)
	if !errors.Is(err, domain.ErrMalformedCursor) {
		t.Errorf("Compose() error = %v, want %v", err, domain.ErrMalformedCursor)
	}
}

func TestResolveCursorWins(t *testing.T) {
	cursorOrder := domain.SortSpec{
		{Key: "likeCount", Column: "like_count", Direction: domain.SortDesc},
		{Key: "id", Column: "id", Direction: domain.SortDesc},
	}

	token, err := EncodeCursor(domain.Cursor{
		Values: map[string]any{"likeCount": int64(20), "id": int64(35)},
		Order:  cursorOrder,
	})
	if err != nil {
		t.Fatal(err)
	}

	// The caller asks for a conflicting order; the cursor's embedded order
	// must win so pages stay consistent.
	spec, cursor, err := Resolve(token, []string{"title_ASC"}, testSortable)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if cursor == nil {
		t.Fatal("Resolve() cursor = nil, want decoded cursor")
	}

	if diff := cmp.Diff(cursorOrder, spec); diff != "" {
		t.Errorf("spec mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveWithoutCursorUsesCallerOrder(t *testing.T) {
	spec, cursor, err := Resolve("", []string{"title_ASC", "id_ASC"}, testSortable)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if cursor != nil {
		t.Errorf("Resolve() cursor = %v, want nil", cursor)
	}

	want := domain.SortSpec{
		{Key: "title", Column: "title", Direction: domain.SortAsc},
		{Key: "id", Column: "id", Direction: domain.SortAsc},
	}
	if diff := cmp.Diff(want, spec); diff != "" {
		t.Errorf("spec mismatch (-want +got):\n%s", diff)
	}
}

func TestNextCursor(t *testing.T) {
	spec := domain.SortSpec{
		{Key: "likeCount", Column: "like_count", Direction: domain.SortDesc},
		{Key: "id", Column: "id", Direction: domain.SortDesc},
	}

	movie := &domain.Movie{ID: 35, LikeCount: 20}

	token, err := NextCursor(spec, movie)
	if err != nil {
		t.Fatalf("NextCursor() error = %v", err)
	}

	cursor, err := DecodeCursor(token, testSortable)
	if err != nil {
		t.Fatalf("DecodeCursor() error = %v", err)
	}

	want := map[string]any{"likeCount": int64(20), "id": int64(35)}
	if diff := cmp.Diff(want, cursor.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestNextCursorNilRow(t *testing.T) {
	token, err := NextCursor(domain.SortSpec{{Key: "id", Column: "id", Direction: domain.SortAsc}}, nil)
	if err != nil {
		t.Fatalf("NextCursor() error = %v", err)
	}

	if token != "" {
		t.Errorf("NextCursor() = %q, want empty", token)
	}
}
