package domain

// SortDirection is the per-column ordering of a sort specification.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// SortField is one column of a sort specification. Key is the client-facing
// attribute name (e.g. "likeCount"), Column the database column it maps to.
type SortField struct {
	Key       string
	Column    string
	Direction SortDirection
}

// SortSpec is an ordered, non-empty sequence of sort fields. The position in
// the sequence is the tie-break precedence.
type SortSpec []SortField

func (s SortSpec) Keys() []string {
	keys := make([]string, len(s))
	for i, f := range s {
		keys[i] = f.Key
	}

	return keys
}

// Cursor is the decoded form of an opaque pagination token: the sort-key
// values of the last row a client has seen, plus the sort spec that produced
// them. The embedded spec always supersedes a caller-supplied one so that a
// sequence of pages stays consistent.
type Cursor struct {
	Values map[string]any
	Order  SortSpec
}

// SortValuer exposes the value of a sortable attribute by its client-facing
// key, for deriving the next cursor from the last row of a page.
type SortValuer interface {
	SortValue(key string) any
}
