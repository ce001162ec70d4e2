package domain

import "context"

// LikeRecord is the (movie, user) reaction row. At most one exists per pair;
// IsLike distinguishes a like from a dislike.
type LikeRecord struct {
	MovieID int
	UserID  int
	IsLike  bool
}

// LikeRepository owns every mutation of like records. The movie's
// likeCount/dislikeCount columns are derived aggregates refreshed by
// RecalculateCounts on a schedule, not maintained per toggle.
type LikeRepository interface {
	// Toggle applies the three-way transition for (movieID, userID): no
	// record inserts one, a matching record deletes it, an opposite record
	// flips it. Returns the post-transition reaction, nil meaning none.
	Toggle(ctx context.Context, movieID, userID int, isLike bool) (*bool, error)

	// GetStatuses resolves the user's reaction for each of the given movies.
	// Movies without a record are absent from the result.
	GetStatuses(ctx context.Context, movieIDs []int, userID int) (map[int]bool, error)

	RecalculateCounts(ctx context.Context) error
}
