package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

// LikeCountRecalculator refreshes the derived like/dislike counters on a
// fixed cadence. Toggles never touch the counters directly, so between runs
// the counts can lag behind the like records; the interval bounds that window
// and is configurable per deployment.
type LikeCountRecalculator struct {
	likes    domain.LikeRepository
	logger   *slog.Logger
	interval time.Duration
}

func NewLikeCountRecalculator(likes domain.LikeRepository, logger *slog.Logger, interval time.Duration) *LikeCountRecalculator {
	return &LikeCountRecalculator{
		likes:    likes,
		logger:   logger,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled.
func (r *LikeCountRecalculator) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.likes.RecalculateCounts(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				r.logger.Error("recalculating like counts failed", "error", err)
			}
		}
	}
}
