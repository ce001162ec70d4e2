package worker

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// TempFileSweeper deletes uploads that landed in the local temp folder but
// never became movies: a rolled-back create, an abandoned upload, or a failed
// relocation all leave a file behind. Upload names carry their creation time
// (<uuid>_<unix-millis>.mp4); anything older than maxAge, or not matching the
// shape at all, gets removed.
type TempFileSweeper struct {
	dir      string
	logger   *slog.Logger
	interval time.Duration
	maxAge   time.Duration
}

func NewTempFileSweeper(dir string, logger *slog.Logger, interval, maxAge time.Duration) *TempFileSweeper {
	return &TempFileSweeper{
		dir:      dir,
		logger:   logger,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Run blocks until ctx is cancelled.
func (s *TempFileSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.sweep(); err != nil {
				s.logger.Error("sweeping temp uploads failed", "error", err)
			}
		}
	}
}

func (s *TempFileSweeper) sweep() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	now := time.Now()

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !isStaleUpload(entry.Name(), now, s.maxAge) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Error("removing stale upload failed", "file", path, "error", err)
			continue
		}

		s.logger.Info("removed stale upload", "file", path)
	}

	return nil
}

func isStaleUpload(name string, now time.Time, maxAge time.Duration) bool {
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	parts := strings.Split(stem, "_")
	if len(parts) != 2 {
		return true
	}

	millis, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return true
	}

	return now.Sub(time.UnixMilli(millis)) > maxAge
}
