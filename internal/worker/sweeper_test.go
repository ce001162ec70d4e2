package worker

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsStaleUpload(t *testing.T) {
	now := time.Now()
	maxAge := 24 * time.Hour

	tests := []struct {
		name string
		file string
		want bool
	}{
		{
			name: "fresh upload kept",
			file: fmt.Sprintf("9f2c1b7e_%d.mp4", now.Add(-time.Hour).UnixMilli()),
			want: false,
		},
		{
			name: "day-old upload swept",
			file: fmt.Sprintf("9f2c1b7e_%d.mp4", now.Add(-25*time.Hour).UnixMilli()),
			want: true,
		},
		{
			name: "no timestamp suffix swept",
			file: "random-file.mp4",
			want: true,
		},
		{
			name: "non-numeric timestamp swept",
			file: "9f2c1b7e_notatime.mp4",
			want: true,
		},
		{
			name: "too many separators swept",
			file: "a_b_c.mp4",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isStaleUpload(tt.file, now, maxAge); got != tt.want {
				t.Errorf("isStaleUpload(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestSweepRemovesOnlyStaleFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	fresh := fmt.Sprintf("aaaa_%d.mp4", now.Add(-time.Hour).UnixMilli())
	stale := fmt.Sprintf("bbbb_%d.mp4", now.Add(-48*time.Hour).UnixMilli())
	junk := "not-an-upload.mp4"

	for _, name := range []string{fresh, stale, junk} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	sweeper := NewTempFileSweeper(dir, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour, 24*time.Hour)

	if err := sweeper.sweep(); err != nil {
		t.Fatalf("sweep() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, fresh)); err != nil {
		t.Errorf("fresh upload was removed: %v", err)
	}
	for _, name := range []string{stale, junk} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("%q should have been removed", name)
		}
	}
}
