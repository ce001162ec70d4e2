package media

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

const (
	TempFolder      = "public/temp"
	PermanentFolder = "public/movie"
)

// UploadTarget tells a client where to put a new movie file and the name the
// catalog will know it by afterwards.
type UploadTarget struct {
	FileName  string
	UploadURL string
}

// Store relocates uploaded movie files and hands out upload destinations.
// MoveToPermanent must make the file reachable under the permanent folder
// before returning; the write pipeline refuses to commit otherwise.
type Store interface {
	MoveToPermanent(ctx context.Context, filename string) error
	CreateUploadTarget(ctx context.Context) (*UploadTarget, error)
}

// PermanentPath is the path recorded on the movie row for a relocated file.
func PermanentPath(filename string) string {
	return path.Join(PermanentFolder, filename)
}

// NewUploadFileName mints a temp-object name carrying its creation time, so
// the sweeper can age out uploads that never became movies.
func NewUploadFileName() string {
	return fmt.Sprintf("%s_%d.mp4", uuid.New(), time.Now().UnixMilli())
}
