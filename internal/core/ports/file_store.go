package ports

import (
	"context"
	"io"
	"time"
)

// StoredFile is an uploaded file opened for reading. Callers must close Content.
type StoredFile struct {
	Name        string
	ContentType string
	Size        int64
	ModTime     time.Time
	Content     io.ReadSeekCloser
}

// FileStore persists uploaded content under generated names in a single flat
// namespace.
type FileStore interface {
	// Save writes content under a name derived from sanitizedName and returns
	// the generated storage name.
	Save(ctx context.Context, sanitizedName string, content io.Reader) (string, error)
	// Open returns domain.ErrFileNotFound for unknown or unsafe names.
	Open(ctx context.Context, name string) (*StoredFile, error)
}

// FileService is the use-case facing side of uploads.
type FileService interface {
	Upload(ctx context.Context, originalName string, content io.Reader) (string, error)
	Open(ctx context.Context, name string) (*StoredFile, error)
}
