package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/core/ports"
	"github.com/99minutos/user-service/internal/pkg/filename"
)

// FileService sanitises client file names before handing content to the store.
type FileService struct {
	store  ports.FileStore
	logger zerolog.Logger
}

func NewFileService(store ports.FileStore, logger zerolog.Logger) *FileService {
	return &FileService{store: store, logger: logger}
}

var _ ports.FileService = (*FileService)(nil)

// Upload stores content and returns the generated storage name.
func (s *FileService) Upload(ctx context.Context, originalName string, content io.Reader) (string, error) {
	safe := filename.Sanitize(originalName)

	name, err := s.store.Save(ctx, safe, content)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("original_name", originalName).Str("stored_name", name).Msg("file uploaded")
	return name, nil
}

// Open returns a previously uploaded file.
func (s *FileService) Open(ctx context.Context, name string) (*ports.StoredFile, error) {
	return s.store.Open(ctx, name)
}
