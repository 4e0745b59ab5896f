package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
	"github.com/99minutos/user-service/internal/pkg/filename"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// LocalStore keeps uploaded files in one flat directory. Names are
// "<unix-millis>_<sanitized name>", shortened to filename.MaxBytes.
type LocalStore struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

// Option customises a LocalStore.
type Option func(*LocalStore)

// WithClock overrides the time source used to prefix stored names.
func WithClock(now func() time.Time) Option {
	return func(s *LocalStore) { s.now = now }
}

// NewLocalStore creates the storage directory if it is missing and returns a
// store rooted there. An already existing directory is not an error.
func NewLocalStore(fsys afero.Fs, dir string, opts ...Option) (*LocalStore, error) {
	s := &LocalStore{fs: fsys, dir: filepath.Clean(dir), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the storage directory.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) ensureDir() error {
	if ok, _ := afero.DirExists(s.fs, s.dir); ok {
		return nil
	}
	if err := s.fs.MkdirAll(s.dir, dirPerm); err != nil && !errors.Is(err, fs.ErrExist) {
		return domain.NewInternalError("create storage directory", fmt.Errorf("%w: %w", domain.ErrStorageWrite, err))
	}
	return nil
}

var _ ports.FileStore = (*LocalStore)(nil)

// Save writes content to a new file. Two saves of the same name within the
// same millisecond collide; the second one fails instead of overwriting.
func (s *LocalStore) Save(ctx context.Context, sanitizedName string, content io.Reader) (string, error) {
	if sanitizedName == "" || strings.ContainsAny(sanitizedName, `/\`) {
		return "", domain.NewInternalError("store upload", fmt.Errorf("%w: unsafe name %q", domain.ErrStorageWrite, sanitizedName))
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.ensureDir(); err != nil {
		return "", err
	}

	prefix := strconv.FormatInt(s.now().UnixMilli(), 10) + "_"
	name := prefix + filename.Truncate(sanitizedName, filename.MaxBytes-len(prefix))
	path := filepath.Join(s.dir, name)

	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return "", domain.NewInternalError("store upload", fmt.Errorf("%w: %w", domain.ErrStorageWrite, err))
	}

	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(path)
		return "", domain.NewInternalError("store upload", fmt.Errorf("%w: %w", domain.ErrStorageWrite, err))
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(path)
		return "", domain.NewInternalError("store upload", fmt.Errorf("%w: %w", domain.ErrStorageWrite, err))
	}
	return name, nil
}

// Open resolves name strictly inside the storage directory. Anything that
// could address another location is reported as not found before the
// filesystem is touched.
func (s *LocalStore) Open(ctx context.Context, name string) (*ports.StoredFile, error) {
	path, ok := s.resolve(name)
	if !ok {
		return nil, domain.ErrFileNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, domain.ErrFileNotFound
	}

	f, err := s.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("detect content type of %s: %w", name, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rewind %s: %w", name, err)
	}

	return &ports.StoredFile{
		Name:        name,
		ContentType: mt.String(),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		Content:     f,
	}, nil
}

// resolve maps a stored identifier to its path, rejecting anything that is
// not a single plain segment inside s.dir.
func (s *LocalStore) resolve(name string) (string, bool) {
	if name == "" || name == "." || name == ".." {
		return "", false
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return "", false
	}
	if filepath.IsAbs(name) || !filepath.IsLocal(name) || filepath.Base(name) != name {
		return "", false
	}

	path := filepath.Join(s.dir, name)
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel != name {
		return "", false
	}
	return path, true
}
