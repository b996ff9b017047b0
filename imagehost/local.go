package imagehost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/JuzzThyne/ERI-backend/catalog"
)

// Local stores images under dir and returns URLs rooted at baseURL.
type Local struct {
	dir     string
	baseURL string
	name    func(filename string) string
}

var _ catalog.ImageUploader = (*Local)(nil)

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{
		dir:     dir,
		baseURL: baseURL,
		name: func(filename string) string {
			return uniqueStem(filename) + extension(filename)
		},
	}, nil
}

func (l *Local) Dir() string { return l.dir }

func (l *Local) Upload(ctx context.Context, f catalog.ImageFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", catalog.ErrUploadFailed, err)
	}
	name := l.name(f.Filename)
	path := filepath.Join(l.dir, name)

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", catalog.ErrUploadConflict, name)
		}
		return "", fmt.Errorf("%w: %v", catalog.ErrUploadFailed, err)
	}
	if _, err := io.Copy(out, f.Body); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("%w: write %s: %v", catalog.ErrUploadFailed, name, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: close %s: %v", catalog.ErrUploadFailed, name, err)
	}
	return l.baseURL + "/" + name, nil
}
