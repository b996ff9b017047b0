package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/JuzzThyne/ERI-backend/obs"

	"golang.org/x/sync/errgroup"
)

// ImageFile is one image to push to the image host.
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageUploader pushes a single image and returns its hosted URL. Errors
// should wrap ErrUploadConflict when the host reports a duplicate name and
// ErrUploadFailed otherwise.
type ImageUploader interface {
	Upload(ctx context.Context, f ImageFile) (string, error)
}

// Coordinator uploads a batch of images concurrently. The batch succeeds
// only if every upload succeeds; already hosted images are not removed when
// a sibling fails.
type Coordinator struct {
	uploader ImageUploader
	maxFiles int
}

func NewCoordinator(uploader ImageUploader, maxFiles int) *Coordinator {
	if maxFiles < 1 {
		maxFiles = 1
	}
	return &Coordinator{uploader: uploader, maxFiles: maxFiles}
}

func (c *Coordinator) MaxFiles() int { return c.maxFiles }

// UploadAll starts every upload at once, waits for all of them to settle and
// returns the URLs in input order. One failure fails the batch and no URLs
// are returned. Siblings are not cancelled.
func (c *Coordinator) UploadAll(ctx context.Context, files []ImageFile) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoImage
	}
	if len(files) > c.maxFiles {
		return nil, fmt.Errorf("%w: got %d, at most %d", ErrTooManyFiles, len(files), c.maxFiles)
	}

	urls := make([]string, len(files))
	var g errgroup.Group
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			url, err := c.uploader.Upload(ctx, f)
			if err == nil && url == "" {
				err = errors.New("image host returned no url")
			}
			if err != nil {
				err = classifyUploadError(err)
				obs.Logger.Warn("image_upload_failed", "file", f.Filename, "index", i, "error", err)
				return fmt.Errorf("upload %q: %w", f.Filename, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

func classifyUploadError(err error) error {
	if errors.Is(err, ErrUploadConflict) || errors.Is(err, ErrUploadFailed) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUploadFailed, err)
}
