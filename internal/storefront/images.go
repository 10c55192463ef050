package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/tonimelisma/storefront-go/internal/api"
	"github.com/tonimelisma/storefront-go/internal/endpoints"
)

// Multipart field names the upload endpoints read.
const (
	imageField  = "image"
	imagesField = "images"
	folderField = "folder"
)

// UploadImage hosts the file at path. folder is optional.
func (s *Service) UploadImage(ctx context.Context, path, folder string) (*Image, error) {
	f, err := s.openImage(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	form := api.NewFormData().AddFile(imageField, filepath.Base(path), f)
	if folder != "" {
		form.AddField(folderField, folder)
	}

	img, err := api.Upload[Image](ctx, s.client, endpoints.Uploads.Image, form, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("image uploaded",
		slog.String("path", path),
		slog.String("public_id", img.PublicID),
	)

	return &img, nil
}

// UploadImages hosts each file with its own request, at most
// Options.ParallelUploads at a time. Results keep the order of paths. The
// first failure cancels uploads not yet started and is returned.
func (s *Service) UploadImages(ctx context.Context, paths []string, folder string) ([]Image, error) {
	// Size limits are checked up front so nothing is sent for a bad batch.
	for _, p := range paths {
		if err := s.checkSize(p); err != nil {
			return nil, err
		}
	}

	images := make([]Image, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.ParallelUploads)

	for i, p := range paths {
		g.Go(func() error {
			img, err := s.UploadImage(gctx, p, folder)
			if err != nil {
				return fmt.Errorf("uploading %s: %w", p, err)
			}

			images[i] = *img

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return images, nil
}

// UploadBatch hosts several files in a single multipart request.
func (s *Service) UploadBatch(ctx context.Context, paths []string, folder string) ([]Image, error) {
	form := api.NewFormData()
	if folder != "" {
		form.AddField(folderField, folder)
	}

	for _, p := range paths {
		f, err := s.openImage(p)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		form.AddFile(imagesField, filepath.Base(p), f)
	}

	return api.Upload[[]Image](ctx, s.client, endpoints.Uploads.Images, form, nil)
}

// DeleteImage removes a hosted image by its public ID.
func (s *Service) DeleteImage(ctx context.Context, publicID string) error {
	_, err := api.Delete[api.Empty](ctx, s.client, endpoints.Uploads.Delete(publicID))

	return err
}

func (s *Service) openImage(path string) (*os.File, error) {
	if err := s.checkSize(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storefront: opening image: %w", err)
	}

	return f, nil
}

func (s *Service) checkSize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("storefront: reading image: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("storefront: %s is a directory", path)
	}

	if s.opts.MaxImageSize > 0 && info.Size() > s.opts.MaxImageSize {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrImageTooLarge, path, info.Size(), s.opts.MaxImageSize)
	}

	return nil
}
