package storefront

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeImages creates n small files and returns their paths.
func writeImages(t *testing.T, n, size int) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, n)

	for i := range n {
		paths[i] = filepath.Join(dir, fmt.Sprintf("img-%d.png", i))
		require.NoError(t, os.WriteFile(paths[i], []byte(strings.Repeat("x", size)), 0o600))
	}

	return paths
}

func TestUploadImage(t *testing.T) {
	fb := newFakeBackend(t)
	svc, _ := newTestService(t, fb, Options{})

	paths := writeImages(t, 1, 64)

	img, err := svc.UploadImage(context.Background(), paths[0], "products/")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/img-0.png", img.URL)
	assert.Equal(t, "products/img-0.png", img.PublicID)
}

func TestUploadImages_OrderAndParallelism(t *testing.T) {
	fb := newFakeBackend(t)
	svc, _ := newTestService(t, fb, Options{ParallelUploads: 2})

	paths := writeImages(t, 6, 16)

	images, err := svc.UploadImages(context.Background(), paths, "")
	require.NoError(t, err)
	require.Len(t, images, len(paths))

	for i, img := range images {
		assert.Equal(t, filepath.Base(paths[i]), img.PublicID)
	}

	assert.LessOrEqual(t, fb.maxInFlight.Load(), int32(2))
	assert.Equal(t, len(paths), fb.requestCount())
}

func TestUploadImages_TooLargeSendsNothing(t *testing.T) {
	fb := newFakeBackend(t)
	svc, _ := newTestService(t, fb, Options{MaxImageSize: 100})

	paths := append(writeImages(t, 2, 10), writeImages(t, 1, 101)...)

	_, err := svc.UploadImages(context.Background(), paths, "")
	require.ErrorIs(t, err, ErrImageTooLarge)
	assert.Zero(t, fb.requestCount())
}

func TestUploadImages_MissingFile(t *testing.T) {
	fb := newFakeBackend(t)
	svc, _ := newTestService(t, fb, Options{})

	_, err := svc.UploadImages(context.Background(), []string{filepath.Join(t.TempDir(), "nope.png")}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUploadImage_Directory(t *testing.T) {
	fb := newFakeBackend(t)
	svc, _ := newTestService(t, fb, Options{})

	_, err := svc.UploadImage(context.Background(), t.TempDir(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestUploadBatch(t *testing.T) {
	fb := newFakeBackend(t)
	svc, _ := newTestService(t, fb, Options{})

	paths := writeImages(t, 3, 8)

	images, err := svc.UploadBatch(context.Background(), paths, "gallery")
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, "img-2.png", images[2].PublicID)
	assert.Equal(t, 1, fb.requestCount(), "one request for the batch")
}

func TestDeleteImage_EscapesPublicID(t *testing.T) {
	fb := newFakeBackend(t)
	svc, _ := newTestService(t, fb, Options{})

	require.NoError(t, svc.DeleteImage(context.Background(), "products/abc"))

	_, path, _ := fb.last()
	assert.Equal(t, "/upload/image/products%2Fabc", path)
}
