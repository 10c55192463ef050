// Package storefront implements the storefront's feature calls (auth,
// catalog, blog, search, image hosting) on top of the api client. Every
// method is a thin wrapper: the path comes from the endpoints catalog and
// errors from the backend surface as *api.Error unchanged.
package storefront

import (
	"errors"
	"log/slog"

	"github.com/tonimelisma/storefront-go/internal/api"
)

// Errors raised before any request is sent.
var (
	ErrEmptyQuery     = errors.New("storefront: search query must not be empty")
	ErrNoToken        = errors.New("storefront: auth response carried no token")
	ErrNoRefreshToken = errors.New("storefront: no refresh token stored, log in again")
	ErrImageTooLarge  = errors.New("storefront: image exceeds the upload size limit")
)

// defaultParallelUploads bounds UploadImages when Options leaves it unset.
const defaultParallelUploads = 4

// Options tunes a Service. Zero values select defaults.
type Options struct {
	ParallelUploads int   // concurrent single-image uploads
	MaxImageSize    int64 // bytes; 0 disables the local check
}

// Service groups the feature calls. It is safe for concurrent use because
// the underlying Client is.
type Service struct {
	client *api.Client
	store  api.Storage
	logger *slog.Logger
	opts   Options
}

// NewService wraps client. store receives the refresh credential and may
// be nil, in which case refresh is unavailable.
func NewService(client *api.Client, store api.Storage, logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	if opts.ParallelUploads < 1 {
		opts.ParallelUploads = defaultParallelUploads
	}

	return &Service{
		client: client,
		store:  store,
		logger: logger,
		opts:   opts,
	}
}

// Client returns the underlying api client.
func (s *Service) Client() *api.Client {
	return s.client
}
