package storefront

import (
	"context"

	"github.com/tonimelisma/storefront-go/internal/api"
	"github.com/tonimelisma/storefront-go/internal/endpoints"
)

// Posts lists blog posts, one page at a time.
func (s *Service) Posts(ctx context.Context, opts ListOptions) (Page[Post], error) {
	return api.Get[Page[Post]](ctx, s.client, endpoints.Blog.List, opts.params())
}

// Post fetches one post by slug.
func (s *Service) Post(ctx context.Context, slug string) (*Post, error) {
	return one[Post](api.Get[Post](ctx, s.client, endpoints.Blog.BySlug(slug), nil))
}

// PostByID fetches one post by ID.
func (s *Service) PostByID(ctx context.Context, id string) (*Post, error) {
	return one[Post](api.Get[Post](ctx, s.client, endpoints.Blog.ByID(id), nil))
}

// CreatePost publishes or drafts a post. Admin only.
func (s *Service) CreatePost(ctx context.Context, in PostInput) (*Post, error) {
	return one[Post](api.Post[Post](ctx, s.client, endpoints.Blog.Create, in))
}

// UpdatePost replaces a post's writable fields. Admin only.
func (s *Service) UpdatePost(ctx context.Context, id string, in PostInput) (*Post, error) {
	return one[Post](api.Put[Post](ctx, s.client, endpoints.Blog.Update(id), in))
}

// DeletePost removes a post. Admin only.
func (s *Service) DeletePost(ctx context.Context, id string) error {
	_, err := api.Delete[api.Empty](ctx, s.client, endpoints.Blog.Delete(id))

	return err
}
