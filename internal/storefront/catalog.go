package storefront

import (
	"context"

	"github.com/tonimelisma/storefront-go/internal/api"
	"github.com/tonimelisma/storefront-go/internal/endpoints"
)

// Categories lists every category.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return api.Get[[]Category](ctx, s.client, endpoints.Categories.List, nil)
}

// Category fetches one category by slug.
func (s *Service) Category(ctx context.Context, slug string) (*Category, error) {
	return one[Category](api.Get[Category](ctx, s.client, endpoints.Categories.BySlug(slug), nil))
}

// CreateCategory adds a category. Admin only.
func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	return one[Category](api.Post[Category](ctx, s.client, endpoints.Categories.Create, in))
}

// UpdateCategory replaces a category's writable fields. Admin only.
func (s *Service) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*Category, error) {
	return one[Category](api.Put[Category](ctx, s.client, endpoints.Categories.Update(id), in))
}

// DeleteCategory removes a category. Admin only.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	_, err := api.Delete[api.Empty](ctx, s.client, endpoints.Categories.Delete(id))

	return err
}

// Products lists products, one page at a time.
func (s *Service) Products(ctx context.Context, opts ListOptions) (Page[Product], error) {
	return api.Get[Page[Product]](ctx, s.client, endpoints.Products.List, opts.params())
}

// FeaturedProducts lists the products flagged for the home page.
func (s *Service) FeaturedProducts(ctx context.Context) ([]Product, error) {
	return api.Get[[]Product](ctx, s.client, endpoints.Products.Featured, nil)
}

// ProductsInCategory lists one category's products by category slug.
func (s *Service) ProductsInCategory(ctx context.Context, slug string, opts ListOptions) (Page[Product], error) {
	return api.Get[Page[Product]](ctx, s.client, endpoints.Products.ByCategory(slug), opts.params())
}

// Product fetches one product by slug.
func (s *Service) Product(ctx context.Context, slug string) (*Product, error) {
	return one[Product](api.Get[Product](ctx, s.client, endpoints.Products.BySlug(slug), nil))
}

// ProductByID fetches one product by ID.
func (s *Service) ProductByID(ctx context.Context, id string) (*Product, error) {
	return one[Product](api.Get[Product](ctx, s.client, endpoints.Products.ByID(id), nil))
}

// CreateProduct adds a product. Admin only.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	return one[Product](api.Post[Product](ctx, s.client, endpoints.Products.Create, in))
}

// UpdateProduct replaces a product's writable fields. Admin only.
func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (*Product, error) {
	return one[Product](api.Put[Product](ctx, s.client, endpoints.Products.Update(id), in))
}

// DeleteProduct removes a product. Admin only.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	_, err := api.Delete[api.Empty](ctx, s.client, endpoints.Products.Delete(id))

	return err
}

// one adapts a value result to a pointer result, nil on error.
func one[T any](v T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}

	return &v, nil
}
