// Package endpoints is the catalog of backend resource paths. Paths are
// relative to the API base URL; parameterized paths escape their argument.
package endpoints

import (
	"net/url"

	"golang.org/x/text/unicode/norm"
)

// AuthEndpoints are the session endpoints.
type AuthEndpoints struct {
	Login    string
	Register string
	Logout   string
	Refresh  string
	Me       string
}

// Auth is the auth endpoint group.
var Auth = AuthEndpoints{
	Login:    "/auth/login",
	Register: "/auth/register",
	Logout:   "/auth/logout",
	Refresh:  "/auth/refresh",
	Me:       "/auth/me",
}

// ProductEndpoints are the product catalog endpoints.
type ProductEndpoints struct {
	List     string
	Featured string
	Create   string
}

// Products is the product endpoint group.
var Products = ProductEndpoints{
	List:     "/products",
	Featured: "/products/featured",
	Create:   "/products",
}

// ByID returns the path of a product by its ID.
func (ProductEndpoints) ByID(id string) string { return "/products/" + Segment(id) }

// BySlug returns the path of a product by its slug.
func (ProductEndpoints) BySlug(slug string) string { return "/products/slug/" + Segment(slug) }

// ByCategory returns the path listing products in a category.
func (ProductEndpoints) ByCategory(slug string) string { return "/products/category/" + Segment(slug) }

// Update returns the path updating a product.
func (ProductEndpoints) Update(id string) string { return "/products/" + Segment(id) }

// Delete returns the path removing a product.
func (ProductEndpoints) Delete(id string) string { return "/products/" + Segment(id) }

// CategoryEndpoints are the category endpoints.
type CategoryEndpoints struct {
	List   string
	Create string
}

// Categories is the category endpoint group.
var Categories = CategoryEndpoints{
	List:   "/categories",
	Create: "/categories",
}

// ByID returns the path of a category by its ID.
func (CategoryEndpoints) ByID(id string) string { return "/categories/" + Segment(id) }

// BySlug returns the path of a category by its slug.
func (CategoryEndpoints) BySlug(slug string) string { return "/categories/slug/" + Segment(slug) }

// Update returns the path updating a category.
func (CategoryEndpoints) Update(id string) string { return "/categories/" + Segment(id) }

// Delete returns the path removing a category.
func (CategoryEndpoints) Delete(id string) string { return "/categories/" + Segment(id) }

// BlogEndpoints are the blog post endpoints.
type BlogEndpoints struct {
	List   string
	Create string
}

// Blog is the blog endpoint group.
var Blog = BlogEndpoints{
	List:   "/blog",
	Create: "/blog",
}

// ByID returns the path of a post by its ID.
func (BlogEndpoints) ByID(id string) string { return "/blog/" + Segment(id) }

// BySlug returns the path of a post by its slug.
func (BlogEndpoints) BySlug(slug string) string { return "/blog/slug/" + Segment(slug) }

// Update returns the path updating a post.
func (BlogEndpoints) Update(id string) string { return "/blog/" + Segment(id) }

// Delete returns the path removing a post.
func (BlogEndpoints) Delete(id string) string { return "/blog/" + Segment(id) }

// SearchEndpoints are the full-text search endpoints.
type SearchEndpoints struct {
	All      string
	Products string
	Posts    string
}

// Search is the search endpoint group.
var Search = SearchEndpoints{
	All:      "/search",
	Products: "/search/products",
	Posts:    "/search/blog",
}

// UploadEndpoints are the image hosting endpoints.
type UploadEndpoints struct {
	Image  string
	Images string
}

// Uploads is the upload endpoint group.
var Uploads = UploadEndpoints{
	Image:  "/upload/image",
	Images: "/upload/images",
}

// Delete returns the path removing a hosted image. Public IDs may contain
// "/" (folder prefixes), which is escaped.
func (UploadEndpoints) Delete(publicID string) string { return "/upload/image/" + Segment(publicID) }

// Segment prepares a single path segment: NFC-normalized so that visually
// identical slugs map to the same URL, then path-escaped.
func Segment(s string) string {
	return url.PathEscape(norm.NFC.String(s))
}
