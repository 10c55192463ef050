package storefront

import (
	"time"

	"github.com/tonimelisma/storefront-go/internal/api"
)

// User is an account as returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is the body of a successful login, register or refresh.
type Session struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         User   `json:"user"`
}

// Image is a hosted image reference.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Category groups products.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Image       *Image    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CategoryInput is the writable part of a Category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       *Image `json:"image,omitempty"`
}

// Product is a catalog item.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Featured    bool      `json:"featured"`
	Images      []Image   `json:"images,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductInput is the writable part of a Product.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Featured    bool    `json:"featured,omitempty"`
	Images      []Image `json:"images,omitempty"`
}

// Post is a blog post.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Content     string    `json:"content,omitempty"`
	Author      string    `json:"author,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Published   bool      `json:"published"`
	PublishedAt time.Time `json:"publishedAt"`
}

// PostInput is the writable part of a Post.
type PostInput struct {
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt,omitempty"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags,omitempty"`
	Published bool     `json:"published"`
	Cover     *Image   `json:"cover,omitempty"`
}

// Page is the envelope of paginated listings.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// HasMore reports whether a later page exists.
func (p Page[T]) HasMore() bool {
	return p.Limit > 0 && p.Page*p.Limit < p.Total
}

// ListOptions narrows a listing. Zero fields are left out of the query.
type ListOptions struct {
	Page     int
	Limit    int
	Sort     string
	Category string
}

func (o ListOptions) params() api.Params {
	p := api.Params{}

	if o.Page > 0 {
		p["page"] = o.Page
	}

	if o.Limit > 0 {
		p["limit"] = o.Limit
	}

	if o.Sort != "" {
		p["sort"] = o.Sort
	}

	if o.Category != "" {
		p["category"] = o.Category
	}

	return p
}
