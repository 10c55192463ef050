package storefront

import (
	"context"
	"fmt"
	"strings"

	"github.com/tonimelisma/storefront-go/internal/api"
	"github.com/tonimelisma/storefront-go/internal/endpoints"
)

// SearchKind selects which collections a search covers.
type SearchKind string

// Search kinds.
const (
	SearchAll      SearchKind = "all"
	SearchProducts SearchKind = "products"
	SearchPosts    SearchKind = "posts"
)

// SearchResult holds matches from each searched collection.
type SearchResult struct {
	Query    string    `json:"query"`
	Products []Product `json:"products"`
	Posts    []Post    `json:"posts"`
	Total    int       `json:"total"`
}

// Search runs a full-text query. An empty or blank query is rejected
// without contacting the backend. page and limit are omitted when zero.
func (s *Service) Search(ctx context.Context, query string, kind SearchKind, page, limit int) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	path, err := searchPath(kind)
	if err != nil {
		return nil, err
	}

	params := ListOptions{Page: page, Limit: limit}.params()
	params["q"] = query

	return one[SearchResult](api.Get[SearchResult](ctx, s.client, path, params))
}

func searchPath(kind SearchKind) (string, error) {
	switch kind {
	case SearchAll, "":
		return endpoints.Search.All, nil
	case SearchProducts:
		return endpoints.Search.Products, nil
	case SearchPosts:
		return endpoints.Search.Posts, nil
	default:
		return "", fmt.Errorf("storefront: unknown search kind %q", kind)
	}
}
