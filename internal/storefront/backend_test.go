package storefront

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tonimelisma/storefront-go/internal/api"
	"github.com/tonimelisma/storefront-go/internal/tokenstore"
)

// fakeBackend is an in-process storefront server that records what the
// client sent.
type fakeBackend struct {
	srv *httptest.Server

	mu          sync.Mutex
	lastAuth    string
	lastQuery   string
	lastPath    string
	lastBody    map[string]any
	requests    int
	logoutFails bool

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	fb := &fakeBackend{}

	r := chi.NewRouter()
	r.Use(fb.record)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", func(w http.ResponseWriter, _ *http.Request) {
			if fb.body()["password"] != "secret" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
				return
			}

			writeJSON(w, http.StatusOK, Session{
				Token:        "access-1",
				RefreshToken: "refresh-1",
				User:         User{ID: "u1", Email: fb.body()["email"].(string), Role: "admin"},
			})
		})
		r.Post("/register", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusCreated, Session{Token: "access-new", User: User{ID: "u2", Name: "New"}})
		})
		r.Post("/refresh", func(w http.ResponseWriter, _ *http.Request) {
			if fb.body()["refreshToken"] != "refresh-1" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Refresh token revoked"})
				return
			}

			writeJSON(w, http.StatusOK, Session{Token: "access-2", RefreshToken: "refresh-2"})
		})
		r.Post("/logout", func(w http.ResponseWriter, _ *http.Request) {
			if fb.logoutFails {
				w.WriteHeader(http.StatusBadGateway)
				return
			}

			w.WriteHeader(http.StatusNoContent)
		})
		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not signed in"})
				return
			}

			writeJSON(w, http.StatusOK, User{ID: "u1", Email: "admin@example.com", Role: "admin"})
		})
	})

	r.Get("/categories", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []Category{{ID: "c1", Name: "Chips", Slug: "chips"}})
	})
	r.Get("/categories/slug/{slug}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Category{ID: "c1", Slug: chi.URLParam(r, "slug")})
	})
	r.Post("/categories", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, Category{ID: "c9", Name: fb.body()["name"].(string)})
	})
	r.Put("/categories/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Category{ID: chi.URLParam(r, "id"), Name: fb.body()["name"].(string)})
	})
	r.Delete("/categories/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/products", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Page[Product]{
			Items: []Product{{ID: "p1", Name: "Op-amp", Price: 1.25}},
			Total: 30, Page: 2, Limit: 10,
		})
	})
	r.Get("/products/featured", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []Product{{ID: "p1", Featured: true}})
	})
	r.Get("/products/category/{slug}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Page[Product]{Items: []Product{{ID: "p2"}}, Total: 1, Page: 1, Limit: 20})
	})
	r.Get("/products/slug/{slug}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "slug") == "gone" {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
			return
		}

		writeJSON(w, http.StatusOK, Product{ID: "p1", Slug: chi.URLParam(r, "slug")})
	})
	r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Product{ID: chi.URLParam(r, "id")})
	})
	r.Post("/products", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, Product{ID: "p9", Name: fb.body()["name"].(string)})
	})
	r.Put("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Product{ID: chi.URLParam(r, "id"), Price: fb.body()["price"].(float64)})
	})
	r.Delete("/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/blog", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Page[Post]{Items: []Post{{ID: "b1", Title: "Hello"}}, Total: 1, Page: 1, Limit: 10})
	})
	r.Get("/blog/slug/{slug}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Post{ID: "b1", Slug: chi.URLParam(r, "slug")})
	})
	r.Get("/blog/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Post{ID: chi.URLParam(r, "id")})
	})
	r.Post("/blog", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, Post{ID: "b9", Title: fb.body()["title"].(string)})
	})
	r.Put("/blog/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Post{ID: chi.URLParam(r, "id"), Title: fb.body()["title"].(string)})
	})
	r.Delete("/blog/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	search := func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, SearchResult{
			Query:    r.URL.Query().Get("q"),
			Products: []Product{{ID: "p1"}},
			Total:    1,
		})
	}
	r.Get("/search", search)
	r.Get("/search/products", search)
	r.Get("/search/blog", search)

	r.Post("/upload/image", fb.uploadOne)
	r.Post("/upload/images", fb.uploadMany)
	r.Delete("/upload/image/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
	})

	fb.srv = httptest.NewServer(r)
	t.Cleanup(fb.srv.Close)

	return fb
}

// record captures request metadata and, for JSON bodies, the decoded body.
func (fb *fakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Header.Get("Content-Type") == "application/json" {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}

		fb.mu.Lock()
		fb.requests++
		fb.lastAuth = r.Header.Get("Authorization")
		fb.lastQuery = r.URL.RawQuery
		fb.lastPath = r.URL.EscapedPath()
		fb.lastBody = body
		fb.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (fb *fakeBackend) uploadOne(w http.ResponseWriter, r *http.Request) {
	n := fb.inFlight.Add(1)
	defer fb.inFlight.Add(-1)

	for {
		peak := fb.maxInFlight.Load()
		if n <= peak || fb.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}

	time.Sleep(20 * time.Millisecond)

	_, header, err := r.FormFile(imageField)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "No image provided"})
		return
	}

	prefix := r.FormValue(folderField)
	writeJSON(w, http.StatusCreated, Image{URL: "https://cdn.example.com/" + header.Filename, PublicID: prefix + header.Filename})
}

func (fb *fakeBackend) uploadMany(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	var out []Image
	for _, h := range r.MultipartForm.File[imagesField] {
		out = append(out, Image{PublicID: h.Filename})
	}

	writeJSON(w, http.StatusCreated, out)
}

func (fb *fakeBackend) body() map[string]any {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	return fb.lastBody
}

func (fb *fakeBackend) last() (auth, path, query string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	return fb.lastAuth, fb.lastPath, fb.lastQuery
}

func (fb *fakeBackend) requestCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	return fb.requests
}

// newTestService wires a Service to fb over an in-memory credential store.
func newTestService(t *testing.T, fb *fakeBackend, opts Options) (*Service, *tokenstore.MemoryStore) {
	t.Helper()

	store := tokenstore.NewMemoryStore()
	client := api.NewClient(api.Config{BaseURL: fb.srv.URL, Timeout: 5 * time.Second}, nil, store, slog.Default())

	return NewService(client, store, slog.Default(), opts), store
}
