package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore is an in-memory Storage that records how often it is hit.
type countingStore struct {
	mu      sync.Mutex
	data    map[string]string
	gets    int
	sets    int
	removes    int
	failAll    bool
	failRemove bool
}

func newCountingStore() *countingStore {
	return &countingStore{data: make(map[string]string)}
}

func (s *countingStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gets++
	if s.failAll {
		return "", errors.New("storage unavailable")
	}

	return s.data[key], nil
}

func (s *countingStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sets++
	if s.failAll {
		return errors.New("storage unavailable")
	}

	s.data[key] = value

	return nil
}

func (s *countingStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removes++
	if s.failAll || s.failRemove {
		return errors.New("storage unavailable")
	}

	delete(s.data, key)

	return nil
}

func (s *countingStore) getCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gets
}

func TestNewClient_LoadsStoredToken(t *testing.T) {
	store := newCountingStore()
	store.data[TokenKey] = "persisted"

	c := NewClient(Config{}, nil, store, nil)
	assert.Equal(t, "persisted", c.Token())
}

func TestSetToken_InMemoryPrecedence(t *testing.T) {
	store := newCountingStore()
	c := NewClient(Config{}, nil, store, nil)

	before := store.getCount()

	for _, tok := range []string{"a", "token-with-symbols!@#", "eyJhbGciOi.x.y"} {
		c.SetToken(tok)
		assert.Equal(t, tok, c.Token())
	}

	assert.Equal(t, before, store.getCount(), "Token must not touch storage once set")
	assert.Equal(t, "eyJhbGciOi.x.y", store.data[TokenKey])
}

func TestSetToken_EmptyRemovesDurableCopy(t *testing.T) {
	store := newCountingStore()
	c := NewClient(Config{}, nil, store, nil)

	c.SetToken("abc")
	require.Equal(t, "abc", store.data[TokenKey])

	c.SetToken("")
	_, ok := store.data[TokenKey]
	assert.False(t, ok)
	assert.Equal(t, "", c.Token())
}

func TestClearToken_ObservedByFreshClient(t *testing.T) {
	store := newCountingStore()
	c := NewClient(Config{}, nil, store, nil)

	c.SetToken("abc")
	store.data[RefreshTokenKey] = "refresh"

	c.ClearToken()
	assert.Equal(t, "", c.Token())
	assert.NotContains(t, store.data, RefreshTokenKey)

	fresh := NewClient(Config{}, nil, store, nil)
	assert.Equal(t, "", fresh.Token())
}

func TestToken_StorageReadOnlyUntilLoaded(t *testing.T) {
	store := newCountingStore()
	c := NewClient(Config{}, nil, store, nil)
	require.Equal(t, "", c.Token())

	gets := store.getCount()

	// Another process writes the slot after this client has loaded it.
	store.data[TokenKey] = "late"
	assert.Equal(t, "", c.Token())
	assert.Equal(t, gets, store.getCount(), "storage read once per process")
}

func TestToken_FailedLoadRetried(t *testing.T) {
	store := newCountingStore()
	store.failAll = true
	store.data[TokenKey] = "persisted"

	c := NewClient(Config{}, nil, store, nil)
	require.Equal(t, "", c.Token())

	store.mu.Lock()
	store.failAll = false
	store.mu.Unlock()

	assert.Equal(t, "persisted", c.Token())
}

func TestClearToken_RemoveFailureDoesNotResurrectToken(t *testing.T) {
	var gotAuth []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store := newCountingStore()
	c := NewClient(Config{BaseURL: srv.URL}, srv.Client(), store, nil)

	c.SetToken("secret")

	store.mu.Lock()
	store.failRemove = true
	store.mu.Unlock()

	c.ClearToken()
	assert.Equal(t, "secret", store.data[TokenKey], "stale durable copy left behind")
	assert.Equal(t, "", c.Token())

	_, err := Get[Empty](context.Background(), c, "/me", nil)
	require.NoError(t, err)
	require.Len(t, gotAuth, 1)
	assert.Empty(t, gotAuth[0])
}

func TestSetToken_ConcurrentWritersAgreeWithStorage(t *testing.T) {
	store := newCountingStore()
	c := NewClient(Config{}, nil, store, nil)

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			c.SetToken(fmt.Sprintf("tok-%d", i))
		}()
	}

	wg.Wait()

	store.mu.Lock()
	stored := store.data[TokenKey]
	store.mu.Unlock()

	assert.Equal(t, stored, c.Token())
}

func TestToken_NoStorage(t *testing.T) {
	c := NewClient(Config{}, nil, nil, nil)
	assert.Equal(t, "", c.Token())

	c.SetToken("mem-only")
	assert.Equal(t, "mem-only", c.Token())

	c.ClearToken()
	assert.Equal(t, "", c.Token())
}

func TestToken_StorageFailuresTolerated(t *testing.T) {
	store := newCountingStore()
	store.failAll = true

	c := NewClient(Config{}, nil, store, nil)
	assert.Equal(t, "", c.Token())

	assert.NotPanics(t, func() {
		c.SetToken("abc")
		c.ClearToken()
	})
	assert.Equal(t, "", c.Token())
}
