package api

import "log/slog"

// Storage is a durable key/value medium for credentials. Defined at the
// consumer; internal/tokenstore provides file, SQLite and in-memory
// implementations. Get returns "" with a nil error for a missing key.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// SetToken replaces the bearer token. A non-empty token is persisted under
// TokenKey; an empty one removes the durable copy. Storage failures are
// logged and otherwise ignored.
func (c *Client) SetToken(token string) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.setTokenLocked(token)
}

// setTokenLocked requires writeMu.
func (c *Client) setTokenLocked(token string) {
	c.mu.Lock()
	c.token = token
	c.loaded = true
	c.mu.Unlock()

	if c.store == nil {
		return
	}

	if token == "" {
		c.removeKey(TokenKey)

		return
	}

	if err := c.store.Set(TokenKey, token); err != nil {
		c.logger.Warn("persisting token failed", slog.String("error", err.Error()))
	}
}

// Token returns the bearer token, or "" if there is none. Durable storage
// is read only until the token has been set or loaded once; after that the
// in-memory value is authoritative, even when it is empty.
func (c *Client) Token() string {
	c.mu.RLock()
	tok, loaded := c.token, c.loaded
	c.mu.RUnlock()

	if loaded || c.store == nil {
		return tok
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.RLock()
	tok, loaded = c.token, c.loaded
	c.mu.RUnlock()

	if loaded {
		return tok
	}

	stored, err := c.store.Get(TokenKey)
	if err != nil {
		c.logger.Warn("reading stored token failed", slog.String("error", err.Error()))

		return ""
	}

	c.mu.Lock()
	c.token = stored
	c.loaded = true
	c.mu.Unlock()

	return stored
}

// ClearToken forgets the bearer token and removes both the stored token and
// any stored refresh credential.
func (c *Client) ClearToken() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.setTokenLocked("")

	if c.store != nil {
		c.removeKey(RefreshTokenKey)
	}
}

func (c *Client) removeKey(key string) {
	if err := c.store.Remove(key); err != nil {
		c.logger.Warn("removing stored credential failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
