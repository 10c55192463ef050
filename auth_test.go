package main

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/storefront-go/internal/api"
)

// withPipedStdin makes password prompts read a plain line.
func withPipedStdin(t *testing.T) {
	t.Helper()

	old := stdinIsTerminal
	t.Cleanup(func() { stdinIsTerminal = old })

	stdinIsTerminal = func() bool { return false }
}

func TestLoginWhoamiStatusLogout(t *testing.T) {
	srv := testBackend(t)
	cliEnv(t, srv.URL)
	withPipedStdin(t)

	_, err := runCLI(t, "secret\n", "login", "--email", "admin@example.com")
	require.NoError(t, err)

	// A fresh process reads the stored token.
	out, err := runCLI(t, "", "--json", "whoami")
	require.NoError(t, err)

	var who whoamiOutput
	require.NoError(t, json.Unmarshal([]byte(out), &who))
	assert.Equal(t, "admin@example.com", who.Email)
	assert.Equal(t, "admin", who.Role)
	require.NotNil(t, who.ExpiresAt)

	out, err = runCLI(t, "", "--json", "status")
	require.NoError(t, err)

	var st statusOutput
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, tokenStateValid, st.TokenState)
	assert.Equal(t, "admin@example.com", st.User)
	assert.True(t, st.RefreshStored)

	_, err = runCLI(t, "", "logout")
	require.NoError(t, err)

	out, err = runCLI(t, "", "--json", "status")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, tokenStateMissing, st.TokenState)
	assert.False(t, st.RefreshStored)

	_, err = runCLI(t, "", "whoami")
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestLogin_PromptsForEmail(t *testing.T) {
	srv := testBackend(t)
	cliEnv(t, srv.URL)
	withPipedStdin(t)

	_, err := runCLI(t, "admin@example.com\nsecret\n", "login")
	require.NoError(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := testBackend(t)
	cliEnv(t, srv.URL)
	withPipedStdin(t)

	_, err := runCLI(t, "nope\n", "login", "--email", "admin@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestLogin_EmptyEmail(t *testing.T) {
	srv := testBackend(t)
	cliEnv(t, srv.URL)
	withPipedStdin(t)

	_, err := runCLI(t, "\n", "login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is required")
}

func TestLogin_TerminalPasswordPrompt(t *testing.T) {
	srv := testBackend(t)
	cliEnv(t, srv.URL)

	oldTTY, oldRead := stdinIsTerminal, readPassword
	t.Cleanup(func() { stdinIsTerminal, readPassword = oldTTY, oldRead })

	stdinIsTerminal = func() bool { return true }

	calls := 0
	readPassword = func(int) ([]byte, error) {
		calls++

		return []byte("secret"), nil
	}

	_, err := runCLI(t, "", "login", "--email", "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }

	_, err = runCLI(t, "", "login", "--email", "admin@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading password")
}
