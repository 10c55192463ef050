// Thin wrapper around storefront.Service for preparing the E2E account.
// Logs in with STOREFRONT_E2E_EMAIL/STOREFRONT_E2E_PASSWORD and registers
// the account when the backend does not know it yet.
//
// Usage: go run ./cmd/e2e-bootstrap --base-url http://localhost:5000/api
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/tonimelisma/storefront-go/internal/api"
	"github.com/tonimelisma/storefront-go/internal/storefront"
	"github.com/tonimelisma/storefront-go/internal/tokenstore"
	"github.com/tonimelisma/storefront-go/testutil"
)

func main() {
	baseURL := flag.String("base-url", os.Getenv(testutil.EnvE2EBaseURL), "backend base URL")
	name := flag.String("name", "E2E Tester", "display name used when registering")
	flag.Parse()

	testutil.LoadDotEnv(".env")

	email := os.Getenv(testutil.EnvE2EEmail)
	password := os.Getenv(testutil.EnvE2EPassword)

	if *baseURL == "" || email == "" || password == "" {
		fmt.Fprintf(os.Stderr, "%s, %s and %s must be set\n",
			testutil.EnvE2EBaseURL, testutil.EnvE2EEmail, testutil.EnvE2EPassword)
		os.Exit(2)
	}

	if err := testutil.BackendHostAllowed(*baseURL); err != nil {
		fmt.Fprintf(os.Stderr, "refusing to bootstrap: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger := slog.Default()

	client := api.NewClient(api.Config{BaseURL: *baseURL, Timeout: 30 * time.Second},
		http.DefaultClient, tokenstore.NewMemoryStore(), logger)
	svc := storefront.NewService(client, nil, logger, storefront.Options{})

	session, err := svc.Login(ctx, email, password)
	if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrNotFound) {
		session, err = svc.Register(ctx, storefront.RegisterInput{Name: *name, Email: email, Password: password})
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("E2E account ready: %s (%s)\n", session.User.Email, session.User.Role)
}
