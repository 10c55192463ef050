package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tonimelisma/storefront-go/internal/api"
)

func main() {
	// Interrupts cancel the in-flight request; the client reports that as a
	// network failure rather than a timeout.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := execute(ctx, newRootCmd())

	stop()

	if err != nil {
		exitOnError(err)
	}
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	if errors.Is(err, api.ErrUnauthorized) {
		fmt.Fprintln(os.Stderr, "Hint: run 'storefront login' to sign in again.")
	}

	os.Exit(1)
}
