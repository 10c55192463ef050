package api

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
)

// IsTransportFailure reports whether err came from the network layer
// rather than from the backend: dial, DNS and connection errors, a
// connection torn down mid-response, or a canceled request.
//
// The dispatcher attributes its own timeout before consulting this, so a
// cancellation seen here is one the client did not cause.
func IsTransportFailure(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE)
}
