package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransportFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"canceled", context.Canceled, true},
		{"wrapped canceled", fmt.Errorf("doing x: %w", context.Canceled), true},
		{"deadline", context.DeadlineExceeded, true},
		{"url error", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("dial")}, true},
		{"dns error", &net.DNSError{Err: "no such host", Name: "nowhere.invalid"}, true},
		{"op error", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"connection reset", fmt.Errorf("read: %w", syscall.ECONNRESET), true},
		{"unexpected eof", io.ErrUnexpectedEOF, true},
		{"api error", NewError(404, "gone", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransportFailure(tt.err))
		})
	}
}
