package config

import (
	"fmt"
	"io"
)

// RenderEffective writes the resolved configuration as an annotated TOML
// summary to w. This powers "config show".
func RenderEffective(r *Resolved, w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("# Effective configuration (file: %s)\n\n", r.ConfigPath)

	ew.printf("[api]\n")
	ew.printf("  base_url   = %q\n", r.API.BaseURL)
	ew.printf("  timeout    = %q\n", r.API.Timeout)
	ew.printf("  user_agent = %q\n", r.API.UserAgent)
	ew.printf("\n")

	ew.printf("[storage]\n")
	ew.printf("  backend = %q\n", r.Storage.Backend)

	if r.CredentialsPath != "" {
		ew.printf("  path    = %q\n", r.CredentialsPath)
	}

	ew.printf("\n")

	ew.printf("[logging]\n")
	ew.printf("  log_level  = %q\n", r.Logging.LogLevel)
	ew.printf("  log_format = %q\n", r.Logging.LogFormat)
	ew.printf("\n")

	ew.printf("[uploads]\n")
	ew.printf("  parallel_uploads = %d\n", r.Uploads.ParallelUploads)
	ew.printf("  max_image_size   = %q\n", r.Uploads.MaxImageSize)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first write error.
// Subsequent writes after an error are no-ops.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}

	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
