package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Range limits that are not expressible as struct tags.
const (
	minTimeout = 1 * time.Second
	maxTimeout = 10 * time.Minute
)

// newValidator builds a validator that reports fields by their TOML names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Validate checks all configuration values and returns every error found,
// so users can fix all issues in one pass.
func Validate(cfg *Config) error {
	var errs []error

	if err := newValidator().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating config: %w", err)
		}

		for _, fe := range verrs {
			errs = append(errs, describeFieldError(fe))
		}
	}

	if _, err := parseTimeout(cfg.API.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("api.timeout: %w", err))
	}

	if _, err := ParseSize(cfg.Uploads.MaxImageSize); err != nil {
		errs = append(errs, fmt.Errorf("uploads.max_image_size: %w", err))
	}

	return errors.Join(errs...)
}

// describeFieldError turns a validator failure into a message keyed by the
// dotted TOML path, e.g. "storage.backend".
func describeFieldError(fe validator.FieldError) error {
	_, path, _ := strings.Cut(fe.Namespace(), ".")

	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s: must not be empty", path)
	case "oneof":
		return fmt.Errorf("%s: must be one of [%s], got %q", path,
			strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "min", "max":
		return fmt.Errorf("%s: must be %s %s, got %v", path, boundWord(fe.Tag()), fe.Param(), fe.Value())
	case "url", "startswith":
		return fmt.Errorf("%s: must be an http(s) URL, got %q", path, fe.Value())
	default:
		return fmt.Errorf("%s: failed %q check", path, fe.Tag())
	}
}

func boundWord(tag string) string {
	if tag == "min" {
		return "at least"
	}

	return "at most"
}

// parseTimeout parses a Go duration and enforces the accepted range.
func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	if d < minTimeout || d > maxTimeout {
		return 0, fmt.Errorf("must be between %s and %s, got %s", minTimeout, maxTimeout, d)
	}

	return d, nil
}
