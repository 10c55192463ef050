package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Request sends method to path and decodes a successful response into T.
// No schema validation is performed beyond what encoding/json does. A 204
// response, and a JSON response whose body is empty or malformed, yield the
// zero T. Every error is an *Error.
func Request[T any](ctx context.Context, c *Client, method, path string, opts RequestOptions) (T, error) {
	var zero T

	res, err := c.do(ctx, method, path, opts)
	if err != nil {
		return zero, err
	}

	return decodeInto[T](res)
}

// Get issues a GET with optional query parameters.
func Get[T any](ctx context.Context, c *Client, path string, params Params) (T, error) {
	return Request[T](ctx, c, http.MethodGet, path, RequestOptions{Params: params})
}

// Post issues a POST with an optional body.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return Request[T](ctx, c, http.MethodPost, path, RequestOptions{Body: body})
}

// Put issues a PUT with an optional body.
func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return Request[T](ctx, c, http.MethodPut, path, RequestOptions{Body: body})
}

// Delete issues a DELETE.
func Delete[T any](ctx context.Context, c *Client, path string) (T, error) {
	return Request[T](ctx, c, http.MethodDelete, path, RequestOptions{})
}

// Upload POSTs a multipart form with optional query parameters.
func Upload[T any](ctx context.Context, c *Client, path string, form *FormData, params Params) (T, error) {
	if form == nil {
		form = NewFormData()
	}

	return Request[T](ctx, c, http.MethodPost, path, RequestOptions{Params: params, Body: form})
}

func decodeInto[T any](res *response) (T, error) {
	var out T

	if res.status == http.StatusNoContent {
		return out, nil
	}

	if _, ignored := any(out).(Empty); ignored {
		return out, nil
	}

	if !res.isJSON {
		switch p := any(&out).(type) {
		case *string:
			*p = res.text
		case *[]byte:
			*p = []byte(res.text)
		case *any:
			if res.text != "" {
				*p = res.text
			}
		default:
			if res.text != "" {
				return out, unexpectedError(res.requestID,
					fmt.Errorf("api: non-JSON response cannot be decoded into %T", out))
			}
		}

		return out, nil
	}

	if res.raw == nil {
		return out, nil
	}

	if err := json.Unmarshal(res.raw, &out); err != nil {
		return out, unexpectedError(res.requestID, fmt.Errorf("api: decoding response into %T: %w", out, err))
	}

	return out, nil
}
