package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Config holds the per-client settings. Zero fields take the package
// defaults.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client issues requests against the storefront REST backend.
// It is safe for concurrent use. The bearer token is read once per request,
// at dispatch, so SetToken never affects requests already in flight.
type Client struct {
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	store      Storage
	logger     *slog.Logger

	mu     sync.RWMutex
	token  string
	loaded bool // token was set or read from storage in this process

	// writeMu serializes token mutations so memory and storage agree.
	writeMu sync.Mutex

	// newRequestID generates X-Request-ID values. Tests override it.
	newRequestID func() string
}

// RequestOptions describes the optional parts of a request.
//
// Body may be nil, a *FormData (multipart), an io.Reader or []byte (sent
// as-is, no content type forced), a json.RawMessage, or any value to be
// JSON-encoded.
type RequestOptions struct {
	Params Params
	Body   any
	Header http.Header
}

// Empty is the result type for calls whose response body is ignored.
type Empty = struct{}

// response is a fully read and decoded backend response.
type response struct {
	status    int
	isJSON    bool
	raw       []byte // valid JSON, or nil when absent or malformed
	text      string // body of a non-JSON response
	requestID string
}

// NewClient creates an API client. store may be nil when no durable
// storage is available; the token then lives in memory only. The token is
// loaded from store immediately.
//
// The client enforces cfg.Timeout itself, so httpClient should not carry
// its own Timeout.
func NewClient(cfg Config, httpClient *http.Client, store Storage, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		timeout:      timeout,
		userAgent:    userAgent,
		httpClient:   httpClient,
		store:        store,
		logger:       logger,
		newRequestID: uuid.NewString,
	}

	c.Token()

	return c
}

// BaseURL returns the normalized base URL (no trailing slash).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request deadline.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// do builds, sends and reads a single request. Any returned error is an
// *Error. Non-2xx responses are converted here.
func (c *Client) do(ctx context.Context, method, path string, opts RequestOptions) (*response, error) {
	requestID := opts.Header.Get(headerRequestID)
	if requestID == "" {
		requestID = c.newRequestID()
	}

	body, contentType, err := encodeBody(opts.Body)
	if err != nil {
		return nil, unexpectedError(requestID, err)
	}

	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	url := c.baseURL + path + BuildQuery(opts.Params)

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, url, body)
	if err != nil {
		return nil, unexpectedError(requestID, fmt.Errorf("api: creating request: %w", err))
	}

	for key, vals := range opts.Header {
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}

	if contentType != "" {
		req.Header.Set(headerContentType, contentType)
	}

	if tok := c.Token(); tok != "" {
		req.Header.Set(headerAuthorization, "Bearer "+tok)
	}

	if req.Header.Get(headerAccept) == "" {
		req.Header.Set(headerAccept, "application/json, text/plain, */*")
	}

	if req.Header.Get(headerUserAgent) == "" {
		req.Header.Set(headerUserAgent, c.userAgent)
	}

	req.Header.Set(headerRequestID, requestID)

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyFailure(ctx, reqCtx, requestID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyFailure(ctx, reqCtx, requestID, err)
	}

	res := decodeResponse(resp, data, requestID)

	c.logger.Debug("request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
		slog.String("request_id", requestID),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError(resp, res)
	}

	return res, nil
}

// classifyFailure converts an error raised while sending or reading into
// an *Error. ctx is the caller's context, reqCtx the one carrying the
// client's deadline.
func (c *Client) classifyFailure(ctx, reqCtx context.Context, requestID string, err error) *Error {
	if apiErr, ok := AsError(err); ok {
		return apiErr
	}

	if ctx.Err() == nil && errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return timeoutError(requestID)
	}

	if IsTransportFailure(err) {
		return networkError(requestID, err)
	}

	return unexpectedError(requestID, err)
}

// encodeBody returns the wire body and the content type to force, if any.
// Multipart bodies carry their boundary type; binary bodies force nothing.
func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, contentTypeJSON, nil
	case *FormData:
		return b.encode()
	case json.RawMessage:
		return bytes.NewReader(b), contentTypeJSON, nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case io.Reader:
		return b, "", nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("api: encoding request body: %w", err)
	}

	return bytes.NewReader(data), contentTypeJSON, nil
}

// decodeResponse classifies the body by content type. Malformed JSON is
// kept as a nil body rather than reported.
func decodeResponse(resp *http.Response, data []byte, requestID string) *response {
	res := &response{
		status:    resp.StatusCode,
		requestID: requestID,
	}

	if !isJSONContentType(resp.Header.Get(headerContentType)) {
		res.text = string(data)

		return res
	}

	res.isJSON = true

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && json.Valid(trimmed) {
		res.raw = trimmed
	}

	return res
}

// payload returns the parsed body for Error.Payload.
func (r *response) payload() any {
	if r.isJSON {
		if r.raw == nil {
			return nil
		}

		var v any
		if err := json.Unmarshal(r.raw, &v); err != nil {
			return nil
		}

		return v
	}

	if r.text == "" {
		return nil
	}

	return r.text
}

// errorBody is the optional shape of a backend error response.
type errorBody struct {
	Message json.RawMessage `json:"message"`
}

// backendMessage returns the string "message" field of a JSON object body,
// or "" if the body is not an object or the field is absent or not a string.
func backendMessage(raw []byte) string {
	if len(raw) == 0 || raw[0] != '{' {
		return ""
	}

	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil || len(eb.Message) == 0 {
		return ""
	}

	var msg string
	if err := json.Unmarshal(eb.Message, &msg); err != nil {
		return ""
	}

	return msg
}

func statusError(resp *http.Response, res *response) *Error {
	msg := backendMessage(res.raw)
	if msg == "" {
		msg = StatusMessage(resp.StatusCode, statusText(resp))
	}

	apiErr := NewError(resp.StatusCode, msg, res.payload())
	apiErr.RequestID = res.requestID

	return apiErr
}

// statusText returns the reason phrase of resp.Status ("404 Not Found" ->
// "Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)

	if text == "" {
		return http.StatusText(resp.StatusCode)
	}

	return text
}

func isJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.Contains(strings.ToLower(ct), "json")
	}

	return mediaType == contentTypeJSON || strings.HasSuffix(mediaType, "+json")
}
