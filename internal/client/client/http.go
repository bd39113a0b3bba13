package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authflow/internal/client/models"
	"github.com/dmitrijs2005/authflow/internal/logging"
)

// RequestIDHeader carries the per-call correlation id.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// HTTPClient talks to the authentication backend over HTTP/JSON. The
// session credential travels in cookies held by the jar passed to
// NewHTTPClient.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
	timeout time.Duration
	newID   func() string
}

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout bounds every call; 0 disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.http.Transport = rt }
}

// WithRequestIDs overrides the request id generator.
func WithRequestIDs(fn func() string) Option {
	return func(c *HTTPClient) { c.newID = fn }
}

// NewHTTPClient builds a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, jar http.CookieJar, logger logging.Logger, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Jar: jar},
		logger:  logger,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client was built with.
func (c *HTTPClient) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

func (c *HTTPClient) IsAuthenticated(ctx context.Context) (bool, error) {
	var ok bool
	if err := c.do(ctx, http.MethodGet, "/is-authenticated", nil, nil, &ok, http.StatusOK); err != nil {
		return false, err
	}
	return ok, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/profile", nil, nil, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) error {
	return c.do(ctx, http.MethodPost, "/login", nil, req, nil, http.StatusOK)
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/register", nil, req, nil, http.StatusCreated)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil, nil, http.StatusOK)
}

func (c *HTTPClient) SendResetOTP(ctx context.Context, email string) error {
	q := url.Values{"email": []string{email}}
	return c.do(ctx, http.MethodPost, "/send-reset-otp", q, nil, nil, http.StatusOK)
}

func (c *HTTPClient) VerifyResetOTP(ctx context.Context, req models.VerifyResetOTPRequest) error {
	return c.do(ctx, http.MethodPost, "/verify-reset-otp", nil, req, nil, http.StatusOK)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/reset-password", nil, req, nil, http.StatusOK)
}

func (c *HTTPClient) SendVerifyOTP(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/send-otp", nil, nil, nil, http.StatusOK)
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, req models.VerifyEmailRequest) error {
	return c.do(ctx, http.MethodPost, "/verify-otp", nil, req, nil, http.StatusOK)
}

// do performs one call. The response status must equal want; anything else
// becomes an *APIError. out, when not nil, receives the decoded JSON body.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any, want int) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := c.newID()
	req.Header.Set(RequestIDHeader, reqID)

	log := c.logger.With("request_id", reqID, "method", method, "path", path)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err, "duration", time.Since(started))
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode != want {
		return &APIError{StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// readMessage extracts the "message" field of a JSON error body. Bodies
// that are not JSON objects yield an empty message.
func readMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}
	var payload struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(b, &payload); err != nil {
		return ""
	}
	msg, ok := payload.Message.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(msg)
}
