// Package rest implements the service.Service interface against the to-do
// REST backend.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"todoctl/internal/casing"
	"todoctl/internal/config"
	apierr "todoctl/internal/errors"
	"todoctl/internal/service"
)

const (
	// UserAgent is sent with every request.
	UserAgent = "todoctl/1.0"

	// RequestIDHeader carries a fresh UUID per request.
	RequestIDHeader = "X-Request-ID"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 10 << 20
)

// Client implements service.Service over HTTP.
type Client struct {
	baseURL    string
	http       *http.Client
	logger     *zap.Logger
	limiter    *rate.Limiter
	timeout    time.Duration
	batchLimit int
	validate   *validator.Validate
}

var _ service.Service = (*Client)(nil)

type settings struct {
	httpClient *http.Client
	logger     *zap.Logger
	registerer prometheus.Registerer
	token      string
	timeout    time.Duration
	rateLimit  float64
	batchLimit int
}

// Option configures a Client.
type Option func(*settings)

// WithHTTPClient uses the given client instead of the default tuned transport.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithRegisterer records request counts and durations on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *settings) { s.registerer = reg }
}

// WithToken sends "Authorization: Bearer <token>" with every request.
func WithToken(token string) Option {
	return func(s *settings) { s.token = token }
}

// WithTimeout bounds each call. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithRateLimit caps requests per second. Zero disables the limiter.
func WithRateLimit(rps float64) Option {
	return func(s *settings) { s.rateLimit = rps }
}

// WithBatchConcurrency caps in-flight requests of UpdateAllListOrders. Zero means no cap.
func WithBatchConcurrency(n int) Option {
	return func(s *settings) { s.batchLimit = n }
}

// New creates a client from configuration. Options given here win over cfg.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Client, error) {
	base := []Option{
		WithToken(cfg.Token),
		WithTimeout(cfg.Timeout),
		WithRateLimit(cfg.RateLimit),
		WithBatchConcurrency(cfg.BatchConcurrency),
	}
	return NewWithBaseURL(cfg.BaseURL, append(base, opts...)...)
}

// NewWithBaseURL creates a client for baseURL.
func NewWithBaseURL(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apierr.New(apierr.ErrCodeInvalidRequest, fmt.Sprintf("invalid base url: %q", baseURL))
	}

	s := settings{timeout: config.DefaultTimeout}
	for _, opt := range opts {
		opt(&s)
	}
	if s.timeout <= 0 {
		s.timeout = config.DefaultTimeout
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	httpClient := s.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: newDefaultTransport()}
	}

	// Layer the transport: metrics closest to the wire, auth on top
	transport := httpClient.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if s.registerer != nil {
		transport, err = instrument(s.registerer, transport)
		if err != nil {
			return nil, apierr.Wrap(apierr.ErrCodeInternal, "failed to register client metrics", err)
		}
	}
	if s.token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.token, TokenType: "Bearer"}),
			Base:   transport,
		}
	}
	wrapped := *httpClient
	wrapped.Transport = transport

	var limiter *rate.Limiter
	if s.rateLimit > 0 {
		burst := int(s.rateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(s.rateLimit), burst)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &wrapped,
		logger:     s.logger,
		limiter:    limiter,
		timeout:    s.timeout,
		batchLimit: s.batchLimit,
		validate:   validator.New(),
	}, nil
}

func newDefaultTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}
}

// envelope is the body shape every backend route answers with.
type envelope struct {
	Successful *bool           `json:"successful"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
}

func (e envelope) hasData() bool {
	trimmed := bytes.TrimSpace(e.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func (e envelope) failed() bool {
	return e.Successful != nil && !*e.Successful
}

type response struct {
	op        string
	path      string
	status    int
	requestID string
	env       envelope
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (r *response) context() map[string]any {
	return map[string]any{
		"operation":  r.op,
		"path":       r.path,
		"status":     r.status,
		"request_id": r.requestID,
	}
}

// serverMessage returns the backend's error text, or fallback.
func (r *response) serverMessage(fallback string) string {
	if r.env.Error != "" {
		return r.env.Error
	}
	return fallback
}

// do sends one request and decodes the envelope. Transport failures and
// bodies that are not an envelope are returned as errors; everything else
// is left to the caller.
func (c *Client) do(ctx context.Context, op, method, path string, body any) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, wrapError(op, path, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apierr.Wrap(apierr.ErrCodeInternal, "failed to encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, apierr.Wrap(apierr.ErrCodeInternal, "failed to create request", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, wrapError(op, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, wrapError(op, path, err)
	}

	c.logger.Debug("request finished",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)))

	r := &response{op: op, path: path, status: resp.StatusCode, requestID: requestID}
	if err := json.Unmarshal(raw, &r.env); err != nil {
		if se := statusError(r); se != nil {
			return nil, se
		}
		return nil, apierr.WrapWithContext(apierr.ErrCodeDecode, "response is not a JSON envelope", err, r.context())
	}
	return r, nil
}

// decodeData normalizes the envelope's data and decodes it into out.
// With trace set, the raw and converted payloads are logged.
func (c *Client) decodeData(r *response, out any, trace bool) error {
	if !r.env.hasData() {
		if se := statusError(r); se != nil {
			return se
		}
		return apierr.NewWithContext(apierr.ErrCodeNoData, r.serverMessage("response carried no data"), r.context())
	}
	if !r.ok() {
		return apierr.NewWithContext(apierr.ErrCodeRejected, r.serverMessage(http.StatusText(r.status)), r.context())
	}

	converted, err := casing.NormalizeJSON(r.env.Data)
	if err != nil {
		return apierr.WrapWithContext(apierr.ErrCodeDecode, "invalid response data", err, r.context())
	}

	if trace {
		c.logger.Debug("original response data", zap.String("op", r.op), zap.ByteString("data", r.env.Data))
		c.logger.Debug("converted response data", zap.String("op", r.op), zap.Any("data", converted))
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return apierr.Wrap(apierr.ErrCodeInternal, "failed to create decoder", err)
	}
	if err := dec.Decode(converted); err != nil {
		return apierr.WrapWithContext(apierr.ErrCodeDecode, "unexpected response data", err, r.context())
	}
	return nil
}

// successFlag reads the boolean a delete answers with.
func (c *Client) successFlag(r *response) bool {
	ok := r.env.Successful != nil && *r.env.Successful
	if !ok {
		c.logger.Warn("backend reported failure",
			zap.String("op", r.op),
			zap.String("path", r.path),
			zap.Int("status", r.status),
			zap.String("error", r.env.Error))
	}
	return ok
}

// statusError maps statuses that carry meaning without a body.
func statusError(r *response) error {
	switch r.status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apierr.NewWithContext(apierr.ErrCodeUnauthorized, r.serverMessage("token missing, expired or revoked (run: todoctl login)"), r.context())
	case http.StatusNotFound:
		return apierr.NewWithContext(apierr.ErrCodeNotFound, r.serverMessage("not found"), r.context())
	}
	return nil
}

// wrapError classifies transport failures.
func wrapError(op, path string, err error) error {
	ctx := map[string]any{"operation": op, "path": path}
	if isTimeout(err) {
		return apierr.WrapWithContext(apierr.ErrCodeTimeout, "request timed out", err, ctx)
	}
	return apierr.WrapWithContext(apierr.ErrCodeTransport, "request failed", err, ctx)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func listPath(id string) string {
	return "/lists/" + url.PathEscape(id)
}

func taskPath(id string) string {
	return "/task/" + url.PathEscape(id)
}
