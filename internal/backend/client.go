// Package backend is the outbound HTTP layer against the remote inventory
// service. It injects the session's bearer token, retries reads with capped
// exponential backoff against the cold-starting backend, keeps successful
// list reads fresh for a window, and maps every failure onto a classified
// error.
package backend

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"resty.dev/v3"

	"github.com/VictorHenrique01/mini-mercado-hub/pkg/retry"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultAttempts    = 3
	defaultRetryBase   = time.Second
	defaultRetryMax    = 30 * time.Second
	defaultFreshWindow = 5 * time.Minute
)

// Session supplies the bearer token and is dropped when the backend rejects
// it.
type Session interface {
	Token() string
	Logout() bool
}

type Config struct {
	BaseURL string

	// Timeout is the per-request deadline. Generous by default because
	// the hosted backend hibernates and takes tens of seconds to wake.
	Timeout time.Duration

	RetryAttempts  int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration

	// FreshFor is how long a successful list read is served from cache
	// before the backend is asked again.
	FreshFor time.Duration
}

func (c *Config) normalize() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = defaultAttempts
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = defaultRetryBase
	}
	if c.RetryMaxDelay <= 0 {
		c.RetryMaxDelay = defaultRetryMax
	}
	if c.FreshFor <= 0 {
		c.FreshFor = defaultFreshWindow
	}
}

// Client is the resilient request client.
type Client struct {
	http    *resty.Client
	logger  *zap.Logger
	session Session
	reads   *cache.Cache
	retry   retry.Config

	onUnauthorized func()
}

func New(cfg Config, session Session, logger *zap.Logger) *Client {
	cfg.normalize()

	httpc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	c := &Client{
		http:    httpc,
		logger:  logger,
		session: session,
		reads:   cache.New(cfg.FreshFor, 2*cfg.FreshFor),
		retry: retry.Config{
			MaxAttempts: cfg.RetryAttempts,
			Backoff:     retry.CappedExponential(cfg.RetryBaseDelay, cfg.RetryMaxDelay),
			ShouldRetry: func(err error) bool {
				var apiErr *Error
				return errors.As(err, &apiErr) && apiErr.Retryable()
			},
		},
	}

	httpc.AddRequestMiddleware(func(_ *resty.Client, r *resty.Request) error {
		if token := session.Token(); token != "" {
			r.SetAuthToken(token)
		}
		return nil
	})

	return c
}

// SetOnUnauthorized registers the callback fired when the backend rejects the
// session. The application shell decides what "redirect to login" means; this
// layer only reports it. The callback fires at most once per authenticated
// session, no matter how many requests fail at the same time.
func (c *Client) SetOnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// execute runs a single request and classifies any failure.
func (c *Client) execute(ctx context.Context, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	res, err := req.Execute(method, path)
	if err != nil {
		apiErr := classifyTransport(err)
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Stringer("kind", apiErr.Kind),
			zap.Error(err))
		return apiErr
	}

	if res.IsError() {
		apiErr := classifyStatus(res.StatusCode(), res.Bytes())
		c.logger.Warn("backend request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", res.StatusCode()),
			zap.Stringer("kind", apiErr.Kind))
		if apiErr.Kind == KindAuth {
			c.handleUnauthorized()
		}
		return apiErr
	}

	return nil
}

// getJSON is a read with retry but no caching.
func getJSON[T any](ctx context.Context, c *Client, path string) (T, error) {
	return retry.DoWithResult(ctx, c.retry, func() (T, error) {
		var out T
		err := c.execute(ctx, http.MethodGet, path, nil, &out)
		return out, err
	})
}

// listFresh is a cacheable list read: served from cache inside the freshness
// window, fetched with retry otherwise.
func listFresh[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	if v, ok := c.reads.Get(path); ok {
		if items, ok := v.([]T); ok {
			return items, nil
		}
	}

	items, err := retry.DoWithResult(ctx, c.retry, func() ([]T, error) {
		var out []T
		err := c.execute(ctx, http.MethodGet, path, nil, &out)
		return out, err
	})
	if err != nil {
		return nil, err
	}

	c.reads.Set(path, items, cache.DefaultExpiration)
	return items, nil
}

// writeJSON is a single-shot mutation. Mutations are not retried: the backend
// offers no idempotency keys, and a duplicated sale is worse than a surfaced
// error. On success the given cached reads are dropped so dependent fetches
// observe the write.
func (c *Client) writeJSON(ctx context.Context, method, path string, body, out any, invalidate ...string) error {
	if err := c.execute(ctx, method, path, body, out); err != nil {
		return err
	}
	for _, key := range invalidate {
		c.reads.Delete(key)
	}
	return nil
}

func (c *Client) handleUnauthorized() {
	// Logout reports the authenticated->anonymous transition exactly once,
	// so concurrent 401s cannot fan out into repeated redirects.
	if c.session.Logout() {
		c.logger.Warn("session rejected by backend, cleared")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}
}
