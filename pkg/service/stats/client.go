package stats

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashtags-tool/hashdash/pkg/domain/interfaces"
	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/time/rate"
)

const userAgent = "hashdash/0.1"

// maxErrorBody bounds how much of a failed response is kept for the error
const maxErrorBody = 512

// Client reads edit statistics from the backend API over HTTP
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ interfaces.StatsClient = (*Client)(nil)

// Option is a functional option for configuring Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(client *Client) {
		if rps <= 0 {
			client.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		client.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New creates a client for the backend at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, goerr.Wrap(err, "invalid backend URL", goerr.V("url", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("backend URL must be http or https", goerr.V("url", baseURL))
	}

	client := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// TopProjects implements interfaces.StatsClient
func (c *Client) TopProjects(ctx context.Context, filter model.Filter) (*model.ProjectStats, error) {
	var stats model.ProjectStats
	if err := c.get(ctx, types.EndpointTopProjects, filter.APIValues(""), &stats); err != nil {
		return nil, err
	}
	if _, err := stats.Series(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// TopUsers implements interfaces.StatsClient
func (c *Client) TopUsers(ctx context.Context, filter model.Filter) (*model.UserStats, error) {
	var stats model.UserStats
	if err := c.get(ctx, types.EndpointTopUsers, filter.APIValues(""), &stats); err != nil {
		return nil, err
	}
	if _, err := stats.Series(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// TimeStats implements interfaces.StatsClient
func (c *Client) TimeStats(ctx context.Context, filter model.Filter, view types.ViewType) (*model.TimeStats, error) {
	var stats model.TimeStats
	if err := c.get(ctx, types.EndpointTimeStats, filter.APIValues(view), &stats); err != nil {
		return nil, err
	}
	if _, err := stats.Series(); err != nil {
		return nil, err
	}
	if stats.ViewType != "" && !stats.ViewType.IsValid() {
		return nil, goerr.Wrap(model.ErrMalformedPayload, "unknown view type in response",
			goerr.V("view_type", stats.ViewType))
	}
	return &stats, nil
}

// endpointURL joins the endpoint path and the query onto the base URL
func (c *Client) endpointURL(endpoint types.Endpoint, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + endpoint.String()
	u.RawQuery = query.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, endpoint types.Endpoint, query url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return goerr.Wrap(err, "rate limiter wait aborted", goerr.V("endpoint", endpoint))
		}
	}

	target := c.endpointURL(endpoint, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("url", target))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return goerr.Wrap(err, "stats request aborted", goerr.V("url", target))
		}
		return goerr.Wrap(model.ErrBackendUnreachable, "stats request failed",
			goerr.V("url", target),
			goerr.V("error", err.Error()))
	}
	defer resp.Body.Close()

	ctxlog.From(ctx).Debug("stats request",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return goerr.Wrap(model.ErrBackendStatus, "unexpected status from stats backend",
			goerr.V("url", target),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(model.ErrMalformedPayload, "failed to decode stats response",
			goerr.V("url", target),
			goerr.V("error", err.Error()))
	}
	return nil
}
