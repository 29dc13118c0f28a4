package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"croniq/pkg/logging"
	"croniq/pkg/models"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/inconshreveable/log15"
)

// errNullBody is reported when a 2xx response carries a JSON null
var errNullBody = errors.New("body is null")

// maxErrorBody caps how much of a failed response is kept for display
const maxErrorBody = 4 << 10

// Client fetches dashboard data from the backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        log15.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the pooled default HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request records
func WithLogger(logger log15.Logger) Option {
	return func(c *Client) {
		c.log = logger
	}
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        logging.New("apiclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchClusterInfo fetches /api/cluster-info
func (c *Client) FetchClusterInfo(ctx context.Context) (*models.ClusterInfo, error) {
	var info models.ClusterInfo
	if err := c.get(ctx, models.PathClusterInfo, "cluster info", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// FetchCronJobs fetches /api/cronjobs. A missing items field is an empty list.
func (c *Client) FetchCronJobs(ctx context.Context) ([]models.CronJob, error) {
	var list models.CronJobList
	if err := c.get(ctx, models.PathCronJobs, "cron jobs", &list); err != nil {
		return nil, err
	}
	if list.Items == nil {
		return []models.CronJob{}, nil
	}
	return list.Items, nil
}

// FetchJobs fetches /api/jobs. A missing items field is an empty list.
func (c *Client) FetchJobs(ctx context.Context) ([]models.Job, error) {
	var list models.JobList
	if err := c.get(ctx, models.PathJobs, "jobs", &list); err != nil {
		return nil, err
	}
	if list.Items == nil {
		return []models.Job{}, nil
	}
	return list.Items, nil
}

// FetchStats fetches /api/stats
func (c *Client) FetchStats(ctx context.Context) (*models.JobStats, error) {
	var stats models.JobStats
	if err := c.get(ctx, models.PathStats, "stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// get issues an uncached GET and decodes a 2xx body into out
func (c *Client) get(ctx context.Context, endpoint, what string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Expires", "0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	c.log.Debug("api response", "endpoint", endpoint, "status", resp.StatusCode, "latency", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Endpoint:   endpoint,
			What:       what,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return &ShapeError{Endpoint: endpoint, What: what, Err: err}
	}
	if bytes.Equal(raw, []byte("null")) {
		return &ShapeError{Endpoint: endpoint, What: what, Err: errNullBody}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ShapeError{Endpoint: endpoint, What: what, Err: err}
	}
	return nil
}
