package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Client is a thin outbound HTTP client with a circuit breaker. It makes
// exactly one attempt per call: callers that want degradation on failure
// handle it themselves, there is no retry or backoff layer here.
type Client struct {
	client *http.Client
	cb     *CircuitBreaker
}

func NewClient(timeout time.Duration, maxFailures int, openTimeout time.Duration) *Client {
	return &Client{
		client: &http.Client{Timeout: timeout},
		cb:     NewCircuitBreaker(maxFailures, openTimeout),
	}
}

// Get issues a single GET request with the given query parameters. An open
// circuit fails fast with ErrCircuitOpen before any network activity.
func (c *Client) Get(ctx context.Context, baseURL string, queryParams map[string]string) (*http.Response, error) {
	if err := c.cb.CheckBeforeRequest(); err != nil {
		return nil, err
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	for k, v := range queryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.cb.OnFailure()
		return nil, err
	}
	if resp.StatusCode >= 500 {
		c.cb.OnFailure()
		return resp, nil
	}

	c.cb.OnSuccess()
	return resp, nil
}
