// Package backend implements the provider ports against the mapping
// backend's REST API.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the mapping backend. It implements the place, geocode,
// route, matrix and sequence provider ports and is safe for concurrent use.
type Client struct {
	session     *http.Client
	apiKey      string
	searchURL   string
	routerURL   string
	revGeoURL   string
	matrixURL   string
	sequenceURL string
}

func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("backend api key is empty")
	}

	c := &Client{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		searchURL:   "https://discover.search.hereapi.com/v1",
		routerURL:   "https://router.hereapi.com/v8",
		revGeoURL:   "https://revgeocode.search.hereapi.com/v1",
		matrixURL:   "https://matrix.router.hereapi.com/v8",
		sequenceURL: "https://wse.ls.hereapi.com/2",
	}

	return c, nil
}

// WithBaseURL points every endpoint at one host. Used in tests and for
// self-hosted backend deployments.
func (c *Client) WithBaseURL(base string) *Client {
	c.searchURL = base + "/v1"
	c.routerURL = base + "/v8"
	c.revGeoURL = base + "/v1"
	c.matrixURL = base + "/v8"
	c.sequenceURL = base + "/2"
	return c
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	endpoint string,
	query url.Values,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("apiKey", c.apiKey)
	req.URL.RawQuery = query.Encode()

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx
// responses) using exponential backoff while respecting context
// cancellation.
func (c *Client) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

// notFound reports whether an error is the backend's 404.
func notFound(err error) bool {
	var he *httpStatusError
	return errors.As(err, &he) && he.Code == http.StatusNotFound
}
