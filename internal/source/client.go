// Package source fetches raw data from the external endpoints the workflow
// chains through. Responses are schema-less JSON decoded into plain Go values.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// FetchTimeout bounds a single data-source request.
const FetchTimeout = 10 * time.Second

// Client is an interface for retrieving a raw response from a data source.
type Client interface {
	// Fetch retrieves and decodes the JSON document at url.
	Fetch(ctx context.Context, url string) (any, error)
}

// FetchError reports a failed data-source call: either a transport error or a
// non-2xx HTTP status.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPClient is the HTTP implementation of the Client interface. A single
// underlying http.Client is shared across calls so connections are reused.
type HTTPClient struct {
	httpClient *http.Client
	log        zerolog.Logger
}

// NewHTTPClient creates a new HTTPClient with the standard fetch timeout.
func NewHTTPClient(log zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: FetchTimeout},
		log:        log,
	}
}

// Fetch retrieves the JSON document at url. Any connection failure, timeout or
// non-2xx status yields a *FetchError.
func (c *HTTPClient) Fetch(ctx context.Context, url string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	var data any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	c.log.Info().Str("endpoint", url).Msg("data source fetched")
	return data, nil
}
