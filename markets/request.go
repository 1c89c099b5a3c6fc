package markets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/mrcliffo/nfl-market-pulse/logging"
)

// UpstreamError is any failure talking to Polymarket. StatusCode is 0 when no
// response was received (transport error or timeout).
type UpstreamError struct {
	StatusCode int
	Message    string
	Body       []byte

	timedOut bool
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("Polymarket API error: %d %s", e.StatusCode, e.Message)
}

// Timeout reports whether the call gave up waiting.
func (e *UpstreamError) Timeout() bool {
	return e.timedOut
}

// doRequest performs one GET. No retries: callers decide.
func (c *Client) doRequest(ctx context.Context, endpoint, fullURL string) (body []byte, err error) {
	start := time.Now()
	defer func() {
		c.metrics.RecordUpstream(endpoint, time.Since(start).Seconds(), err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Log.Warnf("MARKETS: GET %s failed: %v", fullURL, err)
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Log.Warnf("MARKETS: GET %s returned %d", fullURL, resp.StatusCode)
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}

func transportError(err error) *UpstreamError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &UpstreamError{Message: "request timed out", timedOut: true}
	}
	return &UpstreamError{Message: err.Error()}
}

// get performs a GET and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, endpoint, base, path string, query url.Values, result any) error {
	body, err := c.doRequest(ctx, endpoint, buildURL(base, path, query))
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &UpstreamError{Message: fmt.Sprintf("unreadable response: %v", err)}
	}

	return nil
}

func buildURL(base, path string, query url.Values) string {
	full := base + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full
}
