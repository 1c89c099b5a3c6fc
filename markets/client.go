package markets

import (
	"net/http"
	"strings"
	"time"

	"github.com/mrcliffo/nfl-market-pulse/metrics"
)

const (
	DefaultGammaURL       = "https://gamma-api.polymarket.com"
	DefaultClobURL        = "https://clob.polymarket.com"
	DefaultTimeout        = 10 * time.Second
	DefaultPageSize       = 100
	DefaultMaxConcurrency = 8
)

// DefaultKeywords select football events from the general listing.
var DefaultKeywords = []string{"NFL", "Super Bowl", "AFC", "NFC", "Pro Bowl"}

// Client talks to the Polymarket Gamma and CLOB REST APIs.
type Client struct {
	gammaURL       string
	clobURL        string
	httpClient     *http.Client
	metrics        *metrics.Metrics
	pageSize       int
	maxConcurrency int
	keywords       []string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a client. Empty URLs fall back to the public endpoints.
func NewClient(gammaURL, clobURL string, opts ...ClientOption) *Client {
	if gammaURL == "" {
		gammaURL = DefaultGammaURL
	}
	if clobURL == "" {
		clobURL = DefaultClobURL
	}

	c := &Client{
		gammaURL: strings.TrimRight(gammaURL, "/"),
		clobURL:  strings.TrimRight(clobURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		pageSize:       DefaultPageSize,
		maxConcurrency: DefaultMaxConcurrency,
		keywords:       DefaultKeywords,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the per-call HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithPageSize bounds the events listing.
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithMaxConcurrency caps parallel detail fetches during consolidation.
func WithMaxConcurrency(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxConcurrency = n
		}
	}
}

// WithKeywords replaces the title keywords. An empty list keeps the defaults.
func WithKeywords(keywords []string) ClientOption {
	return func(c *Client) {
		var kept []string
		for _, k := range keywords {
			if k = strings.TrimSpace(k); k != "" {
				kept = append(kept, k)
			}
		}
		if len(kept) > 0 {
			c.keywords = kept
		}
	}
}
