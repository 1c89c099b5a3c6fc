package markets

import (
	"context"
	"encoding/json"
	"net/url"
)

const (
	DefaultPriceInterval = "1w"
	DefaultPriceFidelity = "60"
)

// FetchPriceHistory proxies the CLOB price history for one outcome token.
// The payload is returned as-is.
func (c *Client) FetchPriceHistory(ctx context.Context, tokenID, interval, fidelity string) (json.RawMessage, error) {
	if interval == "" {
		interval = DefaultPriceInterval
	}
	if fidelity == "" {
		fidelity = DefaultPriceFidelity
	}

	query := url.Values{}
	query.Set("market", tokenID)
	query.Set("interval", interval)
	query.Set("fidelity", fidelity)

	body, err := c.doRequest(ctx, "prices_history", buildURL(c.clobURL, "/prices-history", query))
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, &UpstreamError{Message: "unreadable response: invalid JSON"}
	}
	return json.RawMessage(body), nil
}
