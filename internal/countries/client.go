// Package countries fetches the selectable country names from a public
// directory service.
package countries

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultURL asks the REST Countries service for names only.
const DefaultURL = "https://restcountries.com/v3.1/all?fields=name"

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 10 * time.Second

// entry is one element of the response; only name.common is consumed.
type entry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
}

// Client performs the one-shot country list GET. No retry, no cache.
type Client struct {
	http *resty.Client
	url  string
}

// NewClient creates a client for url. Zero values select the defaults.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		url: url,
	}
}

// FetchCountries returns the common names in response order.
// Entries without a name are skipped.
func (c *Client) FetchCountries(ctx context.Context) ([]string, error) {
	var payload []entry
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&payload).
		ForceContentType("application/json").
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("country list request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("country list request: unexpected status %d", resp.StatusCode())
	}

	names := make([]string, 0, len(payload))
	for _, e := range payload {
		if e.Name.Common != "" {
			names = append(names, e.Name.Common)
		}
	}
	return names, nil
}

// Static serves a fixed list; used when remote fetching is disabled.
type Static []string

// FetchCountries returns a copy of the list.
func (s Static) FetchCountries(context.Context) ([]string, error) {
	return slices.Clone([]string(s)), nil
}
