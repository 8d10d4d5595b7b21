// Package unfurl fetches title/description/image metadata for a URL from a
// microlink-style third-party API. Failures are non-fatal by design of the
// callers: the operator can always fill the form manually.
package unfurl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrUnavailable covers every way the enrichment call can fail: network
// errors, timeouts, non-200 responses, and unsuccessful API statuses.
var ErrUnavailable = errors.New("unfurl service unavailable")

// Metadata is the subset of the API response the editor merges into a draft.
type Metadata struct {
	Title       string
	Description string
	ImageURL    string
}

// Client calls the metadata API with a bounded timeout.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates an unfurl client. The timeout bounds the whole request;
// callers may cancel earlier through the context.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Unfurl fetches metadata for rawURL. The API responds with a status
// discriminator; anything but "success" is reported as ErrUnavailable.
func (c *Client) Unfurl(ctx context.Context, rawURL string) (*Metadata, error) {
	reqURL := c.endpoint + "?url=" + url.QueryEscape(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
		Data   struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Image       struct {
				URL string `json:"url"`
			} `json:"image"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if body.Status != "success" {
		return nil, fmt.Errorf("%w: status %q", ErrUnavailable, body.Status)
	}

	return &Metadata{
		Title:       body.Data.Title,
		Description: body.Data.Description,
		ImageURL:    body.Data.Image.URL,
	}, nil
}
