package rest

import (
	"context"
	"io"
	"net/http"
)

// FromCDN downloads an asset (avatar, icon, attachment) from the Discord CDN.
// CDN URLs are not rate limited the way API routes are, so the request
// bypasses the bucket machinery.
func (c *Client) FromCDN(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		return nil, &NotFoundError{HTTPError{Status: resp.StatusCode, Message: "asset not found"}}
	case http.StatusForbidden:
		return nil, &ForbiddenError{HTTPError{Status: resp.StatusCode, Message: "cannot retrieve asset"}}
	default:
		return nil, &HTTPError{Status: resp.StatusCode, Message: "failed to get asset"}
	}
}
