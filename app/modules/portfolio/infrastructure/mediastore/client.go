package mediastore

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	downloadTimeout = 60 * time.Second
	maxRedirects    = 5

	// DefaultMaxBytes caps a single attachment download.
	DefaultMaxBytes = 50 << 20
)

// NewDownloadClient returns an *http.Client with a timeout and redirect limit
// suitable for fetching Discord CDN attachments.
func NewDownloadClient() *http.Client {
	return &http.Client{
		Timeout: downloadTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}

func newDownloadRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; PortfolioBot/1.0)")
	req.Header.Set("Accept", "image/*, video/*, */*")
	return req, nil
}
