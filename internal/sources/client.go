package sources

import (
	"context"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/corpix/uarand"
	"github.com/pkg/errors"

	"github.com/asifrahman/travelscout/internal/utils"
)

// Client is the shared HTTP fetcher for HTML-scraping sources. Each source
// owns its own Client; there is no shared connection pool between sources.
type Client struct {
	http     *http.Client
	attempts int
	backoff  time.Duration
}

// NewClient builds a scraping client with a per-request timeout and a
// bounded fixed-backoff retry policy for transient failures.
func NewClient(timeout time.Duration, attempts int, backoff time.Duration) *Client {
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		attempts: attempts,
		backoff:  backoff,
	}
}

// GetDocument fetches url and parses the response body as HTML. The request
// carries a rotated browser user agent. Transient network errors are retried
// up to the configured attempt count; a non-200 status fails immediately.
func (c *Client) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	var doc *goquery.Document
	err := Retry(ctx, c.attempts, c.backoff, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return errors.Wrap(err, "build request")
		}
		req.Header.Set("User-Agent", uarand.GetRandom())
		req.Header.Set("Accept", "text/html")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := c.http.Do(req)
		if err != nil {
			return errors.Wrap(err, "request failed")
		}
		defer utils.Close(resp.Body)

		if resp.StatusCode != http.StatusOK {
			return errors.Errorf("unexpected status %d", resp.StatusCode)
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		return errors.Wrap(err, "parse html")
	})
	return doc, err
}

// Retry runs fn up to attempts times, waiting backoff between tries. It
// stops early when the context is done; the aggregator's timeout therefore
// bounds the total time spent retrying.
func Retry(ctx context.Context, attempts int, backoff time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
