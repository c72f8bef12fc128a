package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError reports a non-200 response from the job board. The run degrades
// to zero records instead of crashing; the operator sees the status code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("job board returned status %d", e.Code)
}

type Fetcher struct {
	hc  *http.Client
	lim *hostLimiter
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		hc:  &http.Client{Timeout: 20 * time.Second},
		lim: newHostLimiter(1, 1),
	}
}

// Fetch GETs the search page and returns its body. A non-200 status comes
// back as *StatusError; transport-level failures (DNS, TLS, refused) are
// fatal for the run and surface as plain errors.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := f.lim.waitURL(ctx, rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "JobNotify/1.0 (+local)")

	res, err := f.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("get search page: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", &StatusError{Code: res.StatusCode}
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read search page: %w", err)
	}
	return string(b), nil
}
