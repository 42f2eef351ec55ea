package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/contre95/lyricfetch/src/features/resolving"
)

// fetch issues a single GET with the shared client and User-Agent. Transport
// failures and 5xx/429 responses are wrapped with resolving.ErrUnreachable;
// any other non-200 status returns a nil body and no error, which providers
// treat as "no lyrics found".
func fetch(ctx context.Context, client *http.Client, userAgent, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", resolving.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", resolving.ErrUnreachable, resp.StatusCode)
	default:
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", resolving.ErrUnreachable, err)
	}
	return body, nil
}
