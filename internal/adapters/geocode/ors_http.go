package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// httpStatusError carries a non-2xx ORS response; Body is capped at 4 KiB.
type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("ors returned %d: %s", e.Code, e.Body)
}

// retryable reports whether another attempt may succeed: throttling, upstream
// 5xx and transport errors. Context errors and 4xx responses are final.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var he *httpStatusError
	if errors.As(err, &he) {
		return he.Code == http.StatusTooManyRequests || he.Code >= 500
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// newGetRequest builds an authenticated GET for path with params as the query string.
func (o *ORSReverseGeocoder) newGetRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	u, err := url.Parse(o.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", o.baseURL+path, err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json, application/geo+json")

	return req, nil
}

// getOnce performs one attempt and decodes a 2xx body into out.
func (o *ORSReverseGeocoder) getOnce(ctx context.Context, path string, params url.Values, out any) error {
	req, err := o.newGetRequest(ctx, path, params)
	if err != nil {
		return err
	}

	resp, err := o.session.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// getJSON retries getOnce with exponential backoff until it succeeds, the
// error is final, attempts run out, or ctx ends.
func (o *ORSReverseGeocoder) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	backoff := o.initialBackoff

	for attempt := 1; ; attempt++ {
		err := o.getOnce(ctx, path, params, out)
		if err == nil {
			return nil
		}
		if attempt >= o.maxAttempts || !retryable(err) {
			return fmt.Errorf("GET %s (attempt %d/%d): %w", path, attempt, o.maxAttempts, err)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
}
