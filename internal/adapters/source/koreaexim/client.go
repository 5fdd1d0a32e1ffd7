// Package koreaexim wraps the Korea Eximbank daily exchange-rate endpoint.
//
// The endpoint is a plain HTTP GET with query parameters
// {authkey, searchdate(yyyyMMdd), data} returning a JSON array of quote rows.
// Each row carries a result code: 1 success, 2 bad data code, 3 bad auth key,
// 4 daily quota exceeded. The auth key has a documented quota of 1000 calls
// per day, so callers pace themselves; this client only retries transient
// transport failures.
package koreaexim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/apperrors"
	"github.com/devjsik/exchange_rate_app/internal/core/ports"
)

const searchDateLayout = "20060102"

// result codes from the upstream API
const (
	resultSuccess       = 1
	resultBadDataCode   = 2
	resultBadAuthKey    = 3
	resultQuotaExceeded = 4
)

// quoteRow mirrors one element of the upstream JSON array.
type quoteRow struct {
	Result       int    `json:"result"`
	CurUnit      string `json:"cur_unit"`
	CurName      string `json:"cur_nm"`
	DealBaseRate string `json:"deal_bas_r"`
}

// Client fetches daily quote sets over HTTP with bounded retry.
type Client struct {
	baseURL    string
	authKey    string
	dataCode   string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client. timeout covers connect and read per attempt.
func NewClient(baseURL, authKey, dataCode string, timeout time.Duration, maxRetries int, retryDelay time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		authKey:    authKey,
		dataCode:   dataCode,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch retrieves the raw quote set for one business date. Transient failures
// (network errors, 5xx, 429) are retried with linear backoff; definitive
// rejections fail immediately with a classified error. An empty array is a
// successful fetch of zero quotes.
func (c *Client) Fetch(ctx context.Context, date time.Time) ([]ports.RawQuote, error) {
	reqURL := c.buildURL(date)

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		rows, status, err := c.doRequest(ctx, reqURL)
		if err == nil && status == http.StatusOK {
			return c.classify(rows, date)
		}

		retryStatus := status
		if err != nil {
			// Transport and body-decode failures are transient no matter
			// what status the wire reported.
			lastErr = err
			retryStatus = 0
		} else {
			lastErr = fmt.Errorf("unexpected status %d from rate source", status)
		}

		delay, retryable := RetryDelay(attempt, retryStatus, c.retryDelay)
		if !retryable {
			return nil, fmt.Errorf("%w: status %d", apperrors.ErrSourceRejected, status)
		}
		if attempt == c.maxRetries {
			break
		}

		c.logger.Warn("Rate source call failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("status", status),
			slog.Duration("delay", delay),
			slog.String("error", lastErr.Error()),
		)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, ctx.Err())
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, lastErr)
}

func (c *Client) buildURL(date time.Time) string {
	params := url.Values{}
	params.Set("authkey", c.authKey)
	params.Set("searchdate", date.Format(searchDateLayout))
	params.Set("data", c.dataCode)
	return c.baseURL + "?" + params.Encode()
}

// doRequest performs one attempt. status is 0 on transport failure.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]quoteRow, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	var rows []quoteRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return rows, resp.StatusCode, nil
}

// classify inspects the result codes and converts successful rows.
func (c *Client) classify(rows []quoteRow, date time.Time) ([]ports.RawQuote, error) {
	if len(rows) == 0 {
		// The source publishes nothing on weekends and before the daily
		// announcement; that is not an error at this layer.
		return nil, nil
	}

	switch rows[0].Result {
	case resultSuccess:
	case resultBadDataCode:
		return nil, fmt.Errorf("%w: bad data code", apperrors.ErrSourceRejected)
	case resultBadAuthKey:
		return nil, fmt.Errorf("%w: bad auth key", apperrors.ErrSourceRejected)
	case resultQuotaExceeded:
		return nil, fmt.Errorf("%w: daily call quota exceeded", apperrors.ErrSourceRejected)
	default:
		return nil, fmt.Errorf("%w: unknown result code %d", apperrors.ErrSourceRejected, rows[0].Result)
	}

	quotes := make([]ports.RawQuote, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, ports.RawQuote{
			CurrencySymbol: row.CurUnit,
			CurrencyName:   row.CurName,
			DealBaseRate:   row.DealBaseRate,
		})
	}
	c.logger.Debug("Fetched quote set",
		slog.String("date", date.Format(searchDateLayout)),
		slog.Int("quotes", len(quotes)),
	)
	return quotes, nil
}

// RetryDelay is the retry policy as a pure function of the attempt number and
// the HTTP status of the failed call (0 for a transport error). It returns
// the backoff before the next attempt and whether retrying is allowed at all.
func RetryDelay(attempt, status int, base time.Duration) (time.Duration, bool) {
	transient := status == 0 || status == http.StatusTooManyRequests || status >= 500
	if !transient {
		return 0, false
	}
	return time.Duration(attempt) * base, true
}

var _ ports.RateSource = (*Client)(nil)
