package koreaexim_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/adapters/source/koreaexim"
	"github.com/devjsik/exchange_rate_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, maxRetries int) *koreaexim.Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return koreaexim.NewClient(baseURL, "test-key", "AP01", 5*time.Second, maxRetries, time.Millisecond, logger)
}

func TestFetch_Success(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"result":1,"cur_unit":"USD","cur_nm":"미국 달러","deal_bas_r":"1,373.40"},
			{"result":1,"cur_unit":"JPY(100)","cur_nm":"일본 엔","deal_bas_r":"950.12"}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	quotes, err := client.Fetch(context.Background(), time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "USD", quotes[0].CurrencySymbol)
	assert.Equal(t, "1,373.40", quotes[0].DealBaseRate)
	assert.Equal(t, "JPY(100)", quotes[1].CurrencySymbol)

	assert.Equal(t, []string{"test-key"}, gotQuery["authkey"])
	assert.Equal(t, []string{"20250611"}, gotQuery["searchdate"])
	assert.Equal(t, []string{"AP01"}, gotQuery["data"])
}

func TestFetch_EmptyArrayIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	quotes, err := client.Fetch(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestFetch_ResultCodeRejections(t *testing.T) {
	tests := []struct {
		name   string
		result int
	}{
		{"bad data code", 2},
		{"bad auth key", 3},
		{"quota exceeded", 4},
		{"unknown code", 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				_, _ = w.Write([]byte(`[{"result":` + strconv.Itoa(tt.result) + `}]`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, 3)
			_, err := client.Fetch(context.Background(), time.Now())

			assert.ErrorIs(t, err, apperrors.ErrSourceRejected)
			assert.Equal(t, 1, calls, "rejections must not be retried")
		})
	}
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[{"result":1,"cur_unit":"USD","cur_nm":"미국 달러","deal_bas_r":"1373.40"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	quotes, err := client.Fetch(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Len(t, quotes, 1)
	assert.Equal(t, 3, calls)
}

func TestFetch_ExhaustsRetries(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	_, err := client.Fetch(context.Background(), time.Now())

	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
	assert.Equal(t, 3, calls)
}

func TestFetch_ClientErrorFailsImmediately(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	_, err := client.Fetch(context.Background(), time.Now())

	assert.ErrorIs(t, err, apperrors.ErrSourceRejected)
	assert.Equal(t, 1, calls)
}

func TestFetch_MalformedBodyRetries(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			// Truncated payload on a 200 response
			_, _ = w.Write([]byte(`[{"result":1,"cur_un`))
			return
		}
		_, _ = w.Write([]byte(`[{"result":1,"cur_unit":"USD","cur_nm":"미국 달러","deal_bas_r":"1373.40"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	quotes, err := client.Fetch(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Len(t, quotes, 1)
	assert.Equal(t, 3, calls)
}

func TestFetch_MalformedBodyExhaustsIntoUnavailable(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	_, err := client.Fetch(context.Background(), time.Now())

	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
	assert.NotErrorIs(t, err, apperrors.ErrSourceRejected)
	assert.Equal(t, 3, calls)
}

func TestFetch_TransportErrorRetries(t *testing.T) {
	// Point at a closed server so every attempt fails at the transport layer
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL, 2)
	_, err := client.Fetch(context.Background(), time.Now())

	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}

func TestRetryDelay(t *testing.T) {
	base := 2 * time.Second

	tests := []struct {
		name      string
		attempt   int
		status    int
		wantDelay time.Duration
		retryable bool
	}{
		{"transport failure", 1, 0, 2 * time.Second, true},
		{"server error", 2, 500, 4 * time.Second, true},
		{"bad gateway", 3, 502, 6 * time.Second, true},
		{"throttled", 1, 429, 2 * time.Second, true},
		{"bad request", 1, 400, 0, false},
		{"not found", 1, 404, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delay, retryable := koreaexim.RetryDelay(tt.attempt, tt.status, base)
			assert.Equal(t, tt.retryable, retryable)
			assert.Equal(t, tt.wantDelay, delay)
		})
	}
}
