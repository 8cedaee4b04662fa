package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Silence console logging in tests.
	testInitLogger()
}

func TestHTTPClientFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("pub struct FirecrackerMetrics {}"))
	}))
	defer srv.Close()

	c := NewHTTPClient()
	data, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "pub struct FirecrackerMetrics {}", string(data))
	assert.Equal(t, "fcgen", gotUA)
}

func TestHTTPClientFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPClient().Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "not here")
}

func TestHTTPClientFetchNetworkError(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient().Fetch(context.Background(), url)
	require.Error(t, err)

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestHTTPClientContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewHTTPClient().Fetch(ctx, srv.URL)
	assert.Error(t, err)
}

func TestHTTPClientOptions(t *testing.T) {
	custom := &http.Client{Timeout: 3 * time.Second}
	c := NewHTTPClient(
		WithHTTPClient(custom),
		WithUserAgent("fcgen-test"),
		WithTimeout(time.Second),
	)

	assert.Same(t, custom, c.httpClient)
	assert.Equal(t, "fcgen-test", c.userAgent)
	// Custom client keeps its own timeout.
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
}
