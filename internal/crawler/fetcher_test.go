package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollyFetcherFetch(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	f := NewCollyFetcher(FetcherConfig{UserAgent: "test-agent/1.0", Timeout: 5 * time.Second})
	page, err := f.Fetch(context.Background(), srv.URL+"/mkb")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, page.StatusCode)
	require.Contains(t, string(page.Body), "ok")
	require.Equal(t, "test-agent/1.0", gotUA)
}

func TestCollyFetcherNonSuccessStatusIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewCollyFetcher(FetcherConfig{Timeout: 5 * time.Second})
	_, err := f.Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}

func TestCollyFetcherRefetchesURLAfterFailure(t *testing.T) {
	t.Parallel()

	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>recovered</body></html>"))
	}))
	defer srv.Close()

	f := NewCollyFetcher(FetcherConfig{Timeout: 5 * time.Second})
	url := srv.URL + "/mkb/flaky"

	_, err := f.Fetch(context.Background(), url)
	require.Error(t, err)

	page, err := f.Fetch(context.Background(), url)
	require.NoError(t, err, "a second fetch of the same URL must hit the network again")
	require.Equal(t, http.StatusOK, page.StatusCode)
	require.Contains(t, string(page.Body), "recovered")
	require.Equal(t, 2, attempts)
}

func TestCollyFetcherUnreachableHost(t *testing.T) {
	t.Parallel()

	f := NewCollyFetcher(FetcherConfig{Timeout: time.Second})
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/unreachable")
	require.Error(t, err)
}
