package searchapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:     baseURL,
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
	})
}

func TestSearchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "red shoes", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "24", r.URL.Query().Get("size"))
		fmt.Fprint(w, `{"total": 2, "products": [{"name":"Runner","sku":"A"},{"name":"Walker","sku":"B"}]}`)
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).SearchPage(context.Background(), "red shoes", 1, 24)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "A", got[0].SKU)
	assert.Equal(t, 1, got[0].Page)
	assert.Equal(t, 1, got[0].AbsolutePosition)
	assert.Equal(t, 2, got[1].AbsolutePosition)
}

func TestSearchPageRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"total": 1, "products": [{"name":"P","sku":"A"}]}`)
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).SearchPage(context.Background(), "q", 1, 24)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 3, calls)
}

func TestSearchPageRotatesHeadersOnRateLimit(t *testing.T) {
	var agents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents = append(agents, r.Header.Get("User-Agent"))
		if len(agents) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"total": 0, "products": []}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SearchPage(context.Background(), "q", 1, 24)
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.NotEqual(t, agents[0], agents[1])
}

func TestSearchPageGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SearchPage(context.Background(), "q", 1, 24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, calls)
}

func TestSearchCrawlsPagesWithAbsolutePositions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		switch page {
		case "1":
			fmt.Fprint(w, `{"total": 3, "products": [{"name":"P1","sku":"A"},{"name":"P2","sku":"B"}]}`)
		default:
			fmt.Fprint(w, `{"total": 3, "products": [{"name":"P3","sku":"C"}]}`)
		}
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Search(context.Background(), "q", 3, 2)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 1, got[0].AbsolutePosition)
	assert.Equal(t, 2, got[1].AbsolutePosition)
	assert.Equal(t, 3, got[2].AbsolutePosition)
	assert.Equal(t, 2, got[2].Page)
	// page 2 came back short, so page 3 was never requested
}

func TestSearchFirstPageFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), "q", 2, 24)
	require.Error(t, err)
}

func TestSearchPageContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).SearchPage(ctx, "q", 1, 24)
	require.Error(t, err)
}
