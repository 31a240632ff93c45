package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"index-observer/src/helpers"
	"index-observer/src/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsBody(t *testing.T) {
	var gotUA, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("v")
		w.Write([]byte("index_name,index_date\n"))
	}))
	defer ts.Close()

	nm := NewHTTPNetworkManager(time.Second, logger.NewNopLogger())
	body, err := nm.Get(context.Background(), ts.URL+"/dump.csv", map[string]string{"v": "2"})

	require.NoError(t, err)
	assert.Equal(t, "index_name,index_date\n", string(body))
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, "2", gotQuery)
}

func TestGetRejectsBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	nm := NewHTTPNetworkManager(time.Second, logger.NewNopLogger())
	_, err := nm.Get(context.Background(), ts.URL, nil)

	var dsErr *helpers.DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Contains(t, err.Error(), "404")
}

func TestGetHonoursContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	nm := NewHTTPNetworkManager(5*time.Second, logger.NewNopLogger())
	_, err := nm.Get(ctx, ts.URL, nil)

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/dump.csv"))
	assert.True(t, IsRemote("HTTP://example.com/dump.csv"))
	assert.False(t, IsRemote("data/dump.csv"))
	assert.False(t, IsRemote("/srv/http/dump.csv"))
}
