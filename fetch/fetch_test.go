package fetch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Chrome")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title> Hello </title></head><body><p>x</p></body></html>`))
	}))
	defer srv.Close()

	page, err := New(Options{}).Fetch(context.Background(), srv.URL+"/a")
	require.NoError(t, err)
	assert.Equal(t, "Hello", page.Title)
	assert.Equal(t, 200, page.StatusCode)
	assert.Equal(t, srv.URL+"/a", page.FinalURL)
	assert.Contains(t, page.HTML, "<p>x</p>")
}

func TestFetchGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte(`<html><title>Zipped</title></html>`))
	require.NoError(t, gz.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	page, err := New(Options{}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Zipped", page.Title)
}

func TestFetchBodyCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	defer srv.Close()

	page, err := New(Options{MaxBodyBytes: 100}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, page.HTML, 100)
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	c := New(Options{})

	_, err := c.Fetch(context.Background(), srv.URL+"/missing")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 404, statusErr.StatusCode)

	_, err = c.Fetch(context.Background(), srv.URL+"/json")
	assert.ErrorIs(t, err, ErrNotHTML)

	for _, bad := range []string{"", "ftp://example.com", "not a url", "http://"} {
		_, err = c.Fetch(context.Background(), bad)
		assert.Error(t, err, bad)
	}
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "T", extractTitle("<title>T</title>"))
	assert.Equal(t, "", extractTitle("<title></title><p>body</p>"))
	assert.Equal(t, "", extractTitle("no markup"))
}
