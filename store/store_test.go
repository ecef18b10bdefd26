package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcherReturnsBodyUnderLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5 * time.Second)
	body, err := f.Fetch(context.Background(), srv.URL, 100)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestHTTPFetcherAbortsOverLengthCap(t *testing.T) {
	payload := strings.Repeat("a", 10*1024*1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5 * time.Second)
	_, err := f.Fetch(context.Background(), srv.URL, 16384)
	require.Error(t, err)
	var mismatch ErrDownloadLengthMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestHTTPFetcherAllowsExactlyAtLimit(t *testing.T) {
	payload := strings.Repeat("b", 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5 * time.Second)
	body, err := f.Fetch(context.Background(), srv.URL, int64(len(payload)))
	require.NoError(t, err)
	assert.Len(t, body, len(payload))
}

func TestHTTPFetcherTranslatesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5 * time.Second)
	_, err := f.Fetch(context.Background(), srv.URL, 100)
	require.Error(t, err)
	var notFound ErrMetaNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestHTTPFetcherTranslatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5 * time.Second)
	_, err := f.Fetch(context.Background(), srv.URL, 100)
	require.Error(t, err)
	var unavailable ErrServerUnavailable
	require.ErrorAs(t, err, &unavailable)
}

func TestLocalStoreRoundTripsMetadataAtomically(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(filepath.Join(dir, "metadata"), filepath.Join(dir, "targets"))
	require.NoError(t, err)

	require.NoError(t, s.SetMetadata("root", []byte(`{"a":1}`)))
	got, err := s.GetMetadata("root")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	entries, err := os.ReadDir(filepath.Join(dir, "metadata"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".tuf-tmp-"), "temp file leaked: %s", e.Name())
	}
}

func TestLocalStoreRoundTripsNestedTargetPaths(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(filepath.Join(dir, "metadata"), filepath.Join(dir, "targets"))
	require.NoError(t, err)

	require.NoError(t, s.SetTarget("a/b/c.txt", []byte("payload")))
	got, err := s.GetTarget("a/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestLocalStoreGetMetadataMissingReturnsError(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(filepath.Join(dir, "metadata"), filepath.Join(dir, "targets"))
	require.NoError(t, err)

	_, err = s.GetMetadata("nonexistent")
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
