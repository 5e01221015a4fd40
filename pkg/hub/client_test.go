package hub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, endpoint string, opts ...Option) *Client {
	t.Helper()

	options := append([]Option{
		WithEndpoint(endpoint),
		WithToken("hf_test"),
		WithRetryConfig(2, time.Millisecond),
	}, opts...)

	config, err := NewConfig(options...)
	require.NoError(t, err)

	client, err := NewClient(config)
	require.NoError(t, err)
	return client
}

func TestFileDownload(t *testing.T) {
	var gotAuth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get(AuthorizationHeader))
		assert.Equal(t, "/acme/demo/resolve/main/weights.bin", r.URL.Path)
		_, _ = w.Write([]byte("model-bytes"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	destDir := t.TempDir()

	path, err := client.FileDownload(context.Background(), "acme/demo", "weights.bin", destDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(destDir, "weights.bin"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "model-bytes", string(content))
	assert.Equal(t, "Bearer hf_test", gotAuth.Load())

	// no temporary leftovers
	_, err = os.Stat(path + tmpSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestFileDownloadNestedPathUsesBaseName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acme/demo/resolve/main/unet/model.safetensors", r.URL.Path)
		_, _ = w.Write([]byte("x"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	destDir := t.TempDir()

	path, err := client.FileDownload(context.Background(), "acme/demo", "unet/model.safetensors", destDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "model.safetensors"), path)
}

func TestFileDownloadEntryNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.FileDownload(context.Background(), "acme/demo", "missing.bin", t.TempDir())
	require.Error(t, err)

	var entryErr *EntryNotFoundError
	assert.ErrorAs(t, err, &entryErr)
}

func TestFileDownloadGatedRepo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.FileDownload(context.Background(), "acme/gated", "weights.bin", t.TempDir())
	require.Error(t, err)

	var gatedErr *GatedRepoError
	assert.ErrorAs(t, err, &gatedErr)
}

func TestFileDownloadRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("eventually"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	destDir := t.TempDir()

	path, err := client.FileDownload(context.Background(), "acme/demo", "weights.bin", destDir)
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "eventually", string(content))
}

func TestFileDownloadExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.FileDownload(context.Background(), "acme/demo", "weights.bin", t.TempDir())
	assert.ErrorContains(t, err, "after 3 attempts")
}

func TestHasToken(t *testing.T) {
	config, err := NewConfig(WithToken(""))
	require.NoError(t, err)
	client, err := NewClient(config)
	require.NoError(t, err)
	assert.False(t, client.HasToken())

	config, err = NewConfig(WithToken("hf_x"))
	require.NoError(t, err)
	client, err = NewClient(config)
	require.NoError(t, err)
	assert.True(t, client.HasToken())
}
