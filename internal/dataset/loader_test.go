package dataset

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	edgesURL = "https://static.example.com/data/edges.csv"
	idmapURL = "https://static.example.com/data/idmap.csv"
)

func mockedClient(t *testing.T) (*http.Client, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodGet, edgesURL,
		httpmock.NewStringResponder(http.StatusOK, testEdgesCSV))
	transport.RegisterResponder(http.MethodGet, idmapURL,
		httpmock.NewStringResponder(http.StatusOK, testIdmapCSV))
	return &http.Client{Transport: transport}, transport
}

func TestOpenRemoteSources(t *testing.T) {
	client, transport := mockedClient(t)
	cacheDir := filepath.Join(t.TempDir(), "cache")

	store, err := Open(context.Background(), Options{
		EdgesSource: edgesURL,
		IdmapSource: idmapURL,
		CacheDir:    cacheDir,
		HTTPClient:  client,
	})
	require.NoError(t, err)
	defer store.Close()

	edges, proteins := store.Counts()
	assert.Equal(t, 2, edges)
	assert.Equal(t, 3, proteins)

	calls := transport.GetCallCountInfo()
	assert.Equal(t, 1, calls["GET "+edgesURL])
	assert.Equal(t, 1, calls["GET "+idmapURL])
}

// A second load against the same cache directory must reuse the downloaded
// files instead of re-fetching.
func TestOpenReusesDownloadCache(t *testing.T) {
	client, transport := mockedClient(t)
	cacheDir := filepath.Join(t.TempDir(), "cache")

	opts := Options{
		EdgesSource: edgesURL,
		IdmapSource: idmapURL,
		CacheDir:    cacheDir,
		HTTPClient:  client,
	}

	first, err := Open(context.Background(), opts)
	require.NoError(t, err)
	first.Close()

	second, err := Open(context.Background(), opts)
	require.NoError(t, err)
	second.Close()

	calls := transport.GetCallCountInfo()
	assert.Equal(t, 1, calls["GET "+edgesURL], "edges should be downloaded exactly once")
	assert.Equal(t, 1, calls["GET "+idmapURL], "idmap should be downloaded exactly once")
}

func TestOpenDownloadFailure(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodGet, edgesURL,
		httpmock.NewStringResponder(http.StatusForbidden, "forbidden"))
	client := &http.Client{Transport: transport}

	dir := t.TempDir()
	_, err := Open(context.Background(), Options{
		EdgesSource: edgesURL,
		IdmapSource: writeTestFile(t, dir, "idmap.csv", testIdmapCSV),
		CacheDir:    filepath.Join(dir, "cache"),
		HTTPClient:  client,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), edgesURL)
	assert.Contains(t, err.Error(), "403")
}

func TestCacheFileName(t *testing.T) {
	a := cacheFileName("https://a.example.com/edges.csv")
	b := cacheFileName("https://b.example.com/edges.csv")
	assert.NotEqual(t, a, b, "distinct URLs sharing a base name must not collide")
	assert.Contains(t, a, "edges.csv")

	c := cacheFileName("https://example.com/")
	assert.NotEmpty(t, c)
}
