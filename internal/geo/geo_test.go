package geo

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func buildArchive(t *testing.T, members map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFetchDownloadsAndExtracts(t *testing.T) {
	archive := buildArchive(t, map[string]string{
		"nested/areas.json": `[{"name":"Pacific Northwest"}]`,
		"readme.txt":        "not extracted",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer srv.Close()

	destDir := t.TempDir()
	extractDir, err := Fetch(context.Background(), srv.URL, destDir, Options{}, testLogger)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(extractDir, "areas.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Pacific Northwest"}]`, string(data))

	_, err = os.Stat(filepath.Join(extractDir, "readme.txt"))
	assert.True(t, os.IsNotExist(err), "non-JSON members stay in the archive")
}

// A cached archive is reused on re-runs; Force goes back to the network.
func TestFetchReusesCachedArchive(t *testing.T) {
	archive := buildArchive(t, map[string]string{"areas.json": `[]`})
	var downloads atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		downloads.Add(1)
		w.Write(archive)
	}))
	defer srv.Close()

	destDir := t.TempDir()
	ctx := context.Background()

	_, err := Fetch(ctx, srv.URL, destDir, Options{}, testLogger)
	require.NoError(t, err)
	require.Equal(t, int32(1), downloads.Load())

	_, err = Fetch(ctx, srv.URL, destDir, Options{}, testLogger)
	require.NoError(t, err)
	assert.Equal(t, int32(1), downloads.Load(), "cached archive must not be re-downloaded")

	_, err = Fetch(ctx, srv.URL, destDir, Options{Force: true}, testLogger)
	require.NoError(t, err)
	assert.Equal(t, int32(2), downloads.Load(), "force fetches a fresh archive")
}

// With a cached archive on disk the dataset URL is not needed at all.
func TestFetchCachedArchiveNeedsNoURL(t *testing.T) {
	destDir := t.TempDir()
	archive := buildArchive(t, map[string]string{"areas.json": `[]`})
	require.NoError(t, os.WriteFile(filepath.Join(destDir, "geography.zip"), archive, 0o644))

	extractDir, err := Fetch(context.Background(), "", destDir, Options{}, testLogger)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(extractDir, "areas.json"))
	assert.NoError(t, err)
}

func TestFetchSkipDownloadMissingArchive(t *testing.T) {
	_, err := Fetch(context.Background(), "", t.TempDir(), Options{SkipDownload: true}, testLogger)
	assert.Error(t, err, "skip-download with no cached archive cannot extract")
}
