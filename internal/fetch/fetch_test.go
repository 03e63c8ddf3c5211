package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbrankings/internal/source"
)

func testSource(t *testing.T, handler http.Handler) (source.Descriptor, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return source.Descriptor{
		Name:        "pfr",
		URLTemplate: srv.URL + "/years/%d/passing.htm",
	}, srv
}

func TestDownloadStagesPages(t *testing.T) {
	var hits []string
	src, _ := testSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.URL.Path)
		fmt.Fprintf(w, "<html>%s</html>", r.URL.Path)
	}))

	rawDir := t.TempDir()
	c := New()
	err := c.Download(context.Background(), rawDir, []source.Descriptor{src}, []int{2015, 2016}, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"/years/2015/passing.htm", "/years/2016/passing.htm"}, hits)

	body, err := os.ReadFile(filepath.Join(rawDir, "qb_pfr_2015.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>/years/2015/passing.htm</html>", string(body))
}

func TestDownloadSkipsStagedFiles(t *testing.T) {
	var hits int
	src, _ := testSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, "fresh")
	}))

	rawDir := t.TempDir()
	staged := filepath.Join(rawDir, "qb_pfr_2015.html")
	require.NoError(t, os.WriteFile(staged, []byte("stale"), 0o644))

	c := New()
	require.NoError(t, c.Download(context.Background(), rawDir, []source.Descriptor{src}, []int{2015}, false))
	assert.Zero(t, hits, "staged file is not re-fetched")

	require.NoError(t, c.Download(context.Background(), rawDir, []source.Descriptor{src}, []int{2015}, true))
	assert.Equal(t, 1, hits, "force re-fetches")

	body, err := os.ReadFile(staged)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(body))
}

func TestDownloadAbortsOnHTTPError(t *testing.T) {
	src, _ := testSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))

	rawDir := t.TempDir()
	c := New()
	err := c.Download(context.Background(), rawDir, []source.Descriptor{src}, []int{2015}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	_, statErr := os.Stat(filepath.Join(rawDir, "qb_pfr_2015.html"))
	assert.True(t, os.IsNotExist(statErr), "failed page leaves nothing staged")
}

func TestDownloadHonorsContext(t *testing.T) {
	src, _ := testSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New()
	err := c.Download(ctx, t.TempDir(), []source.Descriptor{src}, []int{2015}, false)
	require.Error(t, err)
}
