package clients

import (
	"context"
	"io"
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

func TestGetURL_AbsoluteAndRelative(t *testing.T) {
	tmpDir := t.TempDir()

	c, err := NewLocalStorage(tmpDir, "/files", "http://example.com:8060")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com:8060/files/a.xlsx", c.GetURL("a.xlsx"))

	c2, err := NewLocalStorage(tmpDir, "/files", "")
	require.NoError(t, err)
	assert.Equal(t, "/files/b.xlsx", c2.GetURL("b.xlsx"))
}

func TestWriteAndReadFile(t *testing.T) {
	c, err := NewLocalStorage(t.TempDir(), "", "")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.ReadFile(ctx, "state.json")
	assert.ErrorIs(t, err, ErrFileNotFound)

	require.NoError(t, c.WriteFile(ctx, "state.json", []byte(`{"v":1}`)))
	require.NoError(t, c.WriteFile(ctx, "state.json", []byte(`{"v":2}`)))

	got, err := c.ReadFile(ctx, "state.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))

	leftovers, err := filepath.Glob(filepath.Join(c.BaseDir, ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestPath_RejectsTraversal(t *testing.T) {
	c, err := NewLocalStorage(t.TempDir(), "", "")
	require.NoError(t, err)

	for _, name := range []string{"", ".", "..", "../etc/passwd", "a/b.json"} {
		_, err := c.Path(name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestCleanupOlderThan(t *testing.T) {
	c, err := NewLocalStorage(t.TempDir(), "", "")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.WriteFile(ctx, "old.xlsx", []byte("x")))
	require.NoError(t, c.WriteFile(ctx, "fresh.xlsx", []byte("x")))
	require.NoError(t, c.WriteFile(ctx, "old.json", []byte("x")))

	past := time.Now().Add(-time.Hour)
	for _, name := range []string{"old.xlsx", "old.json"} {
		require.NoError(t, os.Chtimes(filepath.Join(c.BaseDir, name), past, past))
	}

	require.NoError(t, c.CleanupOlderThan("*.xlsx", 30*time.Minute))

	assert.NoFileExists(t, filepath.Join(c.BaseDir, "old.xlsx"))
	assert.FileExists(t, filepath.Join(c.BaseDir, "fresh.xlsx"))
	assert.FileExists(t, filepath.Join(c.BaseDir, "old.json"))
}

func TestSaveAndServeFileHandler(t *testing.T) {
	c, err := NewLocalStorage(t.TempDir(), "/files", "")
	require.NoError(t, err)

	content := []byte("hello world")
	saved, err := c.Save(context.Background(), "report 1.xlsx", content)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(saved, "_report 1.xlsx"))

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file := strings.TrimPrefix(r.URL.Path, "/files/")
		path, err := c.Path(file)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if idx := strings.IndexByte(file, '_'); idx >= 0 {
			file = file[idx+1:]
		}
		w.Header().Set("Content-Disposition", "attachment; filename=\""+file+"\"")
		http.ServeFile(w, r, path)
	})

	ts := httptest.NewServer(h)
	defer ts.Close()

	resp, err := http.Get(ts.URL + c.GetURL(saved))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "report 1.xlsx")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content, body)
}
