package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apisnip/apisnip/internal/codec"
)

func TestLoadLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"openapi": "3.0.3"}`), 0o644))

	src, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, path, src.Location)
	require.Equal(t, codec.FormatJSON, src.Format)
	require.JSONEq(t, `{"openapi": "3.0.3"}`, string(src.Data))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading spec file")
}

func TestLoadURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("openapi: 3.0.3\n"))
	}))
	defer server.Close()

	src, err := Load(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, codec.FormatYAML, src.Format)
	require.Equal(t, "openapi: 3.0.3\n", string(src.Data))
}

func TestLoadURLErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := Load(context.Background(), server.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status")
}
