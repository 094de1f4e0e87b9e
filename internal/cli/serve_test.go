package cli

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	srv, closeStore, err := NewServer(ServeOptions{
		Addr:        ":0",
		Steps:       10,
		RedisAddr:   mr.Addr(),
		MachinesDir: "testdata",
	}, NewLogger(false))
	require.NoError(t, err)
	defer closeStore()

	req := httptest.NewRequest("POST", "/v1/runs", strings.NewReader(`{"machine_name": "loop"}`))
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"steps":10`)

	keys := mr.Keys()
	assert.Contains(t, keys, "turingtoy:run:index")

	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, w.Body.String(), `turingtoy_runs_total{reason="step_limit"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNewServer_FileStore(t *testing.T) {
	dir := t.TempDir()
	srv, closeStore, err := NewServer(ServeOptions{StoreDir: dir}, NewLogger(false))
	require.NoError(t, err)
	defer closeStore()

	body := `{"machine": {"table": {"s": {"_": {"write": "1", "R": "done"}}}, "blank": "_", "start state": "s"}}`
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest("POST", "/v1/runs", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/v1/runs", nil))
	assert.Contains(t, w.Body.String(), `"runs":[`)
	assert.NotContains(t, w.Body.String(), `"runs":[]`)
}

func TestNewServer_EncryptedStore(t *testing.T) {
	dir := t.TempDir()
	srv, closeStore, err := NewServer(ServeOptions{
		StoreDir: dir,
		StoreKey: "0123456789abcdef0123456789abcdef",
	}, NewLogger(false))
	require.NoError(t, err)
	defer closeStore()

	body := `{"machine": {"table": {"s": {"_": {"write": "1", "R": "done"}}}, "blank": "_", "start state": "s"}, "input": "secret"}`
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest("POST", "/v1/runs", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	raw, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.Contains(t, string(raw), `"final_state": "encrypted"`)
}

func TestNewServer_InvalidStoreKey(t *testing.T) {
	_, _, err := NewServer(ServeOptions{StoreKey: "short"}, NewLogger(false))
	assert.Error(t, err)
}
