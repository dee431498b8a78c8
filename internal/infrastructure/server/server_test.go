package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/deskd/internal/infrastructure/config"
	"github.com/GriffinCanCode/deskd/internal/shared/types"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Backend = backend
	cfg.Storage.DataDir = t.TempDir()
	cfg.RateLimit.Enabled = false
	return cfg
}

func newTestServer(t *testing.T, backend string) *Server {
	t.Helper()
	s, err := NewServer(testConfig(t, backend), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServerRoutes(t *testing.T) {
	s := newTestServer(t, "memory")

	for _, path := range []string{"/", "/health", "/session", "/apps", "/desktop", "/taskbar", "/settings", "/widgets"} {
		w := get(s, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Trace-ID"), path)
	}

	w := get(s, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deskd_http_requests_total")
}

func TestServerSeedsCatalog(t *testing.T) {
	s := newTestServer(t, "memory")

	_, ok := s.Session().App("File Explorer")
	assert.True(t, ok)
}

func TestServerPersistsAcrossRestarts(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)

			first, err := NewServer(cfg, nil)
			require.NoError(t, err)
			_, err = first.Session().Install(context.Background(), appNamed("Notes"))
			require.NoError(t, err)
			require.NoError(t, first.Close())

			second, err := NewServer(cfg, nil)
			require.NoError(t, err)
			defer second.Close()

			d, ok := second.Session().App("Notes")
			require.True(t, ok)
			assert.True(t, d.Installed)
		})
	}
}

func TestNewServerRejectsBadCatalog(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.Desktop.Catalog = "/does/not/exist.yaml"

	_, err := NewServer(cfg, nil)
	assert.ErrorContains(t, err, "catalog")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, "memory")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := fmt.Sprintf("http://%s/health", ln.Addr().String())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = http.Get(url)
	assert.Error(t, err)
}

func appNamed(name string) types.Descriptor {
	return types.Descriptor{Name: name}
}
