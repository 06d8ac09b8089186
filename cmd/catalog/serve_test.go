package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tominotrumpets/internal/config"
	"tominotrumpets/internal/models"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Store:   config.StoreConfig{Backend: config.BackendMemory},
		Catalog: config.CatalogConfig{DeletePolicy: models.DeleteOrphan},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func TestMemoryBackendServesSeedData(t *testing.T) {
	cfg := memoryConfig()

	catalog, closer, err := openStore(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })

	srv := httptest.NewServer(newHTTPHandler(cfg, catalog))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/songs/2")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRunServerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runServer(ctx, "127.0.0.1:0", http.NotFoundHandler())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "catalog dev\n", out.String())
}
