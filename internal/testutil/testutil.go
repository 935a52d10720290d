// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/oliverandrich/go-random-image/internal/config"
	"codeberg.org/oliverandrich/go-random-image/internal/device"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// Desktop and mobile User-Agent strings for handler tests.
const (
	DesktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	MobileUA  = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36"
)

// WriteFiles creates empty files with the given names in dir.
func WriteFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("RIFF"), 0o644))
	}
}

// NewImageTree creates a document root whose images_pc and images_mobile
// folders hold the given files, and returns a config pointing at it.
// The base directory is the document root, so web paths look like /images_pc/a.webp.
func NewImageTree(t *testing.T, desktop, mobile []string) *config.Config {
	t.Helper()
	root := t.TempDir()

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: 8080, BaseURL: "http://localhost:8080", ServeImages: true},
		Log:    config.LogConfig{Level: "info", Format: "text"},
		TLS:    config.TLSConfig{Mode: "off"},
		Images: config.ImagesConfig{
			BaseDir:        root,
			DesktopFolder:  "images_pc",
			MobileFolder:   "images_mobile",
			DocumentRoot:   root,
			Extension:      ".webp",
			MobileKeywords: device.DefaultMobileKeywords,
		},
		Gallery: config.GalleryConfig{
			ACGURL:   "https://img.mod.wiki/acg/",
			BingAPI:  "https://img.mod.wiki/bing/api.php",
			WgzdyAPI: "https://img.mod.wiki/wgzdy/",
		},
	}

	require.NoError(t, os.MkdirAll(cfg.Images.Dir(device.Desktop), 0o755))
	require.NoError(t, os.MkdirAll(cfg.Images.Dir(device.Mobile), 0o755))
	WriteFiles(t, cfg.Images.Dir(device.Desktop), desktop...)
	WriteFiles(t, cfg.Images.Dir(device.Mobile), mobile...)

	return cfg
}

// NewEchoContextWithHeaders creates an Echo context with custom headers.
func NewEchoContextWithHeaders(e *echo.Echo, method, path string, body io.Reader, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
