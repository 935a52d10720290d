// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"context"
	"path/filepath"
	"testing"

	"codeberg.org/oliverandrich/go-random-image/internal/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestIsLocalhost(t *testing.T) {
	tests := []struct {
		host     string
		expected bool
	}{
		{"", true},
		{"localhost", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"app.localhost", true},
		{"example.com", false},
		{"192.168.1.1", false},
		{"localhost.com", false}, // not a real localhost
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsLocalhost(tt.host))
		})
	}
}

func TestResolveTLSMode(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		tls      TLSConfig
		expected string
	}{
		{"explicit off", "example.com", TLSConfig{Mode: "off"}, TLSModeOff},
		{"explicit acme", "localhost", TLSConfig{Mode: "acme"}, TLSModeACME},
		{"explicit manual upper case", "localhost", TLSConfig{Mode: "MANUAL"}, TLSModeManual},
		{"auto localhost", "localhost", TLSConfig{Mode: "auto", Email: "a@example.com"}, TLSModeOff},
		{"auto with cert files", "example.com", TLSConfig{Mode: "auto", CertFile: "c.pem", KeyFile: "k.pem"}, TLSModeManual},
		{"auto with email", "example.com", TLSConfig{Mode: "auto", Email: "a@example.com"}, TLSModeACME},
		{"auto with email on IP", "192.168.1.1", TLSConfig{Mode: "auto", Email: "a@example.com"}, TLSModeOff},
		{"auto remote without credentials", "example.com", TLSConfig{Mode: ""}, TLSModeOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{Host: tt.host}, TLS: tt.tls}
			assert.Equal(t, tt.expected, cfg.ResolveTLSMode())
		})
	}
}

func TestBuildBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		expected string
	}{
		{
			name: "localhost HTTP default port",
			cfg: &Config{
				Server: ServerConfig{Host: "localhost", Port: 80},
				TLS:    TLSConfig{Mode: "off"},
			},
			expected: "http://localhost",
		},
		{
			name: "localhost HTTP custom port",
			cfg: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8080},
				TLS:    TLSConfig{Mode: "auto"},
			},
			expected: "http://localhost:8080",
		},
		{
			name: "manual TLS custom port",
			cfg: &Config{
				Server: ServerConfig{Host: "example.com", Port: 8443},
				TLS:    TLSConfig{Mode: "manual"},
			},
			expected: "https://example.com:8443",
		},
		{
			name: "ACME mode forces port 443",
			cfg: &Config{
				Server: ServerConfig{Host: "example.com", Port: 8080},
				TLS:    TLSConfig{Mode: "acme"},
			},
			expected: "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildBaseURL(tt.cfg))
		})
	}
}

func TestImagesConfig_Dir(t *testing.T) {
	cfg := ImagesConfig{
		BaseDir:       filepath.FromSlash("/srv/www"),
		DesktopFolder: "images_pc",
		MobileFolder:  "images_mobile",
	}

	assert.Equal(t, filepath.FromSlash("/srv/www/images_pc"), cfg.Dir(device.Desktop))
	assert.Equal(t, filepath.FromSlash("/srv/www/images_mobile"), cfg.Dir(device.Mobile))
}

func TestNormalizeExtension(t *testing.T) {
	assert.Equal(t, ".webp", normalizeExtension("webp"))
	assert.Equal(t, ".webp", normalizeExtension(" .webp "))
	assert.Empty(t, normalizeExtension(""))
}

func TestFlags(t *testing.T) {
	flags := Flags()

	flagNames := make(map[string]bool)
	for _, f := range flags {
		for _, name := range f.Names() {
			flagNames[name] = true
		}
	}

	for _, name := range []string{
		"host", "port", "base-url", "log-level", "tls-mode",
		"images-dir", "document-root", "desktop-folder", "mobile-folder",
		"extension", "mobile-keywords", "gallery-bing-api", "gallery-wgzdy-api",
	} {
		assert.True(t, flagNames[name], "should have %s flag", name)
	}
}

func TestNewFromCLI(t *testing.T) {
	app := &cli.Command{
		Name:  "test",
		Flags: Flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg := NewFromCLI(cmd)

			assert.Equal(t, "localhost", cfg.Server.Host)
			assert.Equal(t, 8080, cfg.Server.Port)
			assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
			assert.True(t, cfg.Server.ServeImages)
			assert.Equal(t, "info", cfg.Log.Level)
			assert.Equal(t, "text", cfg.Log.Format)

			assert.True(t, filepath.IsAbs(cfg.Images.BaseDir))
			assert.True(t, filepath.IsAbs(cfg.Images.DocumentRoot))
			assert.Equal(t, "images_pc", cfg.Images.DesktopFolder)
			assert.Equal(t, "images_mobile", cfg.Images.MobileFolder)
			assert.Equal(t, ".webp", cfg.Images.Extension)
			assert.Equal(t, device.DefaultMobileKeywords, cfg.Images.MobileKeywords)

			assert.Equal(t, "https://img.mod.wiki/bing/api.php", cfg.Gallery.BingAPI)
			assert.NoError(t, cfg.Validate())

			return nil
		},
	}

	require.NoError(t, app.Run(context.Background(), []string{"test"}))
}

func TestNewFromCLI_WithCustomValues(t *testing.T) {
	dir := t.TempDir()

	app := &cli.Command{
		Name:  "test",
		Flags: Flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg := NewFromCLI(cmd)

			assert.Equal(t, "0.0.0.0", cfg.Server.Host)
			assert.Equal(t, 9000, cfg.Server.Port)
			assert.Equal(t, "debug", cfg.Log.Level)
			assert.Equal(t, dir, cfg.Images.BaseDir)
			assert.Equal(t, ".jpg", cfg.Images.Extension)
			assert.Equal(t, []string{"kindle", "ipad"}, cfg.Images.MobileKeywords)
			assert.False(t, cfg.Server.ServeImages)

			return nil
		},
	}

	args := []string{
		"test",
		"--host", "0.0.0.0",
		"--port", "9000",
		"--log-level", "debug",
		"--images-dir", dir,
		"--extension", "jpg",
		"--mobile-keywords", "kindle",
		"--mobile-keywords", "ipad",
		"--serve-images=false",
	}
	require.NoError(t, app.Run(context.Background(), args))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Host: "localhost", Port: 8080, BaseURL: "http://localhost:8080"},
			Log:    LogConfig{Level: "info", Format: "text"},
			TLS:    TLSConfig{Mode: "auto"},
			Images: ImagesConfig{
				BaseDir:       "/srv/www",
				DesktopFolder: "images_pc",
				MobileFolder:  "images_mobile",
				Extension:     ".webp",
			},
			Gallery: GalleryConfig{BingAPI: "https://img.mod.wiki/bing/api.php"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
		{"unknown TLS mode", func(c *Config) { c.TLS.Mode = "selfsigned" }},
		{"invalid ACME email", func(c *Config) { c.TLS.Email = "not-an-email" }},
		{"missing base dir", func(c *Config) { c.Images.BaseDir = "" }},
		{"folder with separator", func(c *Config) { c.Images.MobileFolder = "../etc" }},
		{"dot dot folder", func(c *Config) { c.Images.DesktopFolder = ".." }},
		{"extension too short", func(c *Config) { c.Images.Extension = "." }},
		{"invalid gallery URL", func(c *Config) { c.Gallery.WgzdyAPI = "not a url" }},
		{"base URL without scheme", func(c *Config) { c.Server.BaseURL = "localhost:8080" }},
		{"base URL with ftp scheme", func(c *Config) { c.Server.BaseURL = "ftp://example.com" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_BindAllHost(t *testing.T) {
	cmd := &cli.Command{
		Name:  "app",
		Flags: Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := NewFromCLI(cmd)
			assert.Equal(t, "http://0.0.0.0:8080", cfg.Server.BaseURL)
			return cfg.Validate()
		},
	}

	require.NoError(t, cmd.Run(context.Background(), []string{"app", "--host", "0.0.0.0"}))
}

func TestValidate_IPBaseURLs(t *testing.T) {
	for _, base := range []string{"http://0.0.0.0:8080", "https://192.168.1.10", "http://[::1]:8080"} {
		t.Run(base, func(t *testing.T) {
			cfg := &Config{
				Server: ServerConfig{Host: "0.0.0.0", Port: 8080, BaseURL: base},
				Images: ImagesConfig{
					BaseDir:       "/srv/www",
					DesktopFolder: "images_pc",
					MobileFolder:  "images_mobile",
					Extension:     ".webp",
				},
			}
			assert.NoError(t, cfg.Validate())
		})
	}
}
