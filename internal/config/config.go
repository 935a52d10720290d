// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"codeberg.org/oliverandrich/go-random-image/internal/device"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server  ServerConfig
	Log     LogConfig
	TLS     TLSConfig
	Images  ImagesConfig
	Gallery GalleryConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	BaseURL     string
	ServeImages bool // expose the image folders at their web paths
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type TLSConfig struct {
	Mode     string // auto, acme, manual, off
	CertDir  string // ACME certificate cache
	Email    string // ACME email for Let's Encrypt
	CertFile string // Path to certificate file (manual mode)
	KeyFile  string // Path to private key file (manual mode)
}

// ImagesConfig describes where assets live and how their paths are published.
type ImagesConfig struct {
	BaseDir        string // absolute
	DesktopFolder  string
	MobileFolder   string
	DocumentRoot   string // absolute; stripped from selected paths
	Extension      string // including the leading dot
	MobileKeywords []string
}

// Dir returns the asset directory for the given device kind.
func (c ImagesConfig) Dir(k device.Kind) string {
	if k == device.Mobile {
		return filepath.Join(c.BaseDir, c.MobileFolder)
	}
	return filepath.Join(c.BaseDir, c.DesktopFolder)
}

// GalleryConfig holds the links and endpoints shown on the HTML page.
type GalleryConfig struct {
	ACGURL    string // public link shown under the local image panel
	BingAPI   string
	WgzdyAPI  string
	Copyright string
	ICP       string
}

func NewFromCLI(cmd *cli.Command) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			BaseURL:     cmd.String("base-url"),
			ServeImages: cmd.Bool("serve-images"),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		TLS: TLSConfig{
			Mode:     cmd.String("tls-mode"),
			CertDir:  cmd.String("tls-cert-dir"),
			Email:    cmd.String("tls-email"),
			CertFile: cmd.String("tls-cert-file"),
			KeyFile:  cmd.String("tls-key-file"),
		},
		Images: ImagesConfig{
			BaseDir:        absPath(cmd.String("images-dir")),
			DesktopFolder:  cmd.String("desktop-folder"),
			MobileFolder:   cmd.String("mobile-folder"),
			DocumentRoot:   absPath(cmd.String("document-root")),
			Extension:      normalizeExtension(cmd.String("extension")),
			MobileKeywords: cmd.StringSlice("mobile-keywords"),
		},
		Gallery: GalleryConfig{
			ACGURL:    cmd.String("gallery-acg-url"),
			BingAPI:   cmd.String("gallery-bing-api"),
			WgzdyAPI:  cmd.String("gallery-wgzdy-api"),
			Copyright: cmd.String("site-copyright"),
			ICP:       cmd.String("site-icp"),
		},
	}

	if len(cfg.Images.MobileKeywords) == 0 {
		cfg.Images.MobileKeywords = device.DefaultMobileKeywords
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = buildBaseURL(cfg)
	}

	return cfg
}

// Validate checks the configuration for values that cannot work at runtime.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Server.BaseURL, validation.By(httpURL)),
	); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := validation.ValidateStruct(&c.Log,
		validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Log.Format, validation.In("text", "json")),
	); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if err := validation.ValidateStruct(&c.TLS,
		validation.Field(&c.TLS.Mode, validation.In("auto", "acme", "manual", "off")),
		validation.Field(&c.TLS.Email, is.EmailFormat),
	); err != nil {
		return fmt.Errorf("tls: %w", err)
	}

	if err := validation.ValidateStruct(&c.Images,
		validation.Field(&c.Images.BaseDir, validation.Required),
		validation.Field(&c.Images.DesktopFolder, validation.Required, validation.By(plainFolderName)),
		validation.Field(&c.Images.MobileFolder, validation.Required, validation.By(plainFolderName)),
		validation.Field(&c.Images.Extension, validation.Required, validation.Length(2, 0)),
	); err != nil {
		return fmt.Errorf("images: %w", err)
	}

	if err := validation.ValidateStruct(&c.Gallery,
		validation.Field(&c.Gallery.ACGURL, is.URL),
		validation.Field(&c.Gallery.BingAPI, is.URL),
		validation.Field(&c.Gallery.WgzdyAPI, is.URL),
	); err != nil {
		return fmt.Errorf("gallery: %w", err)
	}

	return nil
}

// httpURL accepts absolute http(s) URLs with any host, including bind-all
// addresses such as 0.0.0.0 that is.URL rejects.
func httpURL(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http or https URL")
	}
	return nil
}

// plainFolderName rejects folder names that would escape the base directory.
func plainFolderName(value any) error {
	name, _ := value.(string)
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.New("must be a single folder name")
	}
	return nil
}

func absPath(p string) string {
	if p == "" {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func buildBaseURL(cfg *Config) string {
	host := cfg.Server.Host
	port := cfg.Server.Port
	mode := cfg.ResolveTLSMode()

	scheme := "http"
	if mode != TLSModeOff {
		scheme = "https"
	}

	// ACME mode always uses port 443
	if mode == TLSModeACME {
		return fmt.Sprintf("https://%s", host)
	}

	// Hide default ports in URL
	if (scheme == "http" && port == 80) || (scheme == "https" && port == 443) {
		return fmt.Sprintf("%s://%s", scheme, host)
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}

// Resolved TLS modes.
const (
	TLSModeOff    = "off"
	TLSModeACME   = "acme"
	TLSModeManual = "manual"
)

// ResolveTLSMode turns the configured mode into off, acme or manual.
// In auto mode localhost never uses TLS, certificate files select manual mode
// and an ACME email on a DNS host selects acme.
func (c *Config) ResolveTLSMode() string {
	switch strings.ToLower(c.TLS.Mode) {
	case TLSModeOff:
		return TLSModeOff
	case TLSModeACME:
		return TLSModeACME
	case TLSModeManual:
		return TLSModeManual
	}

	host := c.Server.Host
	switch {
	case IsLocalhost(host):
		return TLSModeOff
	case c.TLS.CertFile != "" && c.TLS.KeyFile != "":
		return TLSModeManual
	case c.TLS.Email != "" && net.ParseIP(host) == nil:
		return TLSModeACME
	default:
		return TLSModeOff
	}
}

// IsLocalhost checks if the host is a localhost address.
func IsLocalhost(host string) bool {
	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return true
	}
	// Check for *.localhost subdomains (e.g., app.localhost)
	return strings.HasSuffix(host, ".localhost")
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT"), toml.TOML("server.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Base URL for the application",
			Sources: cli.NewValueSourceChain(cli.EnvVar("BASE_URL"), toml.TOML("server.base_url", configFile)),
		},
		&cli.BoolFlag{
			Name:    "serve-images",
			Value:   true,
			Usage:   "Serve the image folders at their web paths",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SERVE_IMAGES"), toml.TOML("server.serve_images", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
		&cli.StringFlag{
			Name:    "tls-mode",
			Value:   "auto",
			Usage:   "TLS mode (auto, acme, manual, off)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TLS_MODE"), toml.TOML("tls.mode", configFile)),
		},
		&cli.StringFlag{
			Name:    "tls-cert-dir",
			Value:   "./data/certs",
			Usage:   "Directory for the ACME certificate cache",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TLS_CERT_DIR"), toml.TOML("tls.cert_dir", configFile)),
		},
		&cli.StringFlag{
			Name:    "tls-email",
			Usage:   "Email for ACME/Let's Encrypt registration",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TLS_EMAIL"), toml.TOML("tls.email", configFile)),
		},
		&cli.StringFlag{
			Name:    "tls-cert-file",
			Usage:   "Path to TLS certificate file (manual mode)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TLS_CERT_FILE"), toml.TOML("tls.cert_file", configFile)),
		},
		&cli.StringFlag{
			Name:    "tls-key-file",
			Usage:   "Path to TLS private key file (manual mode)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TLS_KEY_FILE"), toml.TOML("tls.key_file", configFile)),
		},
		// Image flags
		&cli.StringFlag{
			Name:    "images-dir",
			Value:   "./public",
			Usage:   "Base directory holding the desktop and mobile image folders",
			Sources: cli.NewValueSourceChain(cli.EnvVar("IMAGES_DIR"), toml.TOML("images.dir", configFile)),
		},
		&cli.StringFlag{
			Name:    "document-root",
			Value:   "./public",
			Usage:   "Document root stripped from image paths to build URLs",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DOCUMENT_ROOT"), toml.TOML("images.document_root", configFile)),
		},
		&cli.StringFlag{
			Name:    "desktop-folder",
			Value:   "images_pc",
			Usage:   "Folder with images for desktop clients",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DESKTOP_FOLDER"), toml.TOML("images.desktop_folder", configFile)),
		},
		&cli.StringFlag{
			Name:    "mobile-folder",
			Value:   "images_mobile",
			Usage:   "Folder with images for mobile clients",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MOBILE_FOLDER"), toml.TOML("images.mobile_folder", configFile)),
		},
		&cli.StringFlag{
			Name:    "extension",
			Value:   ".webp",
			Usage:   "File extension of selectable images",
			Sources: cli.NewValueSourceChain(cli.EnvVar("IMAGE_EXTENSION"), toml.TOML("images.extension", configFile)),
		},
		&cli.StringSliceFlag{
			Name:    "mobile-keywords",
			Value:   slices.Clone(device.DefaultMobileKeywords),
			Usage:   "User-Agent keywords that mark a mobile client",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MOBILE_KEYWORDS"), toml.TOML("images.mobile_keywords", configFile)),
		},
		// Gallery flags
		&cli.StringFlag{
			Name:    "gallery-acg-url",
			Value:   "https://img.mod.wiki/acg/",
			Usage:   "Public URL shown under the random image panel",
			Sources: cli.NewValueSourceChain(cli.EnvVar("GALLERY_ACG_URL"), toml.TOML("gallery.acg_url", configFile)),
		},
		&cli.StringFlag{
			Name:    "gallery-bing-api",
			Value:   "https://img.mod.wiki/bing/api.php",
			Usage:   "Endpoint the page fetches the Bing daily image from",
			Sources: cli.NewValueSourceChain(cli.EnvVar("GALLERY_BING_API"), toml.TOML("gallery.bing_api", configFile)),
		},
		&cli.StringFlag{
			Name:    "gallery-wgzdy-api",
			Value:   "https://img.mod.wiki/wgzdy/",
			Usage:   "Endpoint the page fetches the Wgzdy image from",
			Sources: cli.NewValueSourceChain(cli.EnvVar("GALLERY_WGZDY_API"), toml.TOML("gallery.wgzdy_api", configFile)),
		},
		&cli.StringFlag{
			Name:    "site-copyright",
			Usage:   "Copyright holder shown in the page footer",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SITE_COPYRIGHT"), toml.TOML("site.copyright", configFile)),
		},
		&cli.StringFlag{
			Name:    "site-icp",
			Usage:   "ICP record number in the page footer",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SITE_ICP"), toml.TOML("site.icp", configFile)),
		},
	}
}
