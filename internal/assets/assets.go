// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

//go:build !dev

// Package assets provides the embedded page assets with content-versioned URLs.
package assets

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"log/slog"
	"net/http"
)

//go:embed static
var staticFS embed.FS

const (
	cssFile  = "css/page.css"
	jsFile   = "js/gallery.js"
	logoFile = "img/logo.svg"
)

var (
	cssPath  string
	jsPath   string
	logoPath string
)

func init() {
	cssPath = versioned(cssFile)
	jsPath = versioned(jsFile)
	logoPath = versioned(logoFile)

	slog.Debug("loaded asset paths", "css", cssPath, "js", jsPath, "logo", logoPath)
}

// versioned returns the URL of an embedded file with an 8 hex digit content hash.
func versioned(name string) string {
	data, err := staticFS.ReadFile("static/" + name)
	if err != nil {
		slog.Error("missing embedded asset", "name", name, "error", err)
		return "/static/" + name
	}
	sum := sha256.Sum256(data)
	return "/static/" + name + "?v=" + hex.EncodeToString(sum[:4])
}

// CSSPath returns the path to the page stylesheet.
func CSSPath() string {
	return cssPath
}

// JSPath returns the path to the gallery script.
func JSPath() string {
	return jsPath
}

// LogoPath returns the path to the logo image.
func LogoPath() string {
	return logoPath
}

// FileServer returns an http.Handler that serves embedded static files.
func FileServer() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("failed to create sub filesystem: " + err.Error())
	}
	return http.FileServer(http.FS(sub))
}
