// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

//go:build dev

// Package assets serves the page assets from the filesystem for development.
// URLs are not versioned so edits show up on reload.
package assets

import (
	"net/http"
)

// CSSPath returns the path to the page stylesheet (unversioned in dev mode).
func CSSPath() string {
	return "/static/css/page.css"
}

// JSPath returns the path to the gallery script (unversioned in dev mode).
func JSPath() string {
	return "/static/js/gallery.js"
}

// LogoPath returns the path to the logo image (unversioned in dev mode).
func LogoPath() string {
	return "/static/img/logo.svg"
}

// FileServer returns an http.Handler that serves static files from the filesystem.
func FileServer() http.Handler {
	return http.FileServer(http.Dir("internal/assets/static"))
}
