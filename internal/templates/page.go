// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package templates holds the HTML components of the gallery page.
package templates

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

//go:generate templ generate

// PageData is everything the gallery page needs besides the request context.
type PageData struct {
	ImagePath string // web path of the server-selected image
	APIQuery  string // query string that switches this endpoint to JSON mode
	ACGURL    string
	BingAPI   string
	WgzdyAPI  string
	Copyright string // holder name; the footer line is omitted when empty
	ICP       string
	Year      int
	CSSPath   string
	JSPath    string
	LogoPath  string
}

// panel describes a gallery panel whose image comes from an external endpoint.
type panel struct {
	ContainerID string
	ImageID     string
	TitleID     string
	AltID       string
	Endpoint    string
}

func (d PageData) externalPanels() []panel {
	return []panel{
		{ContainerID: "bingImageContainer", ImageID: "randomBingImage", TitleID: "panel_bing", AltID: "image_alt_bing", Endpoint: d.BingAPI},
		{ContainerID: "WgzdyImageContainer", ImageID: "randomWgzdyImage", TitleID: "panel_wgzdy", AltID: "image_alt_wgzdy", Endpoint: d.WgzdyAPI},
	}
}

func (d PageData) hasFooter() bool {
	return d.Copyright != "" || d.ICP != ""
}

// safeURL sanitises a URL for attributes templ does not treat as links.
func safeURL(s string) string {
	return string(templ.URL(s))
}

// backgroundImage returns the inline style that shows path as the page
// background. The path is escaped for a quoted CSS string, so quotes and
// parentheses in file names cannot end the url() early.
func backgroundImage(path string) string {
	return "background-image: url('" + cssEscape(path) + "')"
}

func cssEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '/', r == '.', r == '_', r == '-', r == '~', r > 0x7f:
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, `\%x `, r)
		}
	}
	return b.String()
}
