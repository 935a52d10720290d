// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"codeberg.org/oliverandrich/go-random-image/internal/i18n"
	"codeberg.org/oliverandrich/go-random-image/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func render(t *testing.T, ctx context.Context, data templates.PageData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, templates.Page(data).Render(ctx, &buf))
	return buf.String()
}

func testData() templates.PageData {
	return templates.PageData{
		ImagePath: "/images_pc/a.webp",
		APIQuery:  "?api=true",
		ACGURL:    "https://img.mod.wiki/acg/",
		BingAPI:   "https://img.mod.wiki/bing/api.php",
		WgzdyAPI:  "https://img.mod.wiki/wgzdy/",
		CSSPath:   "/static/css/page.css?v=0123abcd",
		JSPath:    "/static/js/gallery.js?v=0123abcd",
		LogoPath:  "/static/img/logo.svg?v=0123abcd",
	}
}

func TestPage_EmbedsImageTwice(t *testing.T) {
	require.NoError(t, i18n.Init())
	ctx := i18n.WithLocale(context.Background(), language.English)

	html := render(t, ctx, testData())

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, `<body style="background-image: url(&#39;/images_pc/a.webp&#39;)">`)
	assert.Contains(t, html, `<img src="/images_pc/a.webp"`)
	assert.Equal(t, 2, strings.Count(html, "/images_pc/a.webp"))
}

func TestPage_EscapesImagePath(t *testing.T) {
	require.NoError(t, i18n.Init())
	ctx := i18n.WithLocale(context.Background(), language.English)
	data := testData()
	data.ImagePath = `/images_pc/"><script>alert(1)</script>&.webp`

	html := render(t, ctx, data)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&#34;&gt;&lt;script&gt;alert(1)&lt;/script&gt;&amp;.webp")
}

func TestPage_Panels(t *testing.T) {
	require.NoError(t, i18n.Init())
	ctx := i18n.WithLocale(context.Background(), language.English)

	html := render(t, ctx, testData())

	assert.Equal(t, 3, strings.Count(html, `class="container"`))
	assert.Contains(t, html, `id="randomACGImage" data-api="?api=true"`)
	assert.Contains(t, html, `id="randomBingImage" data-src="https://img.mod.wiki/bing/api.php"`)
	assert.Contains(t, html, `id="randomWgzdyImage" data-src="https://img.mod.wiki/wgzdy/"`)
	assert.Contains(t, html, `<script src="/static/js/gallery.js?v=0123abcd"></script>`)
	assert.Contains(t, html, `<link rel="stylesheet" href="/static/css/page.css?v=0123abcd">`)
}

func TestPage_UnsafeEndpointIsSanitised(t *testing.T) {
	require.NoError(t, i18n.Init())
	ctx := i18n.WithLocale(context.Background(), language.English)
	data := testData()
	data.BingAPI = "javascript:alert(1)"

	html := render(t, ctx, data)

	assert.NotContains(t, html, `href="javascript:alert(1)"`)
	assert.NotContains(t, html, `data-src="javascript:alert(1)"`)
}

func TestPage_Footer(t *testing.T) {
	require.NoError(t, i18n.Init())
	ctx := i18n.WithLocale(context.Background(), language.English)

	html := render(t, ctx, testData())
	assert.NotContains(t, html, `class="footer"`)

	data := testData()
	data.Copyright = "Example"
	data.Year = 2025
	data.ICP = "ICP-123"
	html = render(t, ctx, data)
	assert.Contains(t, html, `<div class="footer">Copyright © 2025 Example<br>ICP-123</div>`)

	data.Copyright = ""
	html = render(t, ctx, data)
	assert.Contains(t, html, `<div class="footer">ICP-123</div>`)
}

func TestPage_FooterLocalised(t *testing.T) {
	require.NoError(t, i18n.Init())
	ctx := i18n.WithLocale(context.Background(), language.Chinese)
	data := testData()
	data.Copyright = "元素云"
	data.Year = 2025

	html := render(t, ctx, data)

	assert.Contains(t, html, `<div class="footer">版权所有 © 2025 元素云</div>`)
}

func TestPage_APIPanelIsFetchedByScript(t *testing.T) {
	require.NoError(t, i18n.Init())
	ctx := i18n.WithLocale(context.Background(), language.English)

	html := render(t, ctx, testData())

	// The server image is the initial src; the script replaces it from data-api.
	assert.Contains(t, html, `<img src="/images_pc/a.webp" alt="Random Image" id="randomACGImage" data-api="?api=true">`)
	assert.Equal(t, 1, strings.Count(html, "data-api="))
	assert.Equal(t, 2, strings.Count(html, "data-src="))
}

func TestPage_BackgroundEscapedForCSS(t *testing.T) {
	require.NoError(t, i18n.Init())
	ctx := i18n.WithLocale(context.Background(), language.English)

	tests := []struct {
		name      string
		imagePath string
		wantStyle string
	}{
		{"apostrophe", "/images_pc/don't.webp", `url(&#39;/images_pc/don\27 t.webp&#39;)`},
		{"breakout attempt", "/images_pc/a');color:red;('.webp", `url(&#39;/images_pc/a\27 \29 \3b color\3a red\3b \28 \27 .webp&#39;)`},
		{"space and backslash", `/images_pc/a b\c.webp`, `url(&#39;/images_pc/a\20 b\5c c.webp&#39;)`},
		{"non-ASCII kept", "/images_pc/图片.webp", `url(&#39;/images_pc/图片.webp&#39;)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := testData()
			data.ImagePath = tt.imagePath

			html := render(t, ctx, data)

			assert.Contains(t, html, `<body style="background-image: `+tt.wantStyle+`">`)
		})
	}
}

func TestPage_Localised(t *testing.T) {
	require.NoError(t, i18n.Init())
	ctx := i18n.WithLocale(context.Background(), language.Chinese)

	html := render(t, ctx, testData())

	assert.Contains(t, html, `<html lang="zh">`)
	assert.Contains(t, html, "<title>元素云API</title>")
	assert.Contains(t, html, "自适应二次元")
}
