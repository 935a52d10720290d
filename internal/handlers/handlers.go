// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/go-random-image/internal/assets"
	"codeberg.org/oliverandrich/go-random-image/internal/config"
	"codeberg.org/oliverandrich/go-random-image/internal/device"
	"codeberg.org/oliverandrich/go-random-image/internal/picker"
	"codeberg.org/oliverandrich/go-random-image/internal/templates"
	"github.com/labstack/echo/v4"
)

// NoImagesMessage is the user-visible text when the target folder is empty.
const NoImagesMessage = "No images found."

// apiQuery is the query the page uses to request JSON from this endpoint.
const apiQuery = "?api=true"

// DeviceKey is the echo context key holding the request's device.Kind.
const DeviceKey = "device"

type imageResponse struct {
	Image string `json:"image"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	images     config.ImagesConfig
	gallery    config.GalleryConfig
	classifier *device.Classifier
	picker     *picker.Picker
}

// New creates a new Handlers instance.
func New(cfg *config.Config, p *picker.Picker) *Handlers {
	return &Handlers{
		images:     cfg.Images,
		gallery:    cfg.Gallery,
		classifier: device.NewClassifier(cfg.Images.MobileKeywords),
		picker:     p,
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Random picks an image for the requesting device and answers with JSON
// when the api query parameter is present, or with the gallery page otherwise.
func (h *Handlers) Random(c echo.Context) error {
	req := c.Request()
	kind := h.classifier.Classify(req.UserAgent())
	c.Set(DeviceKey, kind)

	dir := h.images.Dir(kind)
	path, found := h.picker.Pick(dir, h.images.Extension)

	webPath := ""
	if found {
		webPath = picker.WebPath(path, h.images.DocumentRoot)
		slog.DebugContext(req.Context(), "image selected", "device", kind.String(), "path", webPath)
	} else {
		slog.DebugContext(req.Context(), "no images", "device", kind.String(), "dir", dir)
	}

	if c.QueryParams().Has("api") {
		c.Response().Header().Set("Cache-Control", "no-store")
		if !found {
			return c.JSON(http.StatusNotFound, errorResponse{Error: NoImagesMessage})
		}
		return c.JSON(http.StatusOK, imageResponse{Image: webPath})
	}

	if !found {
		return c.String(http.StatusNotFound, NoImagesMessage)
	}

	return Render(c, http.StatusOK, templates.Page(templates.PageData{
		ImagePath: webPath,
		APIQuery:  apiQuery,
		ACGURL:    h.gallery.ACGURL,
		BingAPI:   h.gallery.BingAPI,
		WgzdyAPI:  h.gallery.WgzdyAPI,
		Copyright: h.gallery.Copyright,
		ICP:       h.gallery.ICP,
		Year:      time.Now().Year(),
		CSSPath:   assets.CSSPath(),
		JSPath:    assets.JSPath(),
		LogoPath:  assets.LogoPath(),
	}))
}
