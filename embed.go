package deckengine

import (
	"embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

// EmbeddedAssets contains the static files shipped with the server:
// favicon.svg and robots.txt.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

func handleFavicon(c echo.Context) error {
	return serveEmbedded(c, "embedded/favicon.svg", "image/svg+xml")
}

func handleRobots(c echo.Context) error {
	return serveEmbedded(c, "embedded/robots.txt", echo.MIMETextPlainCharsetUTF8)
}

func serveEmbedded(c echo.Context, name, contentType string) error {
	data, err := EmbeddedAssets.ReadFile(name)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return c.Blob(http.StatusOK, contentType, data)
}
