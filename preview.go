package deckengine

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/eringen/deckengine/deck"
	"github.com/eringen/deckengine/present"
)

const (
	previewWidth  = 320
	previewHeight = 180
	previewScale  = 4 // served at 1280x720
	previewMargin = 12
)

var (
	previewBackground = color.RGBA{0x0c, 0x0a, 0x09, 0xff}
	previewInk        = color.RGBA{0xf5, 0xf0, 0xe6, 0xff}
	previewMuted      = color.RGBA{0xa8, 0xa2, 0x9e, 0xff}
	previewAccent     = color.RGBA{0xd9, 0x77, 0x06, 0xff}
)

func (a *App) handlePreview(c echo.Context) error {
	st, d := a.Controller.Snapshot()
	data, err := renderPreview(d, st)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

// renderPreview draws a small title card for the current slide with the
// fixed-size bitmap font, then scales it up for link unfurls.
func renderPreview(d *deck.Deck, st present.State) ([]byte, error) {
	small := image.NewRGBA(image.Rect(0, 0, previewWidth, previewHeight))
	draw.Draw(small, small.Bounds(), image.NewUniform(previewBackground), image.Point{}, draw.Src)

	s := d.At(st.Position)
	face := basicfont.Face7x13
	line := face.Metrics().Height.Ceil()

	y := previewMargin + line
	drawText(small, face, previewMuted, previewMargin, y, d.Title())
	y += 2 * line
	drawText(small, face, previewInk, previewMargin, y, s.Title)
	y += line
	drawText(small, face, previewAccent, previewMargin, y, s.Subtitle)

	progress := fmt.Sprintf("%d / %d", st.Current(), st.Total)
	if st.Mode == present.Exporting {
		progress += "  export"
	}
	drawText(small, face, previewMuted, previewMargin, previewHeight-previewMargin-6, progress)

	// Progress bar along the bottom edge.
	barWidth := int(float64(previewWidth) * st.Percent() / 100)
	bar := image.Rect(0, previewHeight-3, barWidth, previewHeight)
	draw.Draw(small, bar, image.NewUniform(previewAccent), image.Point{}, draw.Src)

	large := image.NewRGBA(image.Rect(0, 0, previewWidth*previewScale, previewHeight*previewScale))
	draw.CatmullRom.Scale(large, large.Bounds(), small, small.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, large); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// drawText writes one line at baseline y, cut to the card width.
func drawText(dst draw.Image, face font.Face, col color.Color, x, y int, text string) {
	text = fitText(face, strings.TrimSpace(text), previewWidth-x-previewMargin)
	if text == "" {
		return
	}
	dr := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	dr.DrawString(text)
}

// fitText truncates text with an ellipsis so it measures at most width pixels.
func fitText(face font.Face, text string, width int) string {
	limit := fixed.I(width)
	if font.MeasureString(face, text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if font.MeasureString(face, candidate) <= limit {
			return candidate
		}
	}
	return ""
}
