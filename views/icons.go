package views

import (
	"strings"

	"github.com/a-h/templ"
)

// iconPaths holds the inner markup of 24x24 stroke icons, keyed by the names
// deck files use.
var iconPaths = map[string]string{
	"brain":    `<path d="M9 4a3 3 0 0 0-3 3 3 3 0 0 0-2 5 3 3 0 0 0 2 5 3 3 0 0 0 3 3V4z"/><path d="M15 4a3 3 0 0 1 3 3 3 3 0 0 1 2 5 3 3 0 0 1-2 5 3 3 0 0 1-3 3V4z"/>`,
	"zoom-in":  `<circle cx="11" cy="11" r="7"/><path d="M21 21l-4.3-4.3M11 8v6M8 11h6"/>`,
	"anchor":   `<circle cx="12" cy="5" r="3"/><path d="M12 8v14M5 12H2a10 10 0 0 0 20 0h-3"/>`,
	"flame":    `<path d="M12 22c4 0 7-3 7-7 0-5-4-7-5-12-2 3-3 5-3 7-1-1-2-2-2-4-2 2-4 5-4 9 0 4 3 7 7 7z"/>`,
	"activity": `<path d="M22 12h-4l-3 9L9 3l-3 9H2"/>`,
	"hand":     `<path d="M18 11V6a2 2 0 0 0-4 0v5M14 10V4a2 2 0 0 0-4 0v6M10 10.5V6a2 2 0 0 0-4 0v8"/><path d="M18 8a2 2 0 1 1 4 0v6a8 8 0 0 1-8 8h-2a8 8 0 0 1-6-3l-3-4a2 2 0 0 1 3-3l2 2"/>`,
	"clock":    `<circle cx="12" cy="12" r="10"/><path d="M12 6v6l4 2"/>`,
	"skull":    `<circle cx="9" cy="12" r="1"/><circle cx="15" cy="12" r="1"/><path d="M8 20v2h8v-2M12 2a8 8 0 0 0-5 14v4h10v-4a8 8 0 0 0-5-14z"/>`,
	"zap":      `<path d="M13 2L3 14h9l-1 8 10-12h-9l1-8z"/>`,
}

const fallbackIcon = `<circle cx="12" cy="12" r="9"/>`

// iconSVG returns inline SVG for name. Unknown or empty names get a plain
// circle so the card layout stays aligned.
func iconSVG(name string) string {
	inner, ok := iconPaths[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		inner = fallbackIcon
	}
	return `<svg class="icon" viewBox="0 0 24 24" width="32" height="32" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">` + inner + `</svg>`
}

func icon(name string) templ.Component {
	return templ.Raw(iconSVG(name))
}
