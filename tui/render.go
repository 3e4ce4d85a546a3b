package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/eringen/deckengine/deck"
	"github.com/eringen/deckengine/locale"
	"github.com/eringen/deckengine/present"
)

var _ present.Renderer[string] = TextRenderer{}

// icons maps the deck's icon names to single-cell glyphs.
var icons = map[string]string{
	"brain":    "◉",
	"zoom-in":  "⊕",
	"anchor":   "⚓",
	"flame":    "♨",
	"activity": "∿",
	"hand":     "☞",
	"clock":    "◷",
	"skull":    "☠",
	"zap":      "ϟ",
}

func icon(name string) string {
	if g, ok := icons[strings.ToLower(name)]; ok {
		return g
	}
	return "•"
}

// TextRenderer draws slides as styled terminal text.
type TextRenderer struct {
	Styles Styles
	T      *locale.Translator
	Width  int
	// Prose renders inline markup in descriptions and notes. Nil wraps the
	// raw text instead.
	Prose *glamour.TermRenderer
}

// NewTextRenderer returns a renderer for width columns with markdown prose.
func NewTextRenderer(styles Styles, t *locale.Translator, width int) TextRenderer {
	r := TextRenderer{Styles: styles, T: t, Width: width}
	prose, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(r.width()),
	)
	if err == nil {
		r.Prose = prose
	}
	return r
}

// Render draws one slide with its header and note.
func (r TextRenderer) Render(s deck.Slide) string {
	return present.Dispatch[string](r, s)
}

func (r TextRenderer) width() int {
	if r.Width < 20 {
		return 80
	}
	return r.Width
}

func (r TextRenderer) t(id string) string {
	if r.T == nil {
		return id
	}
	return r.T.T(id)
}

// frame stacks the slide header, the variant body and the note.
func (r TextRenderer) frame(s deck.Slide, body ...string) string {
	parts := []string{r.Styles.Title.Render(s.Title)}
	if s.Subtitle != "" {
		parts = append(parts, r.Styles.Subtitle.Render(s.Subtitle))
	}
	parts = append(parts, "")
	parts = append(parts, body...)
	if s.BackgroundImage != "" {
		parts = append(parts, r.Styles.Muted.Render("[background: "+s.BackgroundImage+"]"))
	}
	if s.Note != "" {
		parts = append(parts, "", r.prose(r.Styles.Muted, s.Note))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (r TextRenderer) wrap(st lipgloss.Style, text string) string {
	return st.Width(r.width()).Render(text)
}

// prose renders a paragraph of deck text.
func (r TextRenderer) prose(st lipgloss.Style, text string) string {
	if r.Prose != nil {
		if out, err := r.Prose.Render(text); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return r.wrap(st, text)
}

func (r TextRenderer) Title(s deck.Slide, c deck.TitleContent) string {
	var body []string
	if c.Details != "" {
		body = append(body, r.prose(r.Styles.Body, c.Details))
	}
	if c.Author != "" {
		by := c.Author
		if c.Role != "" {
			by += " · " + c.Role
		}
		body = append(body, "", r.Styles.Accent.Render(by))
	}
	return r.frame(s, body...)
}

func (r TextRenderer) Split(s deck.Slide, c deck.SplitContent) string {
	body := []string{r.Styles.Heading.Render(c.Heading)}
	if c.Description != "" {
		body = append(body, r.prose(r.Styles.Body, c.Description))
	}
	for _, p := range c.Points {
		body = append(body, r.Styles.Accent.Render("◆ ")+r.Styles.Body.Render(p))
	}
	if c.Image != "" {
		body = append(body, r.Styles.Muted.Render("[image: "+c.Image+"]"))
	}
	return r.frame(s, body...)
}

func (r TextRenderer) Cards(s deck.Slide, c deck.CardsContent) string {
	boxes := make([]string, len(c.Cards))
	for i, card := range c.Cards {
		lines := []string{r.Styles.Accent.Render(icon(card.Icon)) + " " + r.Styles.Heading.Render(card.Title)}
		if card.Caption != "" {
			lines = append(lines, r.Styles.Subtitle.Render(card.Caption))
		}
		if card.Description != "" {
			lines = append(lines, card.Description)
		}
		boxes[i] = strings.Join(lines, "\n")
	}
	return r.frame(s, r.grid(boxes))
}

// grid lays boxes out side by side, as many per row as the width allows.
func (r TextRenderer) grid(boxes []string) string {
	if len(boxes) == 0 {
		return ""
	}
	perRow := min(len(boxes), max(1, r.width()/30))
	inner := r.width()/perRow - 4
	var rows []string
	for i := 0; i < len(boxes); i += perRow {
		end := min(i+perRow, len(boxes))
		cells := make([]string, 0, end-i)
		for _, b := range boxes[i:end] {
			cells = append(cells, r.Styles.Card.Width(inner).Render(b))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (r TextRenderer) Balance(s deck.Slide, c deck.BalanceContent) string {
	side := max(10, r.width()/2-6)
	pans := lipgloss.JoinHorizontal(lipgloss.Center,
		r.Styles.Card.Width(side).Render(c.Left),
		r.Styles.Accent.Render(" ⚖ "),
		r.Styles.Card.Width(side).Render(c.Right),
	)
	body := []string{pans}
	if c.Message != "" {
		body = append(body, "", r.Styles.Heading.Render(r.t("message")), r.Styles.Quote.Render(c.Message))
	}
	return r.frame(s, body...)
}

func (r TextRenderer) Diagram(s deck.Slide, c deck.DiagramContent) string {
	body := []string{
		r.axis("↓", c.Time),
		r.axis("→", c.Space),
		"",
	}
	for i, l := range c.Layers {
		line := r.Styles.Accent.Render(fmt.Sprintf("%d.", i+1)) + " " + r.Styles.Heading.Render(l.Name)
		if l.Description != "" {
			line += "  " + r.Styles.Muted.Render(l.Description)
		}
		body = append(body, line)
	}
	body = append(body, "", r.Styles.Muted.Render("↺ "+r.t("spiral")))
	return r.frame(s, body...)
}

// axis renders "label | detail" as the label with its detail dimmed.
func (r TextRenderer) axis(arrow, text string) string {
	label, detail, _ := strings.Cut(text, "|")
	out := r.Styles.Accent.Render(arrow) + " " + r.Styles.Heading.Render(strings.TrimSpace(label))
	if d := strings.TrimSpace(detail); d != "" {
		out += "  " + r.Styles.Muted.Render(d)
	}
	return out
}

func (r TextRenderer) IconsGrid(s deck.Slide, c deck.IconsGridContent) string {
	boxes := make([]string, len(c.Items))
	for i, it := range c.Items {
		lines := []string{r.Styles.Accent.Render(icon(it.Icon)) + " " + r.Styles.Heading.Render(it.Title)}
		if it.Subtitle != "" {
			lines = append(lines, r.Styles.Subtitle.Render(it.Subtitle))
		}
		if it.Description != "" {
			lines = append(lines, it.Description)
		}
		boxes[i] = strings.Join(lines, "\n")
	}
	return r.frame(s, r.grid(boxes))
}

func (r TextRenderer) Script(s deck.Slide, c deck.ScriptContent) string {
	h := c.Headers()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.Styles.BarEmpty).
		Width(r.width()).
		Headers(r.t("time"), h[0], h[1], h[2]).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return r.Styles.Heading
			case col == 0:
				return r.Styles.Accent
			case col == 3:
				return r.Styles.Muted.Italic(true)
			}
			return r.Styles.Body
		})
	for _, row := range c.Rows {
		t.Row(row.Time, row.Reality, row.World, "“"+strings.Trim(row.Monologue, "“”\"")+"”")
	}
	return r.frame(s, t.Render())
}

func (r TextRenderer) Conclusion(s deck.Slide, c deck.ConclusionContent) string {
	var body []string
	if c.Vision != "" {
		body = append(body, r.prose(r.Styles.Body, c.Vision), "")
	}
	body = append(body, r.Styles.Quote.Render(c.Metaphor), "", r.Styles.Accent.Render(r.t("fin")))
	return r.frame(s, body...)
}
