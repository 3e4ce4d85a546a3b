package deck

import (
	"fmt"
	"strings"
)

// Content is the variant-specific payload of a slide. The set of
// implementations is closed to this package.
type Content interface {
	variant() Variant
	problems() []problem
}

type problem struct {
	field  string
	reason string
}

func required(field, value string) []problem {
	if value == "" {
		return []problem{{field, "required"}}
	}
	return nil
}

// TitleContent is the payload of an opening slide.
type TitleContent struct {
	Details string `yaml:"details"`
	Author  string `yaml:"author"`
	Role    string `yaml:"role"`
}

func (TitleContent) variant() Variant      { return Title }
func (c TitleContent) problems() []problem { return nil }

// SplitContent pairs a text column with an image.
type SplitContent struct {
	Heading     string   `yaml:"heading"`
	Description string   `yaml:"description"`
	Points      []string `yaml:"points"`
	Image       string   `yaml:"image"`
}

func (SplitContent) variant() Variant { return SplitImageText }

func (c SplitContent) problems() []problem {
	p := required("content.heading", c.Heading)
	for i, pt := range c.Points {
		if pt == "" {
			p = append(p, problem{fmt.Sprintf("content.points[%d]", i), "empty"})
		}
	}
	return p
}

// Card is one entry of a card grid.
type Card struct {
	Title       string `yaml:"title"`
	Caption     string `yaml:"caption"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// CardsContent is an ordered list of cards.
type CardsContent struct {
	Cards []Card `yaml:"cards"`
}

func (CardsContent) variant() Variant { return Cards }

func (c CardsContent) problems() []problem {
	if len(c.Cards) == 0 {
		return []problem{{"content.cards", "at least one card required"}}
	}
	var p []problem
	for i, card := range c.Cards {
		p = append(p, required(fmt.Sprintf("content.cards[%d].title", i), card.Title)...)
	}
	return p
}

// BalanceContent weighs two concepts against each other.
type BalanceContent struct {
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
	Message string `yaml:"message"`
}

func (BalanceContent) variant() Variant { return ConceptBalance }

func (c BalanceContent) problems() []problem {
	return append(required("content.left", c.Left), required("content.right", c.Right)...)
}

// Layer is one row of a diagram's mapping column.
type Layer struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// DiagramContent describes a time axis, a space axis and mapping layers.
// Time and Space may use "label | detail" notation.
type DiagramContent struct {
	Time   string  `yaml:"time"`
	Space  string  `yaml:"space"`
	Layers []Layer `yaml:"layers"`
}

func (DiagramContent) variant() Variant { return Diagram }

func (c DiagramContent) problems() []problem {
	if len(c.Layers) == 0 {
		return []problem{{"content.layers", "at least one layer required"}}
	}
	var p []problem
	for i, l := range c.Layers {
		p = append(p, required(fmt.Sprintf("content.layers[%d].name", i), l.Name)...)
	}
	return p
}

// GridItem is one cell of an icon grid.
type GridItem struct {
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// IconsGridContent is an ordered list of grid items.
type IconsGridContent struct {
	Items []GridItem `yaml:"items"`
}

func (IconsGridContent) variant() Variant { return IconsGrid }

func (c IconsGridContent) problems() []problem {
	if len(c.Items) == 0 {
		return []problem{{"content.items", "at least one item required"}}
	}
	return nil
}

// DefaultScriptColumns are the headers used when a script table omits them.
var DefaultScriptColumns = [3]string{"Reality (Audio)", "VR World (Visual)", "Narrator (Inner Voice)"}

// ScriptRow is a timestamped line of a three-column script.
type ScriptRow struct {
	Time      string `yaml:"time"`
	Reality   string `yaml:"reality"`
	World     string `yaml:"world"`
	Monologue string `yaml:"monologue"`
}

// ScriptContent is a dialogue table.
type ScriptContent struct {
	Columns []string    `yaml:"columns"`
	Rows    []ScriptRow `yaml:"rows"`
}

func (ScriptContent) variant() Variant { return ScriptTable }

func (c ScriptContent) problems() []problem {
	if len(c.Rows) == 0 {
		return []problem{{"content.rows", "at least one row required"}}
	}
	var p []problem
	if len(c.Columns) > len(DefaultScriptColumns) {
		p = append(p, problem{"content.columns", fmt.Sprintf("at most %d headers, got %d", len(DefaultScriptColumns), len(c.Columns))})
	}
	for i, r := range c.Rows {
		p = append(p, required(fmt.Sprintf("content.rows[%d].time", i), r.Time)...)
	}
	return p
}

// Headers returns the column headers, falling back to DefaultScriptColumns
// for any left blank or missing.
func (c ScriptContent) Headers() [3]string {
	h := DefaultScriptColumns
	for i, col := range c.Columns {
		if i < len(h) && strings.TrimSpace(col) != "" {
			h[i] = col
		}
	}
	return h
}

// ConclusionContent closes the deck.
type ConclusionContent struct {
	Vision   string `yaml:"vision"`
	Metaphor string `yaml:"metaphor"`
}

func (ConclusionContent) variant() Variant { return Conclusion }

func (c ConclusionContent) problems() []problem {
	return required("content.metaphor", c.Metaphor)
}
