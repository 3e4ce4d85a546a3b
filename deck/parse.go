package deck

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk YAML layout of a deck.
type file struct {
	Title  string      `yaml:"title"`
	Footer string      `yaml:"footer"`
	Slides []slideFile `yaml:"slides"`
}

type slideFile struct {
	ID              int       `yaml:"id"`
	Type            Variant   `yaml:"type"`
	Title           string    `yaml:"title"`
	Subtitle        string    `yaml:"subtitle"`
	Content         yaml.Node `yaml:"content"`
	BackgroundImage string    `yaml:"background"`
	Note            string    `yaml:"note"`
}

type parseOptions struct {
	strict bool
}

// ParseOption tunes Parse and Load.
type ParseOption func(*parseOptions)

// Strict rejects slides whose type is outside the known variant set instead
// of routing them to the Cards payload.
func Strict() ParseOption {
	return func(o *parseOptions) { o.strict = true }
}

// Load reads and parses the deck file at path.
func Load(path string, opts ...ParseOption) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("deck: read %s: %w", path, err)
	}
	d, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("deck: %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a YAML deck and validates it.
func Parse(data []byte, opts ...ParseOption) (*Deck, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	slides := make([]Slide, 0, len(f.Slides))
	for _, sf := range f.Slides {
		if o.strict && !sf.Type.Known() {
			return nil, &ValidationError{SlideID: sf.ID, Field: "type", Reason: fmt.Sprintf("unknown variant %q", sf.Type)}
		}
		content, err := decodeContent(sf.Type, &sf.Content)
		if err != nil {
			return nil, &ValidationError{SlideID: sf.ID, Field: "content", Reason: err.Error()}
		}
		slides = append(slides, Slide{
			ID:              sf.ID,
			Variant:         sf.Type,
			Title:           sf.Title,
			Subtitle:        sf.Subtitle,
			Content:         content,
			BackgroundImage: sf.BackgroundImage,
			Note:            sf.Note,
		})
	}
	return New(f.Title, f.Footer, slides)
}

// decodeContent picks the payload struct for v. Lists may be written either
// as a bare sequence or under their named key.
func decodeContent(v Variant, n *yaml.Node) (Content, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	list := n.Kind == yaml.SequenceNode
	var (
		c   Content
		err error
	)
	switch v {
	case Title:
		var t TitleContent
		err = n.Decode(&t)
		c = t
	case SplitImageText:
		var t SplitContent
		err = n.Decode(&t)
		c = t
	case ConceptBalance:
		var t BalanceContent
		err = n.Decode(&t)
		c = t
	case Diagram:
		var t DiagramContent
		err = n.Decode(&t)
		c = t
	case IconsGrid:
		var t IconsGridContent
		if list {
			err = n.Decode(&t.Items)
		} else {
			err = n.Decode(&t)
		}
		c = t
	case ScriptTable:
		var t ScriptContent
		if list {
			err = n.Decode(&t.Rows)
		} else {
			err = n.Decode(&t)
		}
		c = t
	case Conclusion:
		var t ConclusionContent
		err = n.Decode(&t)
		c = t
	default:
		var t CardsContent
		if list {
			err = n.Decode(&t.Cards)
		} else {
			err = n.Decode(&t)
		}
		c = t
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
