package present

import "github.com/eringen/deckengine/deck"

// Renderer produces output of type T for each slide variant. Adding a
// variant adds a method here, so every renderer has to handle it before the
// module compiles again.
type Renderer[T any] interface {
	Title(deck.Slide, deck.TitleContent) T
	Split(deck.Slide, deck.SplitContent) T
	Cards(deck.Slide, deck.CardsContent) T
	Balance(deck.Slide, deck.BalanceContent) T
	Diagram(deck.Slide, deck.DiagramContent) T
	IconsGrid(deck.Slide, deck.IconsGridContent) T
	Script(deck.Slide, deck.ScriptContent) T
	Conclusion(deck.Slide, deck.ConclusionContent) T
}

// Dispatch hands the slide's payload, unmodified, to the matching renderer
// method. Anything outside the known payload set goes to Cards.
func Dispatch[T any](r Renderer[T], s deck.Slide) T {
	switch c := s.Content.(type) {
	case deck.TitleContent:
		return r.Title(s, c)
	case deck.SplitContent:
		return r.Split(s, c)
	case deck.CardsContent:
		return r.Cards(s, c)
	case deck.BalanceContent:
		return r.Balance(s, c)
	case deck.DiagramContent:
		return r.Diagram(s, c)
	case deck.IconsGridContent:
		return r.IconsGrid(s, c)
	case deck.ScriptContent:
		return r.Script(s, c)
	case deck.ConclusionContent:
		return r.Conclusion(s, c)
	default:
		return r.Cards(s, deck.CardsContent{})
	}
}

// Route returns the variant whose renderer handles v.
func Route(v deck.Variant) deck.Variant {
	if v.Known() {
		return v
	}
	return deck.Cards
}
