package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/deckengine/deck"
	"github.com/eringen/deckengine/present"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [deck.yaml]",
		Short: "Check a deck file and report every problem",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				s.Deck = args[0]
			}
			d, err := s.loadDeck()
			if err != nil {
				var ve *deck.ValidationError
				if errors.As(err, &ve) {
					fmt.Fprintln(cmd.ErrOrStderr(), "deck is invalid:")
				}
				return err
			}

			out := cmd.OutOrStdout()
			for _, sl := range d.Slides() {
				route := present.Route(sl.Variant)
				if route != sl.Variant {
					fmt.Fprintf(out, "slide %d: %s shown as %s\n", sl.ID, sl.Variant, route)
				}
			}
			fmt.Fprintf(out, "ok: %q, %d slides\n", d.Title(), d.Len())
			return nil
		},
	}
}
