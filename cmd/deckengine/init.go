package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/deckengine/deck"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [deck.yaml]",
		Short: "Write the sample deck as a starting point",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "deck.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			return writeSample(cmd, path)
		},
	}
}

func writeSample(cmd *cobra.Command, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s already exists", path)
	}
	if err != nil {
		return err
	}
	if _, err := f.Write(deck.SampleYAML()); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Created %s. Edit it, then run:\n  deckengine serve --deck %s\n", path, path)
	return nil
}
