package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/eringen/deckengine"
	"github.com/eringen/deckengine/locale"
	"github.com/eringen/deckengine/present"
	"github.com/eringen/deckengine/views"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole deck as one printable HTML document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")
			html, err := exportDocument(cmd, s)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := writeExport(out, html); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "", "output file; .gz and .zst are compressed (default stdout)")
	return cmd
}

func exportDocument(cmd *cobra.Command, s settings) ([]byte, error) {
	d, err := s.loadDeck()
	if err != nil {
		return nil, err
	}
	bundle, err := locale.New()
	if err != nil {
		return nil, err
	}
	ctrl := present.NewController(d)
	st := ctrl.EnterExportMode()
	labels := deckengine.Labels(bundle.Translator(s.Locale), st)

	var buf bytes.Buffer
	doc := views.ExportDocument(d.Title(), d.Footer(), labels, views.ExportSlides(views.SlideRenderer{Labels: labels}, d))
	if err := doc.Render(cmd.Context(), &buf); err != nil {
		return nil, fmt.Errorf("export: render: %w", err)
	}
	return buf.Bytes(), nil
}

// writeExport writes data to path, compressing by extension.
func writeExport(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var w io.WriteCloser
	switch filepath.Ext(path) {
	case ".gz":
		w = gzip.NewWriter(f)
	case ".zst":
		zw, err := zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("create zstd writer: %w", err)
		}
		w = zw
	default:
		_, err = f.Write(data)
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
