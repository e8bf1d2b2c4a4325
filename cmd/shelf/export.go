package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/shelf/internal/export"
	"github.com/jeanpaul/shelf/internal/tui"
)

func newExportCmd(a *app) *cobra.Command {
	var format, out string
	var width int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the reading list as Markdown, YAML or an Excel workbook",
		Example: `  shelf export                          # render Markdown in the terminal
  shelf export --format yaml > list.yaml
  shelf export --out reading-list.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" && out != "" {
				f, err := export.FormatFor(out)
				if err != nil {
					return err
				}
				format = f
			}
			if format == "" {
				format = export.FormatMarkdown
			}

			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()
			entries := store.Current()

			if out == "" {
				switch format {
				case export.FormatMarkdown:
					rendered, err := export.RenderMarkdown(entries, width)
					if err != nil {
						return err
					}
					fmt.Fprint(cmd.OutOrStdout(), rendered)
					return nil
				case export.FormatXLSX:
					return fmt.Errorf("--out is required for xlsx")
				}
				return export.Write(cmd.OutOrStdout(), format, entries)
			}

			var buf bytes.Buffer
			if err := export.Write(&buf, format, entries); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %d %s to %s\n", tui.OKStyle.Render("✓ Exported"), len(entries), plural(len(entries), "book", "books"), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "md, yaml or xlsx (default: from --out extension, else md)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&width, "width", 80, "word wrap for terminal Markdown")
	return cmd
}
