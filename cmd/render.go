package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/zjrosen/inkwell/internal/richtext"
	"github.com/zjrosen/inkwell/internal/ui/preview"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a markup file as styled markdown to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		table, err := cfg.BuildTable()
		if err != nil {
			return fmt.Errorf("building pattern table: %w", err)
		}
		runs, _ := richtext.ParseMarkup(string(raw), table)
		md := preview.Markdown(runs, table)

		style, _ := cmd.Flags().GetString("style")
		width, _ := cmd.Flags().GetInt("width")

		opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
		if style != "" {
			opts = append(opts, glamour.WithStandardStyle(style))
		} else {
			opts = append(opts, glamour.WithAutoStyle())
		}
		r, err := glamour.NewTermRenderer(opts...)
		if err != nil {
			return fmt.Errorf("building renderer: %w", err)
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	renderCmd.Flags().String("style", "", "glamour style name (dark, light, notty, ...)")
	renderCmd.Flags().Int("width", 80, "wrap width")
	rootCmd.AddCommand(renderCmd)
}
