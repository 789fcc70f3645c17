package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf2md/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file.md>",
	Short: "Render a converted Markdown file as HTML",
	Long: `Preview renders a Markdown file to a standalone HTML page next to it
(or at --out), with tables and LaTeX math rendered, so a conversion can be
checked in a browser.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		path, err := preview.New().WriteFile(args[0], out)
		if err != nil {
			return err
		}
		fmt.Printf("preview: %s\n", path)
		return nil
	},
}

func init() {
	previewCmd.Flags().String("out", "", "output HTML path (default: input with .html extension)")

	rootCmd.AddCommand(previewCmd)
}
