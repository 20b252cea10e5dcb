package main

import (
	"os"

	"github.com/spf13/cobra"
)

func (a *app) renderCmd() *cobra.Command {
	var (
		output string
		page   bool
	)

	cmd := &cobra.Command{
		Use:   "render <script.json>",
		Short: "Render a build script to HTML",
		Long: `Build a script and render the resulting tree to HTML.

Examples:
  seqtree render scripts/list.json
  seqtree render scripts/list.json --page -o list.html
  seqtree render scripts/list.json --pretty --indent="  "`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, html, err := a.renderScript(cmd, args[0], page)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return err
			}
			success(cmd.ErrOrStderr(), "Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write HTML to a file instead of stdout")
	cmd.Flags().BoolVar(&page, "page", false, "Wrap the output in a full HTML document")

	return cmd
}
