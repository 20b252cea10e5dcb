package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/vango-dev/seqtree/pkg/rendertree"
	"github.com/vango-dev/seqtree/pkg/script"
)

func (a *app) framesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "frames <script.json>",
		Short: "Print the frames a build script produces",
		Long: `Build a script and print each frame with its sequence number.

Examples:
  seqtree frames scripts/list.json
  seqtree frames scripts/list.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := script.Load(args[0])
			if err != nil {
				return err
			}
			opts, err := a.builderOptions()
			if err != nil {
				return err
			}
			frames, err := sc.Frames(cmd.Context(), script.NewRegistry(), opts...)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rendertree.EncodeFrames(frames))
			}
			return rendertree.Dump(cmd.OutOrStdout(), frames)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print frames as JSON")

	return cmd
}
