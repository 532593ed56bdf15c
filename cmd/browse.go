package cmd

import "github.com/spf13/cobra"

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Launch the full catalog browser",
	Long:  "Open dexterm with every entry listed from the start instead of the empty landing view.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd.Context(), false)
	},
}
