package cmd

import (
	"github.com/spf13/cobra"

	"mdvault/internal/adapters/launcher"
)

var linkCmd = &cobra.Command{
	Use:   "link <url>",
	Short: "Open a web or mail link in the default application",
	Long: `Open an http, https or mailto link with the desktop's default handler.

Other schemes are refused.

Examples:
  mdvault-cli link https://example.com`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{standalone: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return launcher.New().OpenLink(args[0])
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
}
