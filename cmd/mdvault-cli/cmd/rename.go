package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <path> <new-name>",
	Short: "Rename a note or folder",
	Long: `Rename a note or folder within its folder.

Notes keep their .md extension when the new name has none.

Examples:
  mdvault-cli rename inbox.md "Reading list"
  mdvault-cli rename Projects Work`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetVault().Rename(cmd.Context(), resolvePath(args[0]), args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
