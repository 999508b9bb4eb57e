package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete a note or folder",
	Long: `Delete a note, or a folder with everything inside it.

WARNING: This permanently removes the entry from disk.

Examples:
  mdvault-cli delete inbox.md
  mdvault-cli delete Projects/old`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetVault().Delete(cmd.Context(), resolvePath(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
