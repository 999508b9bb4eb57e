package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move <path> [destination]",
	Short: "Move a note or folder into another folder",
	Long: `Move a note or folder into another folder, keeping its name.

The destination defaults to the vault root.

Examples:
  mdvault-cli move inbox.md Projects
  mdvault-cli move Projects/old`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetVault().Move(cmd.Context(), resolvePath(args[0]), resolvePath(optionalArg(args, 1)))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <path> [destination]",
	Short: "Copy a note or folder into another folder",
	Long: `Copy a note or folder tree into another folder.

The destination defaults to the vault root.

Examples:
  mdvault-cli copy templates/weekly.md Projects`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetVault().Copy(cmd.Context(), resolvePath(args[0]), resolvePath(optionalArg(args, 1)))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(copyCmd)
}
