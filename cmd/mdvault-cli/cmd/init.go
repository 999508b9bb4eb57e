package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mdvault/internal/adapters/filesystem"
	"mdvault/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Set the vault used by default",
	Long: `Store path as the vault in the config file.

The folder must already exist. Other settings in the file are kept.

Examples:
  mdvault-cli init ~/Documents/notes`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{standalone: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(filesystem.ExpandHome(args[0]))
		if err != nil {
			return err
		}
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("vault not found: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("vault is not a directory: %s", root)
		}

		if err := config.SaveVaultPath(configFile, root); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Vault set to %s\n", root)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
