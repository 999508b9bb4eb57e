package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the vault",
	Long: `Search note and folder names in the vault.

Results are ranked by relevance using fuzzy matching. Queries shorter
than two characters match nothing.

Examples:
  mdvault-cli search theatre
  mdvault-cli search proj/plan`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := GetVault().Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}

		for _, r := range results {
			typeStr := "note"
			if r.IsDir {
				typeStr = "folder"
			}
			fmt.Fprintf(out, "[%s] %s\n", typeStr, relativePath(r.Path))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
