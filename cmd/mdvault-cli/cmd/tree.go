package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	mcpadapter "mdvault/internal/adapters/mcp"
	"mdvault/internal/domain"
)

var (
	treeSort   string
	treeOutput string
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the vault tree structure",
	Long: `Display the complete tree structure of the vault.

Hidden files and folders are skipped. --output json and --output yaml
print every entry with its timestamps.

Examples:
  mdvault-cli tree
  mdvault-cli tree --sort modified-desc
  mdvault-cli tree --output json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if treeSort != "" {
			mode, err := domain.ParseSortMode(treeSort)
			if err != nil {
				return err
			}
			GetVault().SetSort(mode)
		}

		root, err := GetVault().FolderContent(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch treeOutput {
		case "", "text":
			var sb strings.Builder
			sb.WriteString(filepath.Base(root.Path) + "/\n")
			mcpadapter.RenderTree(&sb, root, "  ")
			_, err = fmt.Fprint(out, sb.String())
			return err
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(root)
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(root); err != nil {
				return err
			}
			return enc.Close()
		default:
			return fmt.Errorf("unknown output format: %s (expected text, json or yaml)", treeOutput)
		}
	},
}

func init() {
	treeCmd.Flags().StringVarP(&treeSort, "sort", "s", "", "sort mode: name-asc, name-desc, created-asc, created-desc, modified-asc, modified-desc")
	treeCmd.Flags().StringVarP(&treeOutput, "output", "o", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(treeCmd)
}
