package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mdvault/internal/codec"
)

var openMarkdown bool

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Print a note as a JSON document",
	Long: `Read a note and print it as the JSON document editors exchange.

Use --markdown to print the note text instead.

Examples:
  mdvault-cli open inbox.md
  mdvault-cli open inbox.md --markdown`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetVault().OpenNote(cmd.Context(), resolvePath(args[0]))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if openMarkdown {
			_, err = io.WriteString(out, result.Content)
			return err
		}

		data, err := codec.EncodeDocument(result.Document)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	},
}

var saveCmd = &cobra.Command{
	Use:   "save <path> [file|-]",
	Short: "Replace a note with a JSON document",
	Long: `Convert a JSON document to markdown and write it to the note.

The document is read from file, or from stdin when file is "-" or missing.

Examples:
  mdvault-cli open inbox.md > doc.json
  mdvault-cli save inbox.md doc.json
  mdvault-cli open inbox.md | mdvault-cli save copy.md -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		document, err := readInput(cmd, optionalArg(args, 1))
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if _, err := GetVault().OpenNote(ctx, resolvePath(args[0])); err != nil {
			return err
		}
		result, err := GetVault().SaveNote(ctx, document)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

func init() {
	openCmd.Flags().BoolVarP(&openMarkdown, "markdown", "m", false, "print the markdown text")
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(saveCmd)
}
