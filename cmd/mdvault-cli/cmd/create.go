package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new note or folder",
	Long: `Create a new note or folder in the vault.

Parents are given relative to the vault root and default to the root itself.`,
}

var createNoteCmd = &cobra.Command{
	Use:   "note [parent]",
	Short: "Create an untitled note",
	Long: `Create an empty note named "Untitled.md", numbered when the name is taken.

Examples:
  mdvault-cli create note
  mdvault-cli create note Projects`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetVault().CreateNote(cmd.Context(), resolvePath(optionalArg(args, 0)))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var folderName string

var createFolderCmd = &cobra.Command{
	Use:   "folder [parent]",
	Short: "Create a folder",
	Long: `Create a folder, named "Untitled" unless --name is given.

Examples:
  mdvault-cli create folder
  mdvault-cli create folder Projects --name Archive`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetVault().CreateFolder(cmd.Context(), resolvePath(optionalArg(args, 0)), folderName)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	createFolderCmd.Flags().StringVarP(&folderName, "name", "n", "", "folder name")
	rootCmd.AddCommand(createCmd)
	createCmd.AddCommand(createNoteCmd)
	createCmd.AddCommand(createFolderCmd)
}
