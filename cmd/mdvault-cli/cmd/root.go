package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mdvault/internal/application/commands"
	"mdvault/internal/config"
	"mdvault/internal/service"
)

// standalone marks commands that manage their own session
const standalone = "standalone"

var (
	vaultPath  string
	configFile string
	cfg        *config.Config
	svc        *service.Service
)

var rootCmd = &cobra.Command{
	Use:   "mdvault-cli",
	Short: "CLI for managing markdown vaults",
	Long: `mdvault-cli is a command-line interface for a folder of markdown notes.

It lists, creates, renames, moves, copies, deletes and searches notes and
folders, reads and writes notes as JSON documents, and can watch the vault
for changes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
		if cmd.Annotations[standalone] != "" {
			return nil
		}

		svc, err = service.New(cfg, service.Options{Root: rootOverride(cmd)})
		if err != nil {
			return err
		}
		_, err = svc.Open(cmd.Context())
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if svc == nil {
			return nil
		}
		return svc.Close()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultPath, "vault", "v", config.VaultPath(), "path to the vault")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to the config file")
}

// rootOverride returns the --vault value when it was given explicitly,
// so that a --config file's vault is not shadowed by the flag default
func rootOverride(cmd *cobra.Command) string {
	if cmd.Flags().Changed("vault") {
		return vaultPath
	}
	return ""
}

// GetVault returns the opened vault
func GetVault() *commands.Vault {
	return svc.Vault
}

// resolvePath turns a vault-relative argument into an absolute path.
// Empty stays empty, meaning the vault root.
func resolvePath(arg string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return ""
	}
	if filepath.IsAbs(arg) {
		return filepath.Clean(arg)
	}
	return filepath.Join(svc.Root, arg)
}

// relativePath shows path relative to the vault root
func relativePath(path string) string {
	if rel, err := filepath.Rel(svc.Root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// optionalArg returns args[i], or "" when it was not given
func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
