package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"mdvault/internal/adapters/notify"
	"mdvault/internal/logger"
	"mdvault/internal/ports"
	"mdvault/internal/service"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print vault notifications as JSON lines",
	Long: `Watch the vault and print every notification as one JSON object per line.

Changes made by other programs are debounced and followed by a full
folder listing. Logs go to stderr. On interrupt the reconciler counters
are printed to stderr.

Examples:
  mdvault-cli watch
  mdvault-cli watch | jq .kind`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{standalone: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.NewWithLevel(cmd.ErrOrStderr(), logger.ParseLevel(cfg.LogLevel))

		w, err := service.New(cfg, service.Options{
			Root:      rootOverride(cmd),
			Watch:     true,
			Notifiers: []ports.Notifier{notify.NewWriter(cmd.OutOrStdout(), log)},
			Log:       log,
		})
		if err != nil {
			return err
		}

		w.Start(ctx)
		if _, err := w.Open(ctx); !service.Usable(err) {
			w.Close()
			return err
		}

		<-ctx.Done()
		stats := w.Reconciler.Stats()
		if err := w.Close(); err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.ErrOrStderr())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
