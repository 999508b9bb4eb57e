package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"mdvault/internal/adapters/editor"
	"mdvault/internal/adapters/launcher"
	"mdvault/internal/adapters/notify"
	"mdvault/internal/adapters/tui"
	"mdvault/internal/config"
	"mdvault/internal/ports"
	"mdvault/internal/service"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	vaultFlag := flag.String("vault", "", "path to the vault (overrides the config)")
	flag.Parse()

	if err := run(*configFlag, *vaultFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, vault string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifications := notify.NewChannel(256)
	svc, err := service.New(cfg, service.Options{
		Root:      vault,
		Watch:     true,
		Notifiers: []ports.Notifier{notifications},
	})
	if err != nil {
		return err
	}
	defer svc.Close()

	svc.Start(ctx)

	app := tui.NewApp(ctx, svc.Vault, editor.NewOpener(cfg.Editor), launcher.New(), notifications.C())

	// the first listing arrives as a notification
	if _, err := svc.Open(ctx); err != nil {
		if !service.Usable(err) {
			return err
		}
		app.Browser().SetMessage("Live updates unavailable: "+err.Error(), true)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
