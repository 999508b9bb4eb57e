// Package service assembles a vault session from configuration: the
// repository, the entry index, the notifier chain and, when watching,
// the reconciler with its echo counter.
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"mdvault/internal/adapters/filesystem"
	"mdvault/internal/adapters/fswatch"
	"mdvault/internal/adapters/notify"
	"mdvault/internal/adapters/sqlite"
	"mdvault/internal/application"
	"mdvault/internal/application/commands"
	"mdvault/internal/config"
	"mdvault/internal/domain"
	"mdvault/internal/logger"
	"mdvault/internal/ports"
	"mdvault/internal/reconcile"
)

// Options tunes how a Service is assembled
type Options struct {
	// Root overrides the configured vault
	Root string
	// Watch runs the reconciler so external changes reach the notifiers
	Watch bool
	// Notifiers receive every notification after the index and the log
	Notifiers []ports.Notifier
	// Log replaces the configured log file
	Log *logger.Logger
}

// Service is a wired vault session
type Service struct {
	Config     *config.Config
	Root       string
	Log        *logger.Logger
	Vault      *commands.Vault
	Reconciler *reconcile.Reconciler // nil unless watching
	Index      *sqlite.Index         // nil when disabled or unavailable

	closers []func()
	cancel  context.CancelFunc
	done    chan error
}

// New creates a service for cfg. The index is opened right away; a broken
// index is logged and the service falls back to scanning.
func New(cfg *config.Config, opts Options) (*Service, error) {
	s := &Service{Config: cfg, Log: opts.Log}

	if s.Log == nil {
		log, closeLog, err := logger.NewFileLogger(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.Log = log
		s.closers = append(s.closers, closeLog)
	}

	root := opts.Root
	if root == "" {
		root = cfg.Vault
	}
	root, err := filepath.Abs(filesystem.ExpandHome(root))
	if err != nil {
		return nil, fmt.Errorf("resolve vault path: %w", err)
	}
	s.Root = root

	repo := filesystem.NewRepository()
	notifiers := notify.Fanout{}

	var index ports.VaultIndex
	if cfg.Index.Enabled {
		idx := sqlite.NewIndex(cfg.Index.Path)
		if err := idx.Open(root); err != nil {
			s.Log.OperationFailed("open index", idx.Path(), err)
		} else {
			s.Index = idx
			index = idx
			notifiers = append(notifiers, sqlite.NewSink(idx, s.Log))
			s.closers = append(s.closers, func() { idx.Close() })
		}
	}

	notifiers = append(notifiers, notify.NewLog(s.Log))
	notifiers = append(notifiers, opts.Notifiers...)

	vaultOpts := commands.VaultOptions{
		Counts: cfg.Echoes,
		Index:  index,
		Sort:   cfg.Sort,
		Log:    s.Log,
	}
	if opts.Watch {
		echoes := reconcile.NewEchoCounter()
		s.Reconciler = reconcile.New(repo, fswatch.NewFactory(s.Log, 0), notifiers, echoes, s.Log,
			reconcile.Options{Debounce: cfg.Debounce, Sort: cfg.Sort})
		vaultOpts.Echoes = echoes
		vaultOpts.Reconciler = s.Reconciler
	}

	s.Vault = commands.NewVault(repo, application.NewSession(), notifiers, vaultOpts)
	return s, nil
}

// Start runs the reconciler until ctx is cancelled or Close is called
func (s *Service) Start(ctx context.Context) {
	if s.Reconciler == nil || s.done != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan error, 1)
	go func() {
		s.done <- s.Reconciler.Run(ctx)
	}()
}

// Open opens the vault. A watcher failure still returns the tree; callers
// decide whether running without change detection is acceptable.
func (s *Service) Open(ctx context.Context) (*domain.Entry, error) {
	tree, err := s.Vault.OpenVault(ctx, s.Root)
	if err != nil && Usable(err) {
		s.Log.Warn("running without change detection", "root", s.Root)
	}
	return tree, err
}

// Close stops the reconciler and releases the index and the log
func (s *Service) Close() error {
	var err error
	if s.cancel != nil {
		s.cancel()
		err = <-s.done
		s.cancel = nil
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
	return err
}

// Usable reports whether the vault can still be used after Open returned err
func Usable(err error) bool {
	return err == nil || errors.Is(err, application.ErrWatcherFailure)
}
