// Package reconcile keeps the presentation layer in step with the vault on
// disk. Watcher events caused by the app's own mutations are turned into
// granular notifications; anything else schedules a debounced full rescan.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"mdvault/internal/application"
	"mdvault/internal/domain"
	"mdvault/internal/logger"
	"mdvault/internal/ports"
)

// DefaultDebounce is the quiet period before an external change triggers a rescan
const DefaultDebounce = time.Second

// errStopped is returned by SetRoot once Run has exited
var errStopped = errors.New("reconciler stopped")

// State is the reconciler's debounce state
type State int32

const (
	StateIdle State = iota
	StateDebouncePending
)

func (s State) String() string {
	switch s {
	case StateDebouncePending:
		return "debounce-pending"
	default:
		return "idle"
	}
}

// Stats counts what the reconciler has done since it started
type Stats struct {
	EchoesConsumed int64 `json:"echoesConsumed"`
	ExternalEvents int64 `json:"externalEvents"`
	Rescans        int64 `json:"rescans"`
	WatcherErrors  int64 `json:"watcherErrors"`
}

// Options configures a Reconciler
type Options struct {
	Debounce time.Duration
	Sort     domain.SortMode
}

// Reconciler owns the vault watcher, the debounce timer and the echo counter.
// All three are only touched from the goroutine running Run.
type Reconciler struct {
	repo     ports.VaultRepository
	factory  ports.WatcherFactory
	notifier ports.Notifier
	echoes   *EchoCounter
	log      *logger.Logger
	debounce time.Duration
	sort     domain.SortMode

	rootReqs chan rootRequest
	done     chan struct{}

	state          atomic.Int32
	echoesConsumed atomic.Int64
	externalEvents atomic.Int64
	rescans        atomic.Int64
	watcherErrors  atomic.Int64
}

var _ ports.Reconciler = (*Reconciler)(nil)

type rootRequest struct {
	root  string
	reply chan error
}

// New creates a reconciler. Run must be started before SetRoot is called.
func New(
	repo ports.VaultRepository,
	factory ports.WatcherFactory,
	notifier ports.Notifier,
	echoes *EchoCounter,
	log *logger.Logger,
	opts Options,
) *Reconciler {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Reconciler{
		repo:     repo,
		factory:  factory,
		notifier: notifier,
		echoes:   echoes,
		log:      log,
		debounce: opts.Debounce,
		sort:     opts.Sort,
		rootReqs: make(chan rootRequest),
		done:     make(chan struct{}),
	}
}

// Echoes returns the counter mutating operations report to
func (r *Reconciler) Echoes() *EchoCounter {
	return r.echoes
}

// State returns the current debounce state
func (r *Reconciler) State() State {
	return State(r.state.Load())
}

// Stats returns a snapshot of the counters
func (r *Reconciler) Stats() Stats {
	return Stats{
		EchoesConsumed: r.echoesConsumed.Load(),
		ExternalEvents: r.externalEvents.Load(),
		Rescans:        r.rescans.Load(),
		WatcherErrors:  r.watcherErrors.Load(),
	}
}

// SetRoot replaces the active watcher with one rooted at root.
// A failure to attach leaves the session without live change detection
// and wraps ErrWatcherFailure.
func (r *Reconciler) SetRoot(ctx context.Context, root string) error {
	req := rootRequest{root: root, reply: make(chan error, 1)}

	select {
	case r.rootReqs <- req:
	case <-r.done:
		return errStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.reply:
		return err
	case <-r.done:
		return errStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// loop holds the state owned by the Run goroutine
type loop struct {
	root    string
	watcher ports.Watcher
	events  <-chan domain.WatchEvent
	errs    <-chan error
	timer   *time.Timer
	timerC  <-chan time.Time
}

// Run processes root changes, watcher events and debounce expiry until ctx
// is cancelled.
func (r *Reconciler) Run(ctx context.Context) error {
	defer close(r.done)

	l := &loop{}
	defer func() {
		r.stopTimer(l)
		r.detach(l)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case req := <-r.rootReqs:
			req.reply <- r.attach(l, req.root)

		case ev, ok := <-l.events:
			if !ok {
				l.events = nil
				continue
			}
			r.handleEvent(l, ev)

		case err, ok := <-l.errs:
			if !ok {
				l.errs = nil
				continue
			}
			r.watcherErrors.Add(1)
			r.log.WatcherFailed(l.root, err)

		case <-l.timerC:
			l.timerC = nil
			r.rescan(l.root)
			r.state.Store(int32(StateIdle))
		}
	}
}

// attach closes the current watcher and starts one over root.
// Events still buffered in the old watcher's channels are dropped with it.
func (r *Reconciler) attach(l *loop, root string) error {
	r.stopTimer(l)
	r.detach(l)
	l.root = root

	w, err := r.factory.Watch(root)
	if err != nil {
		r.log.WatcherFailed(root, err)
		return fmt.Errorf("%w: %s: %w", application.ErrWatcherFailure, root, err)
	}

	l.watcher = w
	l.events = w.Events()
	l.errs = w.Errors()
	return nil
}

func (r *Reconciler) detach(l *loop) {
	if l.watcher == nil {
		return
	}
	if err := l.watcher.Close(); err != nil {
		r.log.WatcherFailed(l.root, err)
	}
	l.watcher = nil
	l.events = nil
	l.errs = nil
}

func (r *Reconciler) stopTimer(l *loop) {
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timerC = nil
	r.state.Store(int32(StateIdle))
}

func (r *Reconciler) handleEvent(l *loop, ev domain.WatchEvent) {
	if echo, left := r.echoes.Consume(); echo {
		r.echoesConsumed.Add(1)
		r.log.EchoConsumed(string(ev.Kind), ev.Path, left)
		r.dispatch(ev)
		return
	}

	r.externalEvents.Add(1)
	r.log.ExternalChange(string(ev.Kind), ev.Path)

	// single timer: every external event pushes the deadline back
	if l.timer == nil {
		l.timer = time.NewTimer(r.debounce)
	} else {
		l.timer.Stop()
		l.timer.Reset(r.debounce)
	}
	l.timerC = l.timer.C
	r.state.Store(int32(StateDebouncePending))
}

// dispatch sends the granular notification for an echo event
func (r *Reconciler) dispatch(ev domain.WatchEvent) {
	if !ev.Kind.Exists() {
		r.notifier.EntryDeleted(ev.Path)
		return
	}

	entry, err := r.repo.Info(ev.Path)
	if err != nil {
		// the entry may already be gone again; the next rescan settles it
		r.log.OperationFailed("stat", ev.Path, err)
		return
	}

	switch ev.Kind {
	case domain.EventAdd, domain.EventAddDir:
		r.notifier.EntryCreated(entry)
	case domain.EventChange:
		r.notifier.EntryUpdated(entry)
	}
}

func (r *Reconciler) rescan(root string) {
	if root == "" {
		return
	}
	start := time.Now()
	tree, err := r.repo.Scan(root, r.sort)
	if err != nil {
		r.log.OperationFailed("scan", root, err)
		return
	}
	r.rescans.Add(1)
	r.log.Rescan(root, len(tree.Flatten()), time.Since(start))
	r.notifier.FolderContent(tree)
}
