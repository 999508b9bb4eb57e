package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdvault/internal/adapters/notify"
	"mdvault/internal/application"
	"mdvault/internal/codec"
	"mdvault/internal/config"
	"mdvault/internal/logger"
	"mdvault/internal/ports"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "first.md"), []byte("# First\n"), 0644))

	cfg := config.DefaultConfig()
	cfg.Vault = root
	cfg.Debounce = 50 * time.Millisecond
	cfg.Index.Path = filepath.Join(t.TempDir(), "index.db")
	return cfg
}

func TestService_OpenSyncsIndex(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, Options{Log: logger.Discard()})
	require.NoError(t, err)
	defer s.Close()

	require.NotNil(t, s.Index)
	assert.Nil(t, s.Reconciler)

	tree, err := s.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg.Vault, tree.Path)

	node, err := s.Index.GetNode(filepath.Join(cfg.Vault, "first.md"))
	require.NoError(t, err)
	assert.Equal(t, "first", node.Name)
}

func TestService_IndexDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Index.Enabled = false

	s, err := New(cfg, Options{Log: logger.Discard()})
	require.NoError(t, err)
	defer s.Close()

	assert.Nil(t, s.Index)
	_, err = s.Open(context.Background())
	require.NoError(t, err)

	results, err := s.Vault.Search(context.Background(), "first")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(cfg.Vault, "first.md"), results[0].Path)
}

func TestService_RootOverride(t *testing.T) {
	cfg := testConfig(t)
	other := t.TempDir()

	s, err := New(cfg, Options{Root: other, Log: logger.Discard()})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, other, s.Root)
}

func TestService_WatchDeliversNotifications(t *testing.T) {
	cfg := testConfig(t)
	ch := notify.NewChannel(64)

	s, err := New(cfg, Options{Watch: true, Notifiers: []ports.Notifier{ch}, Log: logger.Discard()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	_, err = s.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, notify.KindFolderContent, (<-ch.C()).Kind)

	res, err := s.Vault.CreateNote(ctx, "")
	require.NoError(t, err)

	seen := func(kind notify.Kind, match func(notify.Message) bool) func() bool {
		return func() bool {
			for {
				select {
				case m := <-ch.C():
					if m.Kind == kind && match(m) {
						return true
					}
				default:
					return false
				}
			}
		}
	}

	assert.Eventually(t, seen(notify.KindEntryCreated, func(m notify.Message) bool {
		return m.Entry != nil && m.Entry.Path == res.Entry.Path
	}), 5*time.Second, 20*time.Millisecond)

	assert.Eventually(t, func() bool {
		_, err := s.Index.GetNode(res.Entry.Path)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	// a change made behind the app's back ends in a full listing
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Vault, "external.md"), []byte("x"), 0644))
	assert.Eventually(t, seen(notify.KindFolderContent, func(m notify.Message) bool {
		return m.Entry != nil && m.Entry.Find(filepath.Join(cfg.Vault, "external.md")) != nil
	}), 5*time.Second, 20*time.Millisecond)

	require.NoError(t, s.Close())
}

// startWatched opens a watched vault holding first.md, empty.md and
// docs/child.md and waits for the initial listing
func startWatched(t *testing.T) (*Service, *notify.Channel) {
	t.Helper()
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Vault, "empty.md"), nil, 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Vault, "docs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Vault, "docs", "child.md"), []byte("child\n"), 0644))

	ch := notify.NewChannel(256)
	s, err := New(cfg, Options{Watch: true, Notifiers: []ports.Notifier{ch}, Log: logger.Discard()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		s.Close()
	})
	s.Start(ctx)

	_, err = s.Open(ctx)
	require.NoError(t, err)
	return s, ch
}

func TestService_EchoesSettleAfterEachOperation(t *testing.T) {
	tests := []struct {
		name string
		run  func(ctx context.Context, s *Service) error
		// extra watcher events may be seen as external changes
		mayRescan bool
		wantErr   bool
	}{
		{name: "create note", run: func(ctx context.Context, s *Service) error {
			_, err := s.Vault.CreateNote(ctx, "")
			return err
		}},
		{name: "create folder", run: func(ctx context.Context, s *Service) error {
			_, err := s.Vault.CreateFolder(ctx, "", "Ideas")
			return err
		}},
		{name: "rename note", run: func(ctx context.Context, s *Service) error {
			_, err := s.Vault.Rename(ctx, filepath.Join(s.Root, "first.md"), "renamed")
			return err
		}},
		{name: "move note", run: func(ctx context.Context, s *Service) error {
			_, err := s.Vault.Move(ctx, filepath.Join(s.Root, "first.md"), filepath.Join(s.Root, "docs"))
			return err
		}},
		{name: "copy note", run: func(ctx context.Context, s *Service) error {
			_, err := s.Vault.Copy(ctx, filepath.Join(s.Root, "first.md"), filepath.Join(s.Root, "docs"))
			return err
		}},
		{name: "copy empty note", run: func(ctx context.Context, s *Service) error {
			_, err := s.Vault.Copy(ctx, filepath.Join(s.Root, "empty.md"), filepath.Join(s.Root, "docs"))
			return err
		}},
		{name: "copy folder", mayRescan: true, run: func(ctx context.Context, s *Service) error {
			_, err := s.Vault.CreateFolder(ctx, "", "Target")
			if err != nil {
				return err
			}
			_, err = s.Vault.Copy(ctx, filepath.Join(s.Root, "docs"), filepath.Join(s.Root, "Target"))
			return err
		}},
		{name: "delete note", run: func(ctx context.Context, s *Service) error {
			_, err := s.Vault.Delete(ctx, filepath.Join(s.Root, "empty.md"))
			return err
		}},
		{name: "delete folder with child", mayRescan: true, run: func(ctx context.Context, s *Service) error {
			_, err := s.Vault.Delete(ctx, filepath.Join(s.Root, "docs"))
			return err
		}},
		{name: "save note", run: func(ctx context.Context, s *Service) error {
			if _, err := s.Vault.OpenNote(ctx, filepath.Join(s.Root, "first.md")); err != nil {
				return err
			}
			doc, err := codec.EncodeDocument(codec.MarkdownToTree("# Changed\n\nbody\n"))
			if err != nil {
				return err
			}
			_, err = s.Vault.SaveNote(ctx, doc)
			return err
		}},
		{name: "hidden folder name", wantErr: true, run: func(ctx context.Context, s *Service) error {
			_, err := s.Vault.CreateFolder(ctx, "", ".cache")
			return err
		}},
		{name: "rename to hidden name", wantErr: true, run: func(ctx context.Context, s *Service) error {
			_, err := s.Vault.Rename(ctx, filepath.Join(s.Root, "first.md"), ".secret")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ch := startWatched(t)
			ctx := context.Background()
			echoes := s.Reconciler.Echoes()

			err := tt.run(ctx, s)
			if tt.wantErr {
				require.ErrorIs(t, err, application.ErrInvalidOperation)
				assert.Equal(t, 0, echoes.Pending())
			} else {
				require.NoError(t, err)
			}

			assert.Eventually(t, func() bool { return echoes.Pending() == 0 },
				5*time.Second, 20*time.Millisecond, "booked echoes never arrived")

			if !tt.mayRescan {
				assert.Never(t, func() bool { return s.Reconciler.Stats().Rescans > 0 },
					300*time.Millisecond, 20*time.Millisecond, "own change was taken as external")
			}

			// with the counter settled, an outside write must still be rescanned
			external := filepath.Join(s.Root, "external.md")
			require.NoError(t, os.WriteFile(external, []byte("x"), 0644))
			assert.Eventually(t, func() bool {
				for {
					select {
					case m := <-ch.C():
						if m.Kind == notify.KindFolderContent && m.Entry != nil && m.Entry.Find(external) != nil {
							return true
						}
					default:
						return false
					}
				}
			}, 5*time.Second, 20*time.Millisecond, "external write went unnoticed")
		})
	}
}

func TestUsable(t *testing.T) {
	assert.True(t, Usable(nil))
	assert.True(t, Usable(fmt.Errorf("%w: /v: too many watches", application.ErrWatcherFailure)))
	assert.False(t, Usable(application.ErrNotFound))
}
