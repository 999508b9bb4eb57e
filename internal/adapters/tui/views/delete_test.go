package views

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteModel(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    any
		deleted bool
	}{
		{name: "confirm", key: "y", deleted: true},
		{name: "decline", key: "n", want: SwitchToBrowserMsg{}},
		{name: "escape", key: "esc", want: SwitchToBrowserMsg{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupBrowser(t)
			m := NewDeleteModel(f.vault)
			m.SetTarget(f.entry(t, "docs"))
			assert.Contains(t, m.View(), "docs")

			msg := send(m, keyPress(tt.key))

			if tt.deleted {
				done, ok := msg.(OpDoneMsg)
				require.True(t, ok, "got %T", msg)
				require.NoError(t, done.Err)
				assert.NoDirExists(t, filepath.Join(f.root, "docs"))
				return
			}
			assert.Equal(t, tt.want, msg)
			assert.DirExists(t, filepath.Join(f.root, "docs"))
		})
	}
}

func TestDeleteModel_IgnoresOtherKeys(t *testing.T) {
	f := setupBrowser(t)
	m := NewDeleteModel(f.vault)
	m.SetTarget(f.entry(t, "z.md"))

	assert.Nil(t, send(m, keyPress("x")))
	assert.FileExists(t, filepath.Join(f.root, "z.md"))
}
