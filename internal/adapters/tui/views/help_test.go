package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpModel_ListsEveryView(t *testing.T) {
	m := NewHelpModel()
	view := m.View()

	for _, want := range []string{"Vault tree", "Note preview", "Move and copy", "Search", "Delete", "move/copy", "new folder"} {
		assert.Contains(t, view, want)
	}
}

func TestHelpModel_Close(t *testing.T) {
	for _, k := range []string{"esc", "q", "?"} {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, SwitchToBrowserMsg{}, send(NewHelpModel(), keyPress(k)))
		})
	}
}
