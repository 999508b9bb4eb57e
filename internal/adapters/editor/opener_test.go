package editor

import (
	"testing"
)

func TestOpener_Command(t *testing.T) {
	tests := []struct {
		name     string
		editor   string
		visual   string
		env      string
		wantArgs []string
	}{
		{
			name:     "configured editor wins",
			editor:   "hx",
			visual:   "vim",
			env:      "nano",
			wantArgs: []string{"hx", "/v/a.md"},
		},
		{
			name:     "configured editor with arguments",
			editor:   "code --wait",
			wantArgs: []string{"code", "--wait", "/v/a.md"},
		},
		{
			name:     "visual before editor",
			visual:   "emacs -nw",
			env:      "nano",
			wantArgs: []string{"emacs", "-nw", "/v/a.md"},
		},
		{
			name:     "editor env",
			env:      "nano",
			wantArgs: []string{"nano", "/v/a.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VISUAL", tt.visual)
			t.Setenv("EDITOR", tt.env)

			cmd, err := NewOpener(tt.editor).Command("/v/a.md")
			if err != nil {
				t.Fatalf("Command failed: %v", err)
			}
			if len(cmd.Args) != len(tt.wantArgs) {
				t.Fatalf("expected args %v, got %v", tt.wantArgs, cmd.Args)
			}
			for i := range tt.wantArgs {
				if cmd.Args[i] != tt.wantArgs[i] {
					t.Errorf("arg %d: expected %q, got %q", i, tt.wantArgs[i], cmd.Args[i])
				}
			}
		})
	}
}

func TestOpener_NoEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	t.Setenv("PATH", t.TempDir())

	if _, err := NewOpener("").Command("/v/a.md"); err == nil {
		t.Error("expected an error when no editor can be found")
	}
}
