package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"mdvault/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	editor string // configured command, may carry arguments
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener. An empty editor falls back to
// $VISUAL, $EDITOR and then the first common editor on $PATH.
func NewOpener(editor string) *Opener {
	return &Opener{editor: strings.TrimSpace(editor)}
}

// OpenFile opens a note in the editor and waits for it to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a note in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	fields := strings.Fields(o.findEditor())
	if len(fields) == 0 {
		return nil, fmt.Errorf("no editor found: set editor in the config or $EDITOR")
	}

	args := append(fields[1:], path)
	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	if o.editor != "" {
		return o.editor
	}

	// $VISUAL is meant for full-screen editors, which is what we run
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if editor := os.Getenv(env); editor != "" {
			return editor
		}
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
