package ports

import "os/exec"

// EditorOpener opens notes in an external editor
type EditorOpener interface {
	// OpenFile runs the user's $EDITOR on path and waits for it to exit
	OpenFile(path string) error

	// Command returns the editor process without starting it,
	// for use with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}

// LinkOpener hands links and files to the desktop's default handler
type LinkOpener interface {
	// OpenLink opens a web or mail link
	OpenLink(link string) error

	// OpenFile opens an absolute path with its registered application
	OpenFile(path string) error
}
