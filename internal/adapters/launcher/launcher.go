package launcher

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"mdvault/internal/ports"
)

// allowedSchemes are the link schemes handed to the system
var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// Launcher implements ports.LinkOpener with the platform's default handler
type Launcher struct {
	goos string
	run  func(cmd *exec.Cmd) error
}

var _ ports.LinkOpener = (*Launcher)(nil)

// New creates a launcher for the running platform
func New() *Launcher {
	return &Launcher{
		goos: runtime.GOOS,
		run:  func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

// OpenLink opens a web or mail link. Quotes around the link are ignored.
func (l *Launcher) OpenLink(link string) error {
	uri, err := ParseLink(link)
	if err != nil {
		return err
	}
	return l.open(uri)
}

// OpenFile opens a file with the application registered for its type
func (l *Launcher) OpenFile(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}
	return l.open(path)
}

// ParseLink cleans and checks a link before it is opened
func ParseLink(link string) (string, error) {
	link = strings.TrimSpace(strings.Trim(link, `'"`))
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid link: %w", err)
	}
	if !allowedSchemes[strings.ToLower(u.Scheme)] {
		return "", fmt.Errorf("unsupported link: %s", link)
	}
	return u.String(), nil
}

// Command returns the process that opens target
func (l *Launcher) Command(target string) (*exec.Cmd, error) {
	switch l.goos {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", target), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", l.goos)
	}
}

func (l *Launcher) open(target string) error {
	cmd, err := l.Command(target)
	if err != nil {
		return err
	}
	if err := l.run(cmd); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	return nil
}
