package launcher

import (
	"errors"
	"os/exec"
	"testing"
)

func recording(goos string) (*Launcher, *[][]string) {
	var calls [][]string
	l := &Launcher{
		goos: goos,
		run: func(cmd *exec.Cmd) error {
			calls = append(calls, cmd.Args)
			return nil
		},
	}
	return l, &calls
}

func TestParseLink(t *testing.T) {
	tests := []struct {
		name    string
		link    string
		want    string
		wantErr bool
	}{
		{name: "https", link: "https://example.com/a?b=c", want: "https://example.com/a?b=c"},
		{name: "quoted", link: `"https://example.com"`, want: "https://example.com"},
		{name: "single quoted", link: "'http://example.com'", want: "http://example.com"},
		{name: "mailto", link: "mailto:me@example.com", want: "mailto:me@example.com"},
		{name: "uppercase scheme", link: "HTTPS://example.com", want: "https://example.com"},
		{name: "file scheme", link: "file:///etc/passwd", wantErr: true},
		{name: "no scheme", link: "example.com", wantErr: true},
		{name: "custom scheme", link: "javascript:alert(1)", wantErr: true},
		{name: "empty", link: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLink(tt.link)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseLink(%q) = %q, want error", tt.link, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLink(%q) error = %v", tt.link, err)
			}
			if got != tt.want {
				t.Errorf("ParseLink(%q) = %q, want %q", tt.link, got, tt.want)
			}
		})
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		goos    string
		want    []string
		wantErr bool
	}{
		{goos: "darwin", want: []string{"open", "/v/a.md"}},
		{goos: "linux", want: []string{"xdg-open", "/v/a.md"}},
		{goos: "windows", want: []string{"cmd", "/c", "start", "", "/v/a.md"}},
		{goos: "plan9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			l, _ := recording(tt.goos)
			cmd, err := l.Command("/v/a.md")
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Command() error = %v", err)
			}
			if len(cmd.Args) != len(tt.want) {
				t.Fatalf("args = %q, want %q", cmd.Args, tt.want)
			}
			for i := range tt.want {
				if cmd.Args[i] != tt.want[i] {
					t.Errorf("args = %q, want %q", cmd.Args, tt.want)
				}
			}
		})
	}
}

func TestOpenLink(t *testing.T) {
	l, calls := recording("linux")

	if err := l.OpenLink(`"https://example.com"`); err != nil {
		t.Fatalf("OpenLink() error = %v", err)
	}
	if len(*calls) != 1 || (*calls)[0][1] != "https://example.com" {
		t.Errorf("calls = %q", *calls)
	}

	if err := l.OpenLink("file:///etc/passwd"); err == nil {
		t.Error("file links must be refused")
	}
	if len(*calls) != 1 {
		t.Errorf("refused link was launched: %q", *calls)
	}
}

func TestOpenFile(t *testing.T) {
	l, calls := recording("darwin")

	if err := l.OpenFile("/v/notes/a.md"); err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if len(*calls) != 1 || (*calls)[0][0] != "open" {
		t.Errorf("calls = %q", *calls)
	}

	if err := l.OpenFile("notes/a.md"); err == nil {
		t.Error("relative paths must be refused")
	}
}

func TestOpen_RunFailure(t *testing.T) {
	l := &Launcher{goos: "linux", run: func(*exec.Cmd) error { return errors.New("no handler") }}
	if err := l.OpenFile("/v/a.md"); err == nil {
		t.Error("expected error")
	}
}
