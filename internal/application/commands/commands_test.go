package commands

import (
	"errors"
	"strings"
	"testing"

	"mdvault/internal/application"
)

type recordingEchoes struct {
	expected  int
	cancelled int
}

func (r *recordingEchoes) Expect(n int) { r.expected += n }
func (r *recordingEchoes) Cancel(n int) { r.cancelled += n }

func TestEchoGuard(t *testing.T) {
	t.Run("success keeps the expectation", func(t *testing.T) {
		rec := &recordingEchoes{}
		calledAfterExpect := false
		err := Echo{Recorder: rec, Count: 2}.guard(func() error {
			calledAfterExpect = rec.expected == 2
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !calledAfterExpect {
			t.Error("expectation must be registered before the mutation runs")
		}
		if rec.cancelled != 0 {
			t.Errorf("expected no cancellation, got %d", rec.cancelled)
		}
	})

	t.Run("failure withdraws the expectation", func(t *testing.T) {
		rec := &recordingEchoes{}
		boom := errors.New("boom")
		err := Echo{Recorder: rec, Count: 2}.guard(func() error { return boom })
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if rec.expected != 2 || rec.cancelled != 2 {
			t.Errorf("expected 2/2, got %d/%d", rec.expected, rec.cancelled)
		}
	})

	t.Run("nil recorder", func(t *testing.T) {
		called := false
		err := Echo{Count: 1}.guard(func() error { called = true; return nil })
		if err != nil || !called {
			t.Errorf("fn should run without a recorder: called=%v err=%v", called, err)
		}
	})

	t.Run("zero count", func(t *testing.T) {
		rec := &recordingEchoes{}
		_ = Echo{Recorder: rec}.guard(func() error { return errors.New("x") })
		if rec.expected != 0 || rec.cancelled != 0 {
			t.Errorf("zero count must not touch the recorder: %+v", rec)
		}
	})
}

func assertValidation(t *testing.T, err error, wantErr bool, errMsg string) {
	t.Helper()
	if !wantErr {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Errorf("expected error containing %q, got nil", errMsg)
		return
	}
	if !strings.Contains(err.Error(), errMsg) {
		t.Errorf("expected error containing %q, got %q", errMsg, err.Error())
	}
	if !errors.Is(err, application.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation, got %v", err)
	}
}

func TestDeleteCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		root    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{name: "valid note", root: "/v", path: "/v/a.md"},
		{name: "valid nested folder", root: "/v", path: "/v/x/y"},
		{name: "no vault", root: "", path: "/v/a.md", wantErr: true, errMsg: "vault root is required"},
		{name: "empty path", root: "/v", path: "", wantErr: true, errMsg: "path is required"},
		{name: "outside vault", root: "/v", path: "/w/a.md", wantErr: true, errMsg: "outside the vault"},
		{name: "parent escape", root: "/v", path: "/v/../a.md", wantErr: true, errMsg: "outside the vault"},
		{name: "vault root", root: "/v", path: "/v/", wantErr: true, errMsg: "cannot delete the vault root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &DeleteCommand{Root: tt.root, Path: tt.path}
			assertValidation(t, cmd.Validate(), tt.wantErr, tt.errMsg)
		})
	}
}

func TestRenameCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		newName string
		wantErr bool
		errMsg  string
	}{
		{name: "valid", path: "/v/a.md", newName: "b"},
		{name: "valid with extension", path: "/v/a.md", newName: "b.md"},
		{name: "empty name", path: "/v/a.md", newName: "  ", wantErr: true, errMsg: "new name is required"},
		{name: "slash", path: "/v/a.md", newName: "x/b", wantErr: true, errMsg: "invalid new name"},
		{name: "backslash", path: "/v/a.md", newName: `x\b`, wantErr: true, errMsg: "invalid new name"},
		{name: "dot dot", path: "/v/a.md", newName: "..", wantErr: true, errMsg: "invalid new name"},
		{name: "hidden name", path: "/v/a.md", newName: ".secret", wantErr: true, errMsg: "cannot start with a dot"},
		{name: "hidden source", path: "/v/.git/a.md", newName: "b", wantErr: true, errMsg: "path is hidden"},
		{name: "vault root", path: "/v", newName: "w", wantErr: true, errMsg: "cannot rename the vault root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &RenameCommand{Root: "/v", Path: tt.path, NewName: tt.newName}
			assertValidation(t, cmd.Validate(), tt.wantErr, tt.errMsg)
		})
	}
}

func TestMoveCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		destDir string
		wantErr bool
		errMsg  string
	}{
		{name: "note into folder", path: "/v/a.md", destDir: "/v/x"},
		{name: "folder into sibling", path: "/v/x", destDir: "/v/y"},
		{name: "default destination is root", path: "/v/x/a.md", destDir: ""},
		{name: "same folder", path: "/v/x/a.md", destDir: "/v/x", wantErr: true, errMsg: "already in that folder"},
		{name: "same folder via default", path: "/v/a.md", destDir: "", wantErr: true, errMsg: "already in that folder"},
		{name: "into itself", path: "/v/x", destDir: "/v/x/sub", wantErr: true, errMsg: "cannot move a folder into itself"},
		{name: "destination outside", path: "/v/a.md", destDir: "/tmp", wantErr: true, errMsg: "outside the vault"},
		{name: "hidden destination", path: "/v/a.md", destDir: "/v/.trash", wantErr: true, errMsg: "destination folder is hidden"},
		{name: "vault root", path: "/v", destDir: "/v/x", wantErr: true, errMsg: "cannot be moved or copied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &MoveCommand{Root: "/v", Path: tt.path, DestDir: tt.destDir}
			assertValidation(t, cmd.Validate(), tt.wantErr, tt.errMsg)
		})
	}
}

func TestCopyCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		destDir string
		wantErr bool
		errMsg  string
	}{
		{name: "note into folder", path: "/v/a.md", destDir: "/v/x"},
		// a copy next to itself is caught by the collision check instead
		{name: "same folder", path: "/v/a.md", destDir: "/v"},
		{name: "into itself", path: "/v/x", destDir: "/v/x", wantErr: true, errMsg: "cannot copy a folder into itself"},
		{name: "into own subfolder", path: "/v/x", destDir: "/v/x/y", wantErr: true, errMsg: "cannot copy a folder into itself"},
		{name: "destination outside", path: "/v/a.md", destDir: "/w", wantErr: true, errMsg: "outside the vault"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CopyCommand{Root: "/v", Path: tt.path, DestDir: tt.destDir}
			assertValidation(t, cmd.Validate(), tt.wantErr, tt.errMsg)
		})
	}
}

func TestCreateFolderCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		parent  string
		folder  string
		wantErr bool
		errMsg  string
	}{
		{name: "default name and parent", parent: "", folder: ""},
		{name: "named", parent: "/v/x", folder: "Projects"},
		{name: "bad name", parent: "/v", folder: "a/b", wantErr: true, errMsg: "invalid name"},
		{name: "hidden name", parent: "/v", folder: ".cache", wantErr: true, errMsg: "name cannot start with a dot"},
		{name: "hidden parent", parent: "/v/.trash", folder: "x", wantErr: true, errMsg: "parent folder is hidden"},
		{name: "parent outside", parent: "/elsewhere", folder: "", wantErr: true, errMsg: "outside the vault"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CreateFolderCommand{Root: "/v", Parent: tt.parent, Name: tt.folder}
			assertValidation(t, cmd.Validate(), tt.wantErr, tt.errMsg)
		})
	}
}
