package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdvault/internal/config"
	"mdvault/internal/domain"
)

const planNote = "# Plan\n\nship **it**\n"

type cliFixture struct {
	root    string
	cfgFile string
}

func setupCLI(t *testing.T) *cliFixture {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Projects"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Projects", "plan.md"), []byte(planNote), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "inbox.md"), []byte("todo\n"), 0644))

	state := t.TempDir()
	cfgFile := filepath.Join(state, "config.yaml")
	yaml := fmt.Sprintf("vault: %s\nlog_file: %s\nindex:\n  path: %s\n",
		root, filepath.Join(state, "mdvault.log"), filepath.Join(state, "index.db"))
	require.NoError(t, os.WriteFile(cfgFile, []byte(yaml), 0644))

	return &cliFixture{root: root, cfgFile: cfgFile}
}

func (f *cliFixture) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	treeSort, treeOutput, folderName, openMarkdown = "", "text", "", false
	svc, cfg = nil, nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", f.cfgFile}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTree(t *testing.T) {
	f := setupCLI(t)

	out, err := f.run(t, "", "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "  Projects/\n")
	assert.Contains(t, out, "    plan\n")
	assert.Contains(t, out, "  inbox\n")
}

func TestTree_Formats(t *testing.T) {
	f := setupCLI(t)

	out, err := f.run(t, "", "tree", "--output", "json")
	require.NoError(t, err)
	var root domain.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	assert.Equal(t, f.root, root.Path)
	assert.Len(t, root.Children, 2)

	out, err = f.run(t, "", "tree", "-o", "yaml", "--sort", "name-desc")
	require.NoError(t, err)
	assert.Contains(t, out, "isDirectory: true")
	assert.Less(t, strings.Index(out, "name: inbox"), strings.Index(out, "name: Projects"),
		"name-desc puts lowercase names first")

	_, err = f.run(t, "", "tree", "-o", "xml")
	assert.Error(t, err)

	_, err = f.run(t, "", "tree", "--sort", "sideways")
	assert.Error(t, err)
}

func TestCreate(t *testing.T) {
	f := setupCLI(t)

	out, err := f.run(t, "", "create", "note", "Projects")
	require.NoError(t, err)
	assert.Contains(t, out, "Created note: Untitled")
	assert.FileExists(t, filepath.Join(f.root, "Projects", "Untitled.md"))

	_, err = f.run(t, "", "create", "folder", "--name", "Archive")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(f.root, "Archive"))

	_, err = f.run(t, "", "create", "note", "missing")
	assert.Error(t, err)
}

func TestRenameMoveCopyDelete(t *testing.T) {
	f := setupCLI(t)

	_, err := f.run(t, "", "rename", "inbox.md", "later")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.root, "later.md"))

	_, err = f.run(t, "", "move", "later.md", "Projects")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.root, "Projects", "later.md"))

	_, err = f.run(t, "", "copy", "Projects/later.md")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.root, "later.md"))
	assert.FileExists(t, filepath.Join(f.root, "Projects", "later.md"))

	_, err = f.run(t, "", "delete", "Projects")
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(f.root, "Projects"))

	_, err = f.run(t, "", "delete", "Projects")
	assert.Error(t, err)
}

func TestOpenAndSave(t *testing.T) {
	f := setupCLI(t)

	doc, err := f.run(t, "", "open", "Projects/plan.md")
	require.NoError(t, err)
	assert.Contains(t, doc, `"heading"`)

	out, err := f.run(t, "", "open", "Projects/plan.md", "--markdown")
	require.NoError(t, err)
	assert.Equal(t, planNote, out)

	out, err = f.run(t, doc, "save", "inbox.md", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved inbox")

	data, err := os.ReadFile(filepath.Join(f.root, "inbox.md"))
	require.NoError(t, err)
	assert.Equal(t, planNote, string(data))

	_, err = f.run(t, "{not json", "save", "inbox.md")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	f := setupCLI(t)

	out, err := f.run(t, "", "search", "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "[note] Projects/plan.md")

	out, err = f.run(t, "", "search", "zzzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found")
}

func TestInit(t *testing.T) {
	f := setupCLI(t)
	other := t.TempDir()

	out, err := f.run(t, "", "init", other)
	require.NoError(t, err)
	assert.Contains(t, out, other)

	loaded, err := config.Load(f.cfgFile)
	require.NoError(t, err)
	assert.Equal(t, other, loaded.Vault)

	_, err = f.run(t, "", "init", filepath.Join(other, "missing"))
	assert.Error(t, err)
}

func TestLink_RefusesOtherSchemes(t *testing.T) {
	f := setupCLI(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "file scheme", args: []string{"link", "file:///etc/passwd"}, want: "unsupported link"},
		{name: "no scheme", args: []string{"link", "notes/plan.md"}, want: "unsupported link"},
		{name: "missing argument", args: []string{"link"}, want: "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.run(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
