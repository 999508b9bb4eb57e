package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mdvault/internal/application/commands"
	"mdvault/internal/domain"
)

// RegisterReadTools adds all read-only vault tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, vault *commands.Vault) {
	s.AddTool(treeTool(), treeHandler(vault))
	s.AddTool(searchTool(), searchHandler(vault))
	s.AddTool(openNoteTool(), openNoteHandler(vault))
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the vault structure as a tree. Folders end with a slash."),
		mcp.WithString("path",
			mcp.Description("Folder to display, relative to the vault root. Omit for the whole vault."),
		),
	)
}

func treeHandler(vault *commands.Vault) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tree, err := vault.FolderContent(ctx)
		if err != nil {
			return toolError(err)
		}

		node := tree
		if rel := req.GetString("path", ""); rel != "" {
			path, err := resolve(vault, rel)
			if err != nil {
				return toolError(err)
			}
			if node = tree.Find(path); node == nil || !node.IsDir {
				return toolError(fmt.Errorf("not a folder in the vault: %s", rel))
			}
		}

		var sb strings.Builder
		RenderTree(&sb, node, "")
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// RenderTree writes the children of node as an indented listing
func RenderTree(sb *strings.Builder, node *domain.Entry, prefix string) {
	for _, child := range node.Children {
		if child.IsDir {
			fmt.Fprintf(sb, "%s%s/\n", prefix, child.Name)
			RenderTree(sb, child, prefix+"  ")
			continue
		}
		fmt.Fprintf(sb, "%s%s\n", prefix, child.Name)
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy search note and folder names. Returns vault-relative paths, best match first."),
		mcp.WithString("query",
			mcp.Description("Search query (at least two characters)"),
			mcp.Required(),
		),
	)
}

func searchHandler(vault *commands.Vault) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := vault.Search(ctx, query)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			kind := "note"
			if r.IsDir {
				kind = "folder"
			}
			fmt.Fprintf(&sb, "%s  %s  %d\n", relative(vault, r.Path), kind, r.Score)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- open_note ---

func openNoteTool() mcp.Tool {
	return mcp.NewTool("open_note",
		mcp.WithDescription("Open a note and return its Markdown content. The note becomes the target of save_note."),
		mcp.WithString("path",
			mcp.Description("Note path relative to the vault root (e.g. Projects/plan.md)"),
			mcp.Required(),
		),
	)
}

func openNoteHandler(vault *commands.Vault) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := resolve(vault, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := vault.OpenNote(ctx, path)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Content), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// resolve turns a vault-relative path into an absolute one.
// Absolute paths are passed through and checked by the commands.
func resolve(vault *commands.Vault, rel string) (string, error) {
	root, err := vault.Session().Root()
	if err != nil {
		return "", err
	}
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return "", fmt.Errorf("path is required")
	}
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel), nil
	}
	return filepath.Join(root, rel), nil
}

// resolveOptional is resolve for arguments that default to the vault root
func resolveOptional(vault *commands.Vault, rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", nil
	}
	return resolve(vault, rel)
}

func relative(vault *commands.Vault, path string) string {
	root, err := vault.Session().Root()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
