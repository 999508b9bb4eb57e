package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mdvault/internal/application/commands"
	"mdvault/internal/codec"
)

// RegisterWriteTools adds all write vault tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, vault *commands.Vault) {
	s.AddTool(createNoteTool(), createNoteHandler(vault))
	s.AddTool(createFolderTool(), createFolderHandler(vault))
	s.AddTool(deleteTool(), deleteHandler(vault))
	s.AddTool(renameTool(), renameHandler(vault))
	s.AddTool(moveTool(), moveHandler(vault))
	s.AddTool(copyTool(), copyHandler(vault))
	s.AddTool(saveNoteTool(), saveNoteHandler(vault))
}

// --- create_note ---

func createNoteTool() mcp.Tool {
	return mcp.NewTool("create_note",
		mcp.WithDescription("Create an empty note named Untitled (numbered when taken). Use rename afterwards to name it."),
		mcp.WithString("parent",
			mcp.Description("Folder relative to the vault root. Omit for the vault root."),
		),
	)
}

func createNoteHandler(vault *commands.Vault) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		parent, err := resolveOptional(vault, req.GetString("parent", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := vault.CreateNote(ctx, parent)
		if err != nil {
			return toolError(err)
		}
		return created(vault, result), nil
	}
}

// --- create_folder ---

func createFolderTool() mcp.Tool {
	return mcp.NewTool("create_folder",
		mcp.WithDescription("Create a folder. The name is numbered when already taken."),
		mcp.WithString("parent",
			mcp.Description("Folder relative to the vault root. Omit for the vault root."),
		),
		mcp.WithString("name",
			mcp.Description("Folder name. Defaults to Untitled."),
		),
	)
}

func createFolderHandler(vault *commands.Vault) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		parent, err := resolveOptional(vault, req.GetString("parent", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := vault.CreateFolder(ctx, parent, req.GetString("name", ""))
		if err != nil {
			return toolError(err)
		}
		return created(vault, result), nil
	}
}

func created(vault *commands.Vault, result *commands.CreateResult) *mcp.CallToolResult {
	return mcp.NewToolResultText(fmt.Sprintf("%s (%s)", result.Message, relative(vault, result.Entry.Path)))
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete a note, or a folder with everything inside it."),
		mcp.WithString("path",
			mcp.Description("Path relative to the vault root"),
			mcp.Required(),
		),
	)
}

func deleteHandler(vault *commands.Vault) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := resolve(vault, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := vault.Delete(ctx, path)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- rename ---

func renameTool() mcp.Tool {
	return mcp.NewTool("rename",
		mcp.WithDescription("Rename a note or folder in place. Notes keep the .md extension when the new name has none."),
		mcp.WithString("path",
			mcp.Description("Path relative to the vault root"),
			mcp.Required(),
		),
		mcp.WithString("new_name",
			mcp.Description("New name, without any folder"),
			mcp.Required(),
		),
	)
}

func renameHandler(vault *commands.Vault) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := resolve(vault, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := vault.Rename(ctx, path, req.GetString("new_name", ""))
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- move / copy ---

func moveTool() mcp.Tool {
	return mcp.NewTool("move",
		mcp.WithDescription("Move a note or folder into another folder."),
		mcp.WithString("path",
			mcp.Description("Path relative to the vault root"),
			mcp.Required(),
		),
		mcp.WithString("destination",
			mcp.Description("Destination folder relative to the vault root. Omit for the vault root."),
		),
	)
}

func moveHandler(vault *commands.Vault) server.ToolHandlerFunc {
	return transferHandler(vault, vault.Move)
}

func copyTool() mcp.Tool {
	return mcp.NewTool("copy",
		mcp.WithDescription("Copy a note or folder into another folder. The original is untouched."),
		mcp.WithString("path",
			mcp.Description("Path relative to the vault root"),
			mcp.Required(),
		),
		mcp.WithString("destination",
			mcp.Description("Destination folder relative to the vault root. Omit for the vault root."),
		),
	)
}

func copyHandler(vault *commands.Vault) server.ToolHandlerFunc {
	return transferHandler(vault, vault.Copy)
}

type transferFunc func(ctx context.Context, path, destDir string) (*commands.MoveResult, error)

func transferHandler(vault *commands.Vault, transfer transferFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := resolve(vault, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}
		dest, err := resolveOptional(vault, req.GetString("destination", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := transfer(ctx, path, dest)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- save_note ---

func saveNoteTool() mcp.Tool {
	return mcp.NewTool("save_note",
		mcp.WithDescription("Replace the content of a note. Only headings, paragraphs, bold and italic are kept."),
		mcp.WithString("path",
			mcp.Description("Note path relative to the vault root"),
			mcp.Required(),
		),
		mcp.WithString("markdown",
			mcp.Description("New Markdown content"),
			mcp.Required(),
		),
	)
}

func saveNoteHandler(vault *commands.Vault) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := resolve(vault, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}

		// the document travels in the editor's form, like any other save
		document, err := codec.EncodeDocument(codec.MarkdownToTree(req.GetString("markdown", "")))
		if err != nil {
			return toolError(err)
		}

		if _, err := vault.OpenNote(ctx, path); err != nil {
			return toolError(err)
		}
		result, err := vault.SaveNote(ctx, document)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
