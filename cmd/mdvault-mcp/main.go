package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "mdvault/internal/adapters/mcp"
	"mdvault/internal/config"
	"mdvault/internal/service"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	vaultFlag := flag.String("vault", "", "path to the vault (overrides the config)")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("mdvault-mcp: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the reconciler keeps the index current while the server runs
	svc, err := service.New(cfg, service.Options{Root: *vaultFlag, Watch: true})
	if err != nil {
		log.Fatalf("mdvault-mcp: %v", err)
	}
	defer svc.Close()

	svc.Start(ctx)
	if _, err := svc.Open(ctx); !service.Usable(err) {
		log.Fatalf("mdvault-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"mdvault-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, svc.Vault)
	mcpadapter.RegisterWriteTools(mcpServer, svc.Vault)

	if err := server.ServeStdio(mcpServer); err != nil {
		svc.Close()
		log.Fatalf("mdvault-mcp: %v", err)
	}
}
