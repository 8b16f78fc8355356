package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Ajith-oo7/Data-lysis/internal/version"
	"github.com/Ajith-oo7/Data-lysis/mcp"
)

const serverName = "datalysis"

func main() {
	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Create MCP server with tool capabilities
	server := mcpserver.NewMCPServer(
		serverName,
		version.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	// Register all datalysis tools
	mcp.RegisterTools(server)

	log.Printf("Starting %s MCP server v%s\n", serverName, version.Version)
	log.Println("Registered tools:")
	log.Println("  - analyze_dataset: Exploratory dataset analysis")
	log.Println("  - clean_dataset: Data cleaning pipeline")
	log.Println("  - query_dataset: Natural-language dataset questions")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	// Start server with stdio transport
	// This blocks until the server is terminated
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
