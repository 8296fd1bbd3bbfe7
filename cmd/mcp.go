package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/rubicon-docs/docsite/internal/mcp"
	"github.com/rubicon-docs/docsite/internal/pages"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the navigation tree and the page index to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		tree, err := loadNavigation(cfg)
		if err != nil {
			return err
		}

		database, err := openIndex(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		store := pages.NewStore(database)
		count, err := store.Count(cmd.Context())
		if err != nil {
			return err
		}
		if count == 0 {
			fmt.Fprintf(os.Stderr, "Warning: the page index at %s is empty. Run `docsite build` first.\n", cfg.DatabasePath)
		}

		mcpserver.Version = Version

		// Stdout carries the MCP protocol.
		fmt.Fprintf(os.Stderr, "docsite MCP server started on stdio (pages=%d)\n", count)

		return mcpserver.NewServer(tree, store).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
