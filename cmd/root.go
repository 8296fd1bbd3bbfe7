package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "docsite",
	Short: "Documentation site builder with live table-of-contents tracking",
	Long: `docsite renders a tree of markdown pages into a documentation site with a
sidebar, previous/next pagination and an "On this page" outline. It indexes
every page in SQLite, serves the site over HTTP with live scroll sessions, and
exposes the content to AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".docsite.yml", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level debug)")
}
