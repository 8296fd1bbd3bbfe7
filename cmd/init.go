package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rubicon-docs/docsite/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize docsite configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure docsite for your project and writes the config file (.docsite.yml by default).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
