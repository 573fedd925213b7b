package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

var configFile string

var rootCmd = &cobra.Command{
	Use:   "multisite-server",
	Short: "Multisite project tree store",
	Long: `multisite-server keeps a forest of projects with their items, files and
activity, and serves it over a REST API and the Model Context Protocol.

Without a subcommand it runs "serve", or "mcp" when transport.mode is stdio.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Transport.Mode == "stdio" {
			return runMCP(cmd.Context(), cfg)
		}
		return runServe(cmd.Context(), cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "multisite-server %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (overrides MULTISITE_CONFIG_PATH)")

	rootCmd.AddCommand(versionCmd, serveCmd, mcpCmd, treeCmd, statsCmd, exportCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
