package main

import (
	"fmt"
	"os"

	"facility-work-tracker/cmd/server"
	"facility-work-tracker/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "facility",
	Short: "College facility work-order and attendance tracker",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.File = configFile
	},
	SilenceUsage: true,
}

var configFile string

// serverCmd 默认命令，启动 HTTP 服务
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		server.Init()
		server.Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./config.yaml)")
	rootCmd.AddCommand(serverCmd, migrateCmd, createUserCmd, reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
