package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wronai/taskguard/internal/logging"
	"github.com/wronai/taskguard/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:          "taskguard",
	Short:        "Task focus and security scanning for development workflows",
	Long:         "taskguard - keep work focused on one task at a time and scan the codebase for dangerous constructs",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := storage.InitConfig()
		if err != nil {
			return err
		}
		return logging.Init(cfg.Log.Level)
	},
}

func main() {
	rootCmd.AddCommand(
		getScanCommand(),
		getInitCommand(),
		getAddCommand(),
		getListCommand(),
		getStartCommand(),
		getCompleteCommand(),
		getImportCommand(),
		getTasksCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
