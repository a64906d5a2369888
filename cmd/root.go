package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tasknest",
	Short: "Multi-user task tracking server",
	Long: `A task tracking web application: users sign up, organize todos with
priorities, categories, due dates, subtasks and attachments, move them
across a kanban board, and export their list as a spreadsheet.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
