package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/expense-tracker/cmd/chart"
	"fjacquet/expense-tracker/cmd/expense"
	"fjacquet/expense-tracker/cmd/export"
	"fjacquet/expense-tracker/cmd/recurring"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/cmd/summary"
	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/logging"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	config.LoadEnv()

	// 2. Until the configuration is read, log at the LOG_LEVEL level
	level := strings.ToLower(config.GetEnv("LOG_LEVEL", "info"))
	root.Log = logging.NewLogrusAdapter(level, "text")

	// 3. Initialize root command
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(expense.Commands()...)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(chart.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(recurring.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
