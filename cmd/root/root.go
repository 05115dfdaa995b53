// Package root contains the root command for the application
package root

import (
	"fmt"
	"time"

	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/container"
	"fjacquet/expense-tracker/internal/fileutils"
	"fjacquet/expense-tracker/internal/logging"

	"github.com/spf13/cobra"
)

// SkipRecurringAnnotation marks commands that must not process recurring
// rules on startup because they do it themselves.
const SkipRecurringAnnotation = "skip-recurring-on-start"

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer holds the dependencies of the running command
	AppContainer *container.Container

	// Now returns the current date; tests replace it
	Now = time.Now

	// ConfigFile is the --config flag
	ConfigFile string

	// DataDir is the --data-dir flag
	DataDir string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "expense-tracker",
		Short: "A personal expense tracker with recurring expenses, summaries and CSV export.",
		Long: `expense-tracker records personal expenses, generates recurring ones on
their due day, prints monthly and category summaries or charts and exports to CSV.
Without a subcommand it starts the interactive menu.`,
		SilenceUsage:      true,
		PersistentPreRunE: initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetContainer()
			if err != nil {
				return err
			}
			return c.NewShell(cmd.InOrStdin(), cmd.OutOrStdout(), Now).Run()
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	if Cmd.PersistentFlags().Lookup("config") != nil {
		return
	}
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file (default is config.yaml in $HOME/.expense-tracker, .expense-tracker or .)")
	Cmd.PersistentFlags().StringVar(&DataDir, "data-dir", "", "Directory holding the expense and recurring expense files")
}

// GetContainer returns the container built for the running command.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return AppContainer, nil
}

func initApp(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.InitializeConfig(ConfigFile)
	if err != nil {
		return err
	}
	if DataDir != "" {
		cfg.Data.Directory = DataDir
	}
	Log = config.NewLogger(cfg)

	if err := fileutils.EnsureDirectoryExists(cfg.Data.Directory); err != nil {
		return fmt.Errorf("error preparing data directory: %w", err)
	}

	c, err := container.NewContainerWithLogger(cfg, Log)
	if err != nil {
		return err
	}
	AppContainer = c

	if !cfg.Recurring.ProcessOnStart || cmd.Annotations[SkipRecurringAnnotation] == "true" {
		return nil
	}
	added, err := c.ProcessRecurring(Now())
	if err != nil {
		// The generated expenses stay in memory and are written by the
		// next successful save.
		Log.WithError(err).Warn("Failed to save recurring expenses",
			logging.F(logging.FieldCount, added))
		return nil
	}
	if added > 0 {
		Log.Info("Recurring expenses added on startup", logging.F(logging.FieldCount, added))
	}
	return nil
}
