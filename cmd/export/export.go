// Package export handles the CSV export command
package export

import (
	"fmt"

	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/report"

	"github.com/spf13/cobra"
)

var (
	output    string
	delimiter string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export expenses to CSV",
	Long: `Export all expenses to a CSV file with the header Amount,Category,Description,Date.
Use "-o -" to write to standard output.`,
	Args: cobra.NoArgs,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default is csv.file in the data directory)")
	Cmd.Flags().StringVar(&delimiter, "delimiter", "", "CSV delimiter (default is csv.delimiter)")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	cfg := c.GetConfig()

	delim := cfg.DelimiterRune()
	if delimiter != "" {
		runes := []rune(delimiter)
		if len(runes) != 1 {
			return fmt.Errorf("CSV delimiter must be a single character, got: %s", delimiter)
		}
		delim = runes[0]
	}

	expenses := c.GetExpenseStore().Expenses()
	if output == "-" {
		return report.WriteCSV(cmd.OutOrStdout(), expenses, delim)
	}

	path := output
	if path == "" {
		path = cfg.CSVPath()
	}
	if err := report.ExportCSV(path, expenses, delim, c.GetLogger()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d expenses to %s\n", len(expenses), path)
	return nil
}
