// Package summary handles the monthly and category summary commands
package summary

import (
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/aggregate"

	"github.com/spf13/cobra"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Print expense summaries",
	Long:  `Print the total spent per month, or per category within each month.`,
}

// MonthlyCmd prints monthly totals
var MonthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Print the total of each month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		report := aggregate.MonthlyTotals(c.GetExpenseStore().Expenses(), c.GetLogger())
		return c.NewRenderer(cmd.OutOrStdout()).MonthlySummary(report)
	},
}

// CategoryCmd prints the per-category breakdown of each month
var CategoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Print each month's totals per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		report := aggregate.CategoryMonthlyBreakdown(c.GetExpenseStore().Expenses(), c.GetLogger())
		return c.NewRenderer(cmd.OutOrStdout()).CategorySummary(report)
	},
}

func init() {
	Cmd.AddCommand(MonthlyCmd, CategoryCmd)
}
