// Package chart handles the text chart commands
package chart

import (
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/aggregate"

	"github.com/spf13/cobra"
)

// Cmd represents the chart command
var Cmd = &cobra.Command{
	Use:   "chart",
	Short: "Draw expense charts",
	Long:  `Draw a bar chart of monthly totals, or the category shares of each month.`,
}

// MonthlyCmd draws one bar per month
var MonthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Draw a bar chart of monthly totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		report := aggregate.MonthlyTotals(c.GetExpenseStore().Expenses(), c.GetLogger())
		return c.NewRenderer(cmd.OutOrStdout()).MonthlyChart(report)
	},
}

// CategoryCmd draws category shares per month
var CategoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Draw the category shares of each month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		report := aggregate.CategoryMonthlyBreakdown(c.GetExpenseStore().Expenses(), c.GetLogger())
		return c.NewRenderer(cmd.OutOrStdout()).CategoryChart(report)
	},
}

func init() {
	Cmd.AddCommand(MonthlyCmd, CategoryCmd)
}
