// Package recurring handles the recurring expense commands
package recurring

import (
	"fmt"
	"strconv"

	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/parsererror"

	"github.com/spf13/cobra"
)

// Flags holds the rule flags of the add command
type Flags struct {
	Name        string
	Amount      string
	Category    string
	Description string
	Frequency   string
	Day         string
}

var (
	addFlags    Flags
	processDate string
)

// Cmd represents the recurring command
var Cmd = &cobra.Command{
	Use:   "recurring",
	Short: "Manage recurring expenses",
	Long: `Manage the rules that generate expenses automatically: Monthly rules on a
day of the month, Weekly rules on a weekday.`,
}

// ListCmd lists the rules
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring expenses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return c.NewRenderer(cmd.OutOrStdout()).ListRules(c.GetRuleStore().Rules())
	},
}

// AddCmd adds a rule
var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recurring expense",
	Long: `Add a recurring expense. The day is a day of month (1-31) for Monthly rules
and a weekday name for Weekly rules.`,
	Args: cobra.NoArgs,
	RunE: addFunc,
}

// DeleteCmd deletes a rule
var DeleteCmd = &cobra.Command{
	Use:   "delete <number>",
	Short: "Delete a recurring expense",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteFunc,
}

// ProcessCmd applies the rules for a date
var ProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Generate the recurring expenses due today",
	Long: `Generate the expenses of every rule due on the given date (default today).
Monthly rules are generated at most once per month; Weekly rules each time they match.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{root.SkipRecurringAnnotation: "true"},
	RunE:        processFunc,
}

func init() {
	AddCmd.Flags().StringVarP(&addFlags.Name, "name", "n", "", "Rule name (default is the description)")
	AddCmd.Flags().StringVarP(&addFlags.Amount, "amount", "a", "", "Expense amount")
	AddCmd.Flags().StringVarP(&addFlags.Category, "category", "c", "", "Expense category")
	AddCmd.Flags().StringVarP(&addFlags.Description, "description", "d", "", "Expense description, used to detect already generated expenses")
	AddCmd.Flags().StringVarP(&addFlags.Frequency, "frequency", "f", "", "Monthly or Weekly")
	AddCmd.Flags().StringVar(&addFlags.Day, "day", "", "Day of month (1-31) or weekday name")
	for _, name := range []string{"amount", "category", "description", "frequency", "day"} {
		if err := AddCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}

	ProcessCmd.Flags().StringVarP(&processDate, "date", "t", "", "Processing date (DD-MM-YYYY)")

	Cmd.AddCommand(ListCmd, AddCmd, DeleteCmd, ProcessCmd)
}

func addFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	rule, err := models.NewRuleBuilder().
		WithName(addFlags.Name).
		WithAmountFromString(addFlags.Amount).
		WithCategory(addFlags.Category).
		WithDescription(addFlags.Description).
		WithFrequency(addFlags.Frequency).
		WithDay(addFlags.Day).
		Build()
	if err != nil {
		return err
	}

	rules := c.GetRuleStore()
	if err := rules.Add(rule); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added recurring expense #%d\n", rules.Len())
	return nil
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return &parsererror.ValidationError{Field: "index", Value: args[0], Reason: "must be a number"}
	}

	removed, err := c.GetRuleStore().Delete(index)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted recurring expense #%d: %s\n", index, removed.Name)
	return nil
}

func processFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	today := root.Now()
	if processDate != "" {
		today, err = dateutils.ParseExpenseDate(processDate)
		if err != nil {
			return &parsererror.ValidationError{Field: "date", Value: processDate, Reason: "expected DD-MM-YYYY"}
		}
	}

	added, err := c.ProcessRecurring(today)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %d recurring expense(s) for %s\n", added, dateutils.FormatExpenseDate(today))
	return nil
}
