// Package expense handles the commands that list and edit expenses
package expense

import (
	"fmt"
	"strconv"

	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/parsererror"

	"github.com/spf13/cobra"
)

// Flags holds the expense field flags shared by add and update
type Flags struct {
	Amount      string
	Category    string
	Description string
	Date        string
}

var (
	addFlags    Flags
	updateFlags Flags
)

// ListCmd represents the list command
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all expenses",
	Long:  `List all expenses in insertion order with their 1-based number.`,
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

// AddCmd represents the add command
var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an expense",
	Long:  `Add an expense. The date uses the DD-MM-YYYY format and defaults to today.`,
	Args:  cobra.NoArgs,
	RunE:  addFunc,
}

// UpdateCmd represents the update command
var UpdateCmd = &cobra.Command{
	Use:   "update <number>",
	Short: "Update an expense",
	Long:  `Update the expense with the given number. Only the fields passed as flags change.`,
	Args:  cobra.ExactArgs(1),
	RunE:  updateFunc,
}

// DeleteCmd represents the delete command
var DeleteCmd = &cobra.Command{
	Use:   "delete <number>",
	Short: "Delete an expense",
	Long:  `Delete the expense with the given number. Later expenses move up by one.`,
	Args:  cobra.ExactArgs(1),
	RunE:  deleteFunc,
}

func init() {
	bindFieldFlags(AddCmd, &addFlags)
	if err := AddCmd.MarkFlagRequired("amount"); err != nil {
		panic(err)
	}
	if err := AddCmd.MarkFlagRequired("category"); err != nil {
		panic(err)
	}
	bindFieldFlags(UpdateCmd, &updateFlags)
}

func bindFieldFlags(cmd *cobra.Command, f *Flags) {
	cmd.Flags().StringVarP(&f.Amount, "amount", "a", "", "Expense amount")
	cmd.Flags().StringVarP(&f.Category, "category", "c", "", "Expense category")
	cmd.Flags().StringVarP(&f.Description, "description", "d", "", "Expense description")
	cmd.Flags().StringVarP(&f.Date, "date", "t", "", "Expense date (DD-MM-YYYY)")
}

// Commands returns every expense command.
func Commands() []*cobra.Command {
	return []*cobra.Command{ListCmd, AddCmd, UpdateCmd, DeleteCmd}
}

func listFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	return c.NewRenderer(cmd.OutOrStdout()).ListExpenses(c.GetExpenseStore().Expenses())
}

func addFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	expense, err := models.NewExpenseBuilder().
		WithAmountFromString(addFlags.Amount).
		WithCategory(addFlags.Category).
		WithDescription(addFlags.Description).
		WithDate(addFlags.Date).
		WithDefaultDate(root.Now()).
		Build()
	if err != nil {
		return err
	}
	warnNonPositive(expense)

	expenses := c.GetExpenseStore()
	if err := expenses.Add(expense); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added expense #%d\n", expenses.Len())
	return nil
}

func updateFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	expenses := c.GetExpenseStore()
	current, err := expenses.Get(index)
	if err != nil {
		return err
	}

	b := models.NewExpenseBuilder().FromExpense(current)
	flags := cmd.Flags()
	if flags.Changed("amount") {
		b.WithAmountFromString(updateFlags.Amount)
	}
	if flags.Changed("category") {
		b.WithCategory(updateFlags.Category)
	}
	if flags.Changed("description") {
		b.WithDescription(updateFlags.Description)
	}
	if flags.Changed("date") {
		b.WithDate(updateFlags.Date)
	}
	expense, err := b.Build()
	if err != nil {
		return err
	}
	warnNonPositive(expense)

	if err := expenses.Update(index, expense); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated expense #%d\n", index)
	return nil
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	removed, err := c.GetExpenseStore().Delete(index)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted expense #%d: %s\n", index, removed.Description)
	return nil
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &parsererror.ValidationError{Field: "index", Value: raw, Reason: "must be a number"}
	}
	return index, nil
}

func warnNonPositive(e models.Expense) {
	if !e.Amount.IsPositive() {
		root.Log.Warn("Expense amount is not positive",
			logging.F(logging.FieldAmount, e.Amount.String()),
			logging.F(logging.FieldDescription, e.Description))
	}
}
