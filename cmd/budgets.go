package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/moneygrow/moneygrow/internal/api"
	"github.com/moneygrow/moneygrow/internal/cli"
	"github.com/moneygrow/moneygrow/internal/model"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:     "budget",
	Aliases: []string{"budgets"},
	Short:   "List and manage category budgets",
	RunE:    runBudgetList,
}

var budgetListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show budgets with spend against each limit",
	RunE:  runBudgetList,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <category> <limit>",
	Short: "Create a budget, or change an existing one's limit",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetSet,
}

var budgetRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a budget by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetRm,
}

func init() {
	budgetCmd.AddCommand(budgetListCmd, budgetSetCmd, budgetRmCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetList(_ *cobra.Command, _ []string) error {
	client, cfg := loadClient()
	token, err := requireSession(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	budgets, err := client.ListBudgets(ctx, token)
	if err != nil {
		return sessionError(err)
	}
	if len(budgets) == 0 {
		fmt.Println("No budgets yet. Try `moneygrow budget set Food 300`.")
		return nil
	}

	txs, err := client.ListTransactions(ctx, token)
	if err != nil {
		return sessionError(err)
	}

	statuses := model.BudgetStatuses(budgets, txs)
	rows := make([][]string, 0, len(statuses))
	for _, st := range statuses {
		bar := cli.RenderHorizontalBar(st.Spent, st.Limit, 20)
		rows = append(rows, []string{
			strconv.FormatInt(st.ID, 10),
			st.Category,
			cli.FormatMoney(st.Spent),
			cli.FormatMoney(st.Limit),
			cli.FormatPercent(st.Percent),
			bar,
		})
	}

	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Category", "Spent", "Limit", "Used", ""},
		Rows:    rows,
	}))
	return nil
}

// runBudgetSet creates a budget for the category, or updates the limit
// when one already exists.
func runBudgetSet(_ *cobra.Command, args []string) error {
	client, cfg := loadClient()
	token, err := requireSession(cfg)
	if err != nil {
		return err
	}

	category := strings.TrimSpace(args[0])
	limit, err := strconv.ParseFloat(args[1], 64)
	if err != nil || limit <= 0 {
		return errors.New("limit must be a positive number")
	}
	if !validCategory(model.TypeExpense, category) {
		return fmt.Errorf("unknown expense category %q", category)
	}

	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	budgets, err := client.ListBudgets(ctx, token)
	if err != nil {
		return sessionError(err)
	}

	for _, b := range budgets {
		if b.Category == category {
			if err := client.UpdateBudget(ctx, token, b.ID, limit); err != nil {
				return sessionError(err)
			}
			fmt.Printf("Updated %s budget to %s.\n", category, cli.FormatMoney(limit))
			return nil
		}
	}

	in := api.BudgetInput{Category: category, Limit: limit}
	if err := client.CreateBudget(ctx, token, in); err != nil {
		return sessionError(err)
	}
	fmt.Printf("Budget set: %s at %s per month.\n", category, cli.FormatMoney(limit))
	return nil
}

func runBudgetRm(_ *cobra.Command, args []string) error {
	client, cfg := loadClient()
	token, err := requireSession(cfg)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.New("id must be a number")
	}

	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	if err := client.DeleteBudget(ctx, token, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("no budget with id %d", id)
		}
		return sessionError(err)
	}

	fmt.Printf("Deleted budget %d.\n", id)
	return nil
}
