package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/moneygrow/moneygrow/internal/api"
	"github.com/moneygrow/moneygrow/internal/cli"
	"github.com/moneygrow/moneygrow/internal/config"
	"github.com/moneygrow/moneygrow/internal/model"

	"github.com/spf13/cobra"
)

var flagBaseURL string

var rootCmd = &cobra.Command{
	Use:   "moneygrow",
	Short: "Personal finance tracker",
	Long:  "Track income, expenses, and budgets from your terminal.",
	RunE:  runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "server", "", "Finance API base URL (overrides config)")
}

// apiTimeout bounds every one-shot CLI request.
const apiTimeout = 30 * time.Second

// loadClient builds an API client from config plus the --server override.
func loadClient() (*api.Client, config.Config) {
	cfg, _ := config.Load()
	base := cfg.API.BaseURL
	if flagBaseURL != "" {
		base = flagBaseURL
	}
	timeout := time.Duration(cfg.API.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = apiTimeout
	}
	return api.NewClient(base, timeout), cfg
}

// requireSession returns the saved token or an error telling the user
// to log in.
func requireSession(cfg config.Config) (string, error) {
	if cfg.Session.Token == "" {
		return "", errors.New("not logged in, run `moneygrow login` first")
	}
	return cfg.Session.Token, nil
}

// runOverview is the default command: a balance snapshot with recent
// transactions and budget positions.
func runOverview(_ *cobra.Command, _ []string) error {
	client, cfg := loadClient()
	token, err := requireSession(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	txs, err := client.ListTransactions(ctx, token)
	if err != nil {
		return sessionError(err)
	}
	budgets, err := client.ListBudgets(ctx, token)
	if err != nil {
		return sessionError(err)
	}

	summary := model.Summarize(txs)

	fmt.Println(cli.RenderTitle("moneygrow"))
	fmt.Println()

	balanceLine := cli.FormatMoney(model.Balance(txs))
	if model.Balance(txs) < 0 {
		fmt.Printf("  Balance   %s\n", cli.ExpenseText(balanceLine))
	} else {
		fmt.Printf("  Balance   %s\n", cli.IncomeText(balanceLine))
	}
	fmt.Printf("  Income    %s\n", cli.IncomeText(cli.FormatMoney(summary.Income)))
	fmt.Printf("  Expenses  %s\n", cli.ExpenseText(cli.FormatMoney(summary.Expense)))
	fmt.Println()

	if len(txs) > 0 {
		limit := 5
		if len(txs) < limit {
			limit = len(txs)
		}
		rows := make([][]string, 0, limit)
		for _, tx := range txs[:limit] {
			rows = append(rows, transactionRow(tx))
		}
		fmt.Println(cli.RenderTable(cli.Table{
			Title:   "Recent",
			Headers: []string{"Date", "Category", "Note", "Amount"},
			Rows:    rows,
		}))
	}

	if len(budgets) > 0 {
		fmt.Println(renderBudgetTable(budgets, txs))
	}

	fmt.Println(cli.MutedText("  Run `moneygrow tui` for the interactive dashboard."))
	return nil
}

// sessionError turns an auth rejection into a friendlier hint.
func sessionError(err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return errors.New("session expired, run `moneygrow login` again")
	}
	return err
}

func transactionRow(tx model.Transaction) []string {
	// Plain cells; styled text would throw off the table's width math.
	return []string{
		cli.FormatDate(tx.Date),
		tx.Category,
		tx.Note,
		cli.FormatSignedMoney(float64(tx.Amount), tx.Type == model.TypeIncome),
	}
}

func renderBudgetTable(budgets []model.Budget, txs []model.Transaction) string {
	statuses := model.BudgetStatuses(budgets, txs)
	rows := make([][]string, 0, len(statuses))
	for _, st := range statuses {
		spent := cli.FormatMoney(st.Spent)
		if st.Over {
			spent += " !"
		}
		rows = append(rows, []string{
			st.Category,
			spent,
			cli.FormatMoney(st.Limit),
			cli.FormatPercent(st.Percent),
		})
	}
	return cli.RenderTable(cli.Table{
		Title:   "Budgets",
		Headers: []string{"Budget", "Spent", "Limit", "Used"},
		Rows:    rows,
	})
}
