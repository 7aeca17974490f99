package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/moneygrow/moneygrow/internal/api"
	"github.com/moneygrow/moneygrow/internal/cli"
	"github.com/moneygrow/moneygrow/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagTxIncome   bool
	flagTxCategory string
	flagTxNote     string
	flagTxDate     string
)

var txCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transactions"},
	Short:   "List and manage transactions",
	RunE:    runTxList,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all transactions, newest first",
	RunE:  runTxList,
}

var txAddCmd = &cobra.Command{
	Use:   "add <amount>",
	Short: "Record an expense (or income with -i)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxAdd,
}

var txRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a transaction by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxRm,
}

func init() {
	txAddCmd.Flags().BoolVarP(&flagTxIncome, "income", "i", false, "Record income instead of an expense")
	txAddCmd.Flags().StringVarP(&flagTxCategory, "category", "c", "Other", "Category name")
	txAddCmd.Flags().StringVar(&flagTxNote, "note", "", "Optional note")
	txAddCmd.Flags().StringVar(&flagTxDate, "date", "", "Date as YYYY-MM-DD (default today)")

	txCmd.AddCommand(txListCmd, txAddCmd, txRmCmd)
	rootCmd.AddCommand(txCmd)
}

func runTxList(_ *cobra.Command, _ []string) error {
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

	if len(txs) == 0 {
		fmt.Println("No transactions yet. Try `moneygrow tx add 12.50 -c Food`.")
		return nil
	}

	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			strconv.FormatInt(tx.ID, 10),
			cli.FormatDate(tx.Date),
			tx.Type,
			tx.Category,
			tx.Note,
			cli.FormatSignedMoney(float64(tx.Amount), tx.Type == model.TypeIncome),
		})
	}

	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Date", "Type", "Category", "Note", "Amount"},
		Rows:    rows,
	}))
	fmt.Printf("  Balance: %s\n", cli.FormatMoney(model.Balance(txs)))
	return nil
}

func runTxAdd(_ *cobra.Command, args []string) error {
	client, cfg := loadClient()
	token, err := requireSession(cfg)
	if err != nil {
		return err
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil || amount <= 0 {
		return errors.New("amount must be a positive number")
	}

	txType := model.TypeExpense
	if flagTxIncome {
		txType = model.TypeIncome
	}
	if !validCategory(txType, flagTxCategory) {
		return fmt.Errorf("unknown %s category %q, see the app for the catalog", txType, flagTxCategory)
	}
	if flagTxDate != "" {
		if _, err := time.Parse("2006-01-02", flagTxDate); err != nil {
			return errors.New("date must be YYYY-MM-DD")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	in := api.TransactionInput{
		Amount:   amount,
		Type:     txType,
		Category: flagTxCategory,
		Note:     strings.TrimSpace(flagTxNote),
		Date:     flagTxDate,
	}
	if err := client.CreateTransaction(ctx, token, in); err != nil {
		return sessionError(err)
	}

	fmt.Printf("Recorded %s %s in %s.\n", txType, cli.FormatMoney(amount), flagTxCategory)
	return nil
}

func runTxRm(_ *cobra.Command, args []string) error {
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

	if err := client.DeleteTransaction(ctx, token, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("no transaction with id %d", id)
		}
		return sessionError(err)
	}

	fmt.Printf("Deleted transaction %d.\n", id)
	return nil
}

func validCategory(txType, name string) bool {
	for _, c := range model.CategoriesFor(txType) {
		if c.Name == name {
			return true
		}
	}
	return false
}
