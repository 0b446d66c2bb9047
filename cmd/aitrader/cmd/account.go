package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/paperquant/aitrader/broker"
	"github.com/paperquant/aitrader/market"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show the account, optionally depositing or withdrawing first",
	Long: `Show cash balance, holdings, and the order journal.

Examples:
  aitrader account
  aitrader account --deposit 1000000
  aitrader account --withdraw 5000`,
	Args: cobra.NoArgs,
	RunE: runAccount,
}

var (
	depositAmount  string
	withdrawAmount string
)

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.Flags().StringVar(&depositAmount, "deposit", "", "amount to deposit before showing the account")
	accountCmd.Flags().StringVar(&withdrawAmount, "withdraw", "", "amount to withdraw before showing the account")
}

func runAccount(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, st, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if depositAmount != "" {
		amount, err := decimal.NewFromString(depositAmount)
		if err != nil {
			return fmt.Errorf("deposit amount: %w", err)
		}
		if err := engine.Deposit(amount); err != nil {
			return fmt.Errorf("deposit: %w", err)
		}
	}

	if withdrawAmount != "" {
		amount, err := decimal.NewFromString(withdrawAmount)
		if err != nil {
			return fmt.Errorf("withdraw amount: %w", err)
		}
		if err := engine.Withdraw(amount); err != nil {
			return fmt.Errorf("withdraw: %w", err)
		}
	}

	return printAccount(engine, cfg.Broker.Currency)
}

func printAccount(engine *broker.Engine, currency string) error {
	balance, err := engine.Balance()
	if err != nil {
		return err
	}
	positions, err := engine.Positions()
	if err != nil {
		return err
	}
	orders, err := engine.Orders()
	if err != nil {
		return err
	}

	fmt.Printf("Cash balance: %s %s\n", balance, currency)
	printPositions(positions)
	printOrders(orders)
	return nil
}

func printPositions(positions []market.Position) {
	fmt.Println("\nPositions:")
	if len(positions) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, p := range positions {
		fmt.Printf("  %-10s %-5s qty %-12s avg %s\n", p.Symbol, p.Market, p.Quantity, p.AvgPrice)
	}
}

func printOrders(orders []market.Order) {
	fmt.Println("\nOrders (most recent first):")
	if len(orders) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, o := range orders {
		fmt.Printf("  %s  %-4s %-10s qty %-12s @ %-12s %s\n",
			o.ID, o.Side, o.Symbol, o.Quantity, o.Price, o.Time.Format("2006-01-02 15:04:05"))
	}
}
